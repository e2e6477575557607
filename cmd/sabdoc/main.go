// Command sabdoc converts Symbolics Genera SAB documentation archives to
// HTML (and optionally XML), mirroring the three subcommands of the
// original convert.py: site, single, info.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/arloliu/sabdoc/format"
	"github.com/arloliu/sabdoc/htmldoc"
	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/site"
	"github.com/arloliu/sabdoc/xmldoc"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "site":
		err = runSite(os.Args[2:])
	case "single":
		err = runSingle(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "sabdoc:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sabdoc <site|single|info> [flags]")
}

func runSite(args []string) error {
	fs := flag.NewFlagSet("site", flag.ExitOnError)
	output := fs.String("o", "output", "output directory")
	emitXML := fs.Bool("xml", false, "also emit XML intermediates")
	gzip := fs.Bool("gzip", false, "also write gzip-compressed HTML pages")
	cachePath := fs.String("cache", "", "registry cache file path")
	workers := fs.Int("workers", 0, "pass-2 worker count (default: NumCPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("site: missing sab_dir argument")
	}
	sabDir := fs.Arg(0)

	var opts []site.BuilderOption
	if *emitXML {
		opts = append(opts, site.WithXML())
	}
	if *gzip {
		opts = append(opts, site.WithCompression(format.CompressionGzip))
	}
	if *cachePath != "" {
		opts = append(opts, site.WithCache(*cachePath))
	}
	if *workers > 0 {
		opts = append(opts, site.WithWorkers(*workers))
	}

	builder, err := site.New(sabDir, *output, opts...)
	if err != nil {
		return err
	}

	report, err := builder.Build()
	if err != nil {
		return err
	}

	fmt.Printf("Converted %d files (%d failures) in %s\n", report.Converted, report.Failed, report.Elapsed)

	return nil
}

func runSingle(args []string) error {
	fs := flag.NewFlagSet("single", flag.ExitOnError)
	outputFile := fs.String("o", "", "output file (default: stdout)")
	formatFlag := fs.String("format", "html", "output format: html|xml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("single: missing file argument")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	interner := hash.NewInterner()
	file, err := sab.ReadFile(data, interner)
	if err != nil {
		return err
	}

	var output string
	switch *formatFlag {
	case "xml":
		output = xmldoc.Render(file, path)
	case "html":
		title := firstRecordTitle(file.Records)
		assets := htmldoc.PageAssets{CSSPath: "style.css", IndexPath: "index.html", LogoPath: "symbolics-logo.png", SearchJSPath: "search.js"}
		output = htmldoc.RenderPage(file, nil, "", title, assets)
	default:
		return fmt.Errorf("single: unknown format %q", *formatFlag)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0o644); err != nil {
			return err
		}
		fmt.Printf("Written to %s\n", *outputFile)
	} else {
		fmt.Println(output)
	}

	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing file argument")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	interner := hash.NewInterner()
	file, err := sab.ReadFile(data, interner)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Records: %d\n", len(file.Records))
	fmt.Printf("Index items: %d\n", len(file.Index))
	if len(file.FileAttributes) > 0 {
		fmt.Println("Attributes:")
		for _, attr := range file.FileAttributes {
			fmt.Printf("  %s: %v\n", attr.Name, attr.Value)
		}
	}
	fmt.Println("Records:")
	for _, r := range file.Records {
		if r == nil {
			continue
		}
		fmt.Printf("  %s (%s)\n", recordName(r), r.Type)
	}

	return nil
}

func firstRecordTitle(records []*sab.Record) string {
	for _, r := range records {
		if r == nil {
			continue
		}
		return recordName(r)
	}

	return "Untitled"
}

func recordName(r *sab.Record) string {
	if fs, ok := r.Name.(sab.FunctionSpec); ok {
		return fs.Name
	}
	if s, ok := r.Name.(string); ok {
		return s
	}

	return strings.TrimSpace(fmt.Sprintf("%v", r.Name))
}
