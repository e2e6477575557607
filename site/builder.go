// Package site drives the two-pass conversion of a SAB archive into a
// static documentation site: pass 1 builds the cross-reference registry
// (xref.ScanAll), pass 2 fans a worker pool out over every archive member,
// rendering HTML (and optionally XML) and accumulating a search index and
// a category-grouped index page (spec §4.11).
package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/format"
	"github.com/arloliu/sabdoc/htmldoc"
	"github.com/arloliu/sabdoc/internal/cache"
	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/arloliu/sabdoc/internal/options"
	"github.com/arloliu/sabdoc/internal/pool"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
)

// Builder converts a SAB archive rooted at SourceDir into a static site
// under OutputDir. Configure it with the With... options before calling
// Build.
type Builder struct {
	sourceDir string
	outputDir string

	emitXML     bool
	compression format.CompressionType
	cachePath   string
	workers     int
}

// BuilderOption configures a Builder, following the teacher's functional
// option pattern (blob.NumericEncoderOption).
type BuilderOption = options.Option[*Builder]

// New creates a Builder for the archive at sourceDir, writing to outputDir.
func New(sourceDir, outputDir string, opts ...BuilderOption) (*Builder, error) {
	b := &Builder{
		sourceDir:   sourceDir,
		outputDir:   outputDir,
		compression: format.CompressionNone,
		workers:     runtime.NumCPU(),
	}

	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	return b, nil
}

// WithXML additionally emits an LZ4 block-compressed XML intermediate (.xml.lz4)
// alongside each HTML page (spec §4.9 "lossless intermediate").
func WithXML() BuilderOption {
	return options.NoError(func(b *Builder) {
		b.emitXML = true
	})
}

// WithCompression writes a compressed copy of each HTML page (e.g. .html.gz
// under format.CompressionGzip) for archival/static-hosting, alongside the
// plain file.
func WithCompression(compressionType format.CompressionType) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.compression = compressionType
	})
}

// WithCache points the builder at a zstd-compressed registry snapshot
// (internal/cache): if present and loadable, pass 1's full archive scan is
// skipped; the registry built (or loaded) this run is always persisted
// back to path at the end of Build.
func WithCache(path string) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.cachePath = path
	})
}

// WithWorkers sets pass 2's worker pool size. The default is runtime.NumCPU().
func WithWorkers(n int) BuilderOption {
	return options.New(func(b *Builder) error {
		if n < 1 {
			return fmt.Errorf("site: WithWorkers: n must be >= 1, got %d", n)
		}
		b.workers = n

		return nil
	})
}

// Report summarizes one Build run.
type Report struct {
	Converted int
	Failed    int
	Elapsed   time.Duration
	Failures  []Failure
}

// Failure records one file's conversion error.
type Failure struct {
	Path string
	Err  error
}

// Build runs pass 1 then pass 2 and writes the site to b.outputDir.
func (b *Builder) Build() (Report, error) {
	start := time.Now()

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return Report{}, err
	}

	registry, err := b.loadOrScanRegistry()
	if err != nil {
		return Report{}, err
	}
	registry.Freeze()

	files, err := b.listSabFiles()
	if err != nil {
		return Report{}, err
	}

	entries, categorized, failures := b.convertAll(files, registry)

	if err := writeSearchIndex(b.outputDir, entries); err != nil {
		return Report{}, err
	}

	elapsed := time.Since(start)
	report := Report{
		Converted: len(files) - len(failures),
		Failed:    len(failures),
		Elapsed:   elapsed,
		Failures:  failures,
	}

	if err := writeIndexPage(b.outputDir, categorized, report); err != nil {
		return Report{}, err
	}

	if b.cachePath != "" {
		if err := cache.Save(b.cachePath, registry); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (b *Builder) loadOrScanRegistry() (*xref.Registry, error) {
	if b.cachePath != "" {
		if reg, err := cache.Load(b.cachePath); err == nil {
			return reg, nil
		} else if !errors.Is(err, errs.ErrInvalidCacheFile) && !errors.Is(err, errs.ErrCacheVersion) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	reg := xref.New()
	interner := hash.NewInterner()
	if err := reg.ScanAll(b.sourceDir, interner); err != nil {
		return nil, err
	}

	return reg, nil
}

func (b *Builder) listSabFiles() ([]string, error) {
	var files []string
	err := filepathWalk(b.sourceDir, func(path string, isDir bool) {
		if !isDir && strings.Contains(filepath.Base(path), ".sab.") {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}

// conversionResult is one file's pass-2 output, gathered by a worker.
type conversionResult struct {
	relPath  string
	htmlRel  string
	category string
	title    string
	entries  []SearchEntry
	err      error
}

func (b *Builder) convertAll(files []string, registry *xref.Registry) ([]SearchEntry, map[string][]indexLink, []Failure) {
	jobs := make(chan string)
	results := make(chan conversionResult)

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- b.convertOne(path, registry)
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var allEntries []SearchEntry
	categorized := map[string][]indexLink{}
	var failures []Failure

	for res := range results {
		relPath := res.relPath
		if res.err != nil {
			failures = append(failures, Failure{Path: relPath, Err: res.err})
			fmt.Fprintf(os.Stderr, "FAIL: %s - %T: %s\n", relPath, res.err, res.err)

			continue
		}

		allEntries = append(allEntries, res.entries...)

		cat := res.category
		categorized[cat] = append(categorized[cat], indexLink{
			Title:   res.title,
			HTMLRel: res.htmlRel,
		})
	}

	return allEntries, categorized, failures
}

func (b *Builder) convertOne(path string, registry *xref.Registry) conversionResult {
	relPath, relErr := filepath.Rel(b.sourceDir, path)
	if relErr != nil {
		relPath = path
	}

	htmlRel := xref.GetHTMLPath(relPath)

	res := conversionResult{relPath: relPath, htmlRel: htmlRel, category: categorize(relPath)}

	data, err := os.ReadFile(path)
	if err != nil {
		res.err = err

		return res
	}

	interner := hash.NewInterner()
	file, err := sab.ReadFile(data, interner)
	if err != nil {
		res.err = err

		return res
	}

	title := pageTitle(file.Records)
	res.title = title

	depth := strings.Count(htmlRel, "/")
	prefix := strings.Repeat("../", depth)
	assets := htmldoc.PageAssets{
		CSSPath:      prefix + "style.css",
		IndexPath:    prefix + "index.html",
		LogoPath:     prefix + "symbolics-logo.png",
		SearchJSPath: prefix + "search.js",
	}

	html := htmldoc.RenderPage(file, registry, htmlRel, title, assets)

	outPath := filepath.Join(b.outputDir, filepath.FromSlash(htmlRel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		res.err = err

		return res
	}

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)
	buf.MustWrite([]byte(html))

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		res.err = err

		return res
	}

	if b.compression != format.CompressionNone {
		if err := writeCompressed(outPath, buf.Bytes(), b.compression); err != nil {
			res.err = err

			return res
		}
	}

	if b.emitXML {
		if err := writeXML(outPath, file, relPath); err != nil {
			res.err = err

			return res
		}
	}

	res.entries = searchEntriesForFile(file, htmlRel, relPath)

	return res
}

func pageTitle(records []*sab.Record) string {
	for _, r := range records {
		if r == nil {
			continue
		}
		if fs, ok := r.Name.(sab.FunctionSpec); ok {
			return fs.Name
		}
		if s, ok := r.Name.(string); ok {
			return s
		}
	}

	return "Untitled"
}
