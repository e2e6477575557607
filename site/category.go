package site

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// indexLink is one entry in a category's file listing on the generated
// index page.
type indexLink struct {
	Title   string
	HTMLRel string
}

// categorize buckets an archive-relative path into a documentation
// section, following site_generator.py's _categorize: "doc/installed-442/X/..."
// and "doc/X/..." collapse to "doc/X", anything else under doc/ falls back
// to "doc/misc", and a path with no directory component is "other".
func categorize(relPath string) string {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	if len(parts) < 2 {
		return "other"
	}

	top := parts[0]
	if top != "doc" {
		return top
	}

	switch {
	case len(parts) >= 4 && parts[1] == "installed-442":
		return "doc/" + parts[2]
	case len(parts) >= 3 && !strings.Contains(parts[1], ".sab"):
		return "doc/" + parts[1]
	default:
		return "doc/misc"
	}
}

// categoryNames maps a category key to its display name, carried verbatim
// from site_generator.py's CATEGORY_NAMES table.
var categoryNames = map[string]string{
	"doc/user": "User Documentation", "doc/cl": "Common Lisp",
	"doc/ansi-cl": "ANSI Common Lisp", "doc/zmacs": "Zmacs Editor",
	"doc/zmail": "ZMail", "doc/zmailt": "ZMail (Tutorial)",
	"doc/zmailc": "ZMail (Commands)", "doc/windoc": "Window System",
	"doc/menus": "Menus", "doc/debug": "Debugger", "doc/comp": "Compiler",
	"doc/eval": "Evaluator", "doc/proc": "Processes", "doc/file": "File System",
	"doc/io": "Input/Output", "doc/netio": "Network I/O",
	"doc/nfile": "Network File System", "doc/rpc": "RPC", "doc/ip-tcp": "IP/TCP",
	"doc/maint": "Maintenance", "doc/site": "Site Management",
	"doc/sig": "System Installation", "doc/stor": "Storage",
	"doc/sched": "Scheduler", "doc/prim": "Primitives", "doc/func": "Functions",
	"doc/data-types": "Data Types", "doc/flow": "Flow Control",
	"doc/strings": "Strings", "doc/pkg": "Packages", "doc/clos": "CLOS",
	"doc/flav": "Flavors", "doc/defs": "Definitions", "doc/hard": "Hardware",
	"doc/int": "Internals", "doc/tools": "Tools", "doc/conv": "Conversion",
	"doc/fed": "FED", "doc/fep": "FEP", "doc/scroll": "Scroll",
	"doc/uims": "UIMS", "doc/macivory": "MacIvory", "doc/ux400": "UX400/UX1200",
	"doc/ivory": "Ivory", "doc/vlm": "Virtual Lisp Machine",
	"c/doc": "C Language", "pascal/doc": "Pascal", "fortran/doc": "Fortran",
	"concordia/doc": "Concordia", "graphic-editor": "Graphic Editor",
	"joshua/doc": "Joshua", "statice/documentation": "Statice",
	"color/doc": "Color", "doc/clim": "CLIM",
	"doc/rn8-0": "Release Notes 8.0", "doc/rn8-0-1": "Release Notes 8.0.1",
	"doc/rn8-1": "Release Notes 8.1", "doc/rn8-1-eco": "Release Notes 8.1 ECO",
	"doc/rn8-2": "Release Notes 8.2", "doc/rn8-3": "Release Notes 8.3",
	"doc/rn-poly": "Release Notes (Poly)", "doc/cp": "Command Processor",
	"doc/init": "Initialization", "doc/lms": "Lisp Machine System",
	"doc/tape": "Tape", "doc/sage": "Sage", "doc/scope": "Scope",
	"doc/meter": "Metering", "doc/meter-int": "Metering (Internal)",
	"doc/nota": "Notation", "doc/conversion": "Conversion Utilities",
	"doc/conversion-tools": "Conversion Tools", "doc/char": "Characters",
	"doc/str": "Structures", "doc/cond": "Conditions", "doc/mac": "Macros",
	"doc/iprim": "Internal Primitives", "doc/pig": "PIG", "doc/prot": "Protocol",
	"doc/fsed": "FSED", "doc/ined": "INED", "doc/arr": "Arrays",
	"doc/misct": "Miscellaneous (Topics)", "doc/miscf": "Miscellaneous (Functions)",
	"doc/miscu": "Miscellaneous (User)", "doc/miscui": "Miscellaneous (UI)",
	"doc/intstr": "Internal Structures", "doc/workstyles": "Workstyles",
	"doc/audio": "Audio", "doc/clyde": "Clyde",
	"doc/misc": "Miscellaneous Documentation", "doc/installed-442": "Documentation",
	"contributed": "Contributed", "ip-tcp": "IP/TCP", "nfs": "NFS", "x11": "X11",
}

func categoryDisplayName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}

	return category
}

// writeIndexPage writes the site's top-level index.html, grouping
// converted files by category and sorting alphabetically within each
// (spec §4.11, site_generator.py's _generate_index_page).
func writeIndexPage(outputDir string, categorized map[string][]indexLink, report Report) error {
	categories := make([]string, 0, len(categorized))
	for c := range categorized {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.ToLower(categoryDisplayName(categories[i])) < strings.ToLower(categoryDisplayName(categories[j]))
	})

	var sections strings.Builder
	for _, cat := range categories {
		links := categorized[cat]
		sort.Slice(links, func(i, j int) bool {
			return strings.ToLower(links[i].Title) < strings.ToLower(links[j].Title)
		})

		sections.WriteString(fmt.Sprintf("    <div class=\"index-section\">\n      <h2>%s (%d)</h2>\n      <ul>\n",
			html.EscapeString(categoryDisplayName(cat)), len(links)))
		for _, link := range links {
			sections.WriteString(fmt.Sprintf("        <li><a href=\"%s\">%s</a></li>\n",
				html.EscapeString(link.HTMLRel), html.EscapeString(link.Title)))
		}
		sections.WriteString("      </ul>\n    </div>\n")
	}

	total := report.Converted + report.Failed
	page := fmt.Sprintf(indexPageTemplate, total, report.Converted, report.Failed,
		report.Elapsed.Seconds(), sections.String())

	return os.WriteFile(filepath.Join(outputDir, "index.html"), []byte(page), 0o644)
}

const indexPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Symbolics Genera Documentation</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
<h1>Symbolics Genera Documentation</h1>
<p>Converted from %d SAB files from Genera 9.0 / Open Genera.</p>
<p><a href="search.html">Search documentation</a></p>
<p class="stats">%d files converted, %d errors, %.1fs total</p>
%s</body>
</html>
`
