package htmldoc

import (
	"fmt"
	"html"
	"strings"

	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
)

// structuralTypes use a plain heading; every other record type renders as
// an "entry" with a name/arglist/type-label heading (spec §4.10).
var structuralTypes = map[string]bool{
	"section": true, "subsection": true, "subsubsection": true, "chapter": true,
}

// RenderRecord renders a single record to an HTML <section> (spec §4.10).
// currentFile is the HTML path of the page being built, used to
// relativize links; headingTag is the heading level ("h1" for a page's
// first record, "h2" thereafter).
func RenderRecord(rec *sab.Record, registry *xref.Registry, currentFile string, headingTag string) string {
	ctx := &renderContext{registry: registry, currentFile: currentFile, record: rec}

	title := formatRecordTitle(rec, ctx)
	contents, _ := rec.Field("contents")
	contentList, _ := contents.([]any)
	body := renderContentList(contentList, ctx)

	name := recordDisplayName(rec.Name)
	anchor := xref.Slugify(name)

	recType := strings.ToLower(rec.Type)
	isEntry := !structuralTypes[recType]

	var heading string
	class := ""
	if isEntry {
		class = ` class="entry"`

		arglist := fieldContentList(rec, "arglist")
		if arglist == nil {
			arglist = fieldContentList(rec, "symbolics-common-lisp:arglist")
		}
		arglistHTML := strings.TrimSpace(renderContentList(arglist, ctx))

		typeLabel := formatTypeLabel(rec.Type)

		parts := []string{fmt.Sprintf(`<span class="entry-name">%s</span>`, title)}
		if arglistHTML != "" {
			parts = append(parts, fmt.Sprintf(`<span class="entry-args">%s</span>`, arglistHTML))
		}
		if typeLabel != "" {
			parts = append(parts, fmt.Sprintf(`<span class="entry-type">%s</span>`, typeLabel))
		}

		heading = fmt.Sprintf("<%s class=\"entry-heading\">\n  %s\n</%s>", headingTag, strings.Join(parts, "\n  "), headingTag)
	} else {
		heading = fmt.Sprintf("<%s>%s</%s>", headingTag, title, headingTag)
	}

	return fmt.Sprintf("<section id=\"%s\"%s>\n%s\n%s\n</section>\n", anchor, class, heading, body)
}

func fieldContentList(rec *sab.Record, name string) []any {
	v, ok := rec.Field(name)
	if !ok {
		return nil
	}
	list, _ := v.([]any)

	return list
}

func recordDisplayName(name any) string {
	if fs, ok := name.(sab.FunctionSpec); ok {
		return fs.Name
	}
	if s, ok := name.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", name)
}

func formatRecordTitle(rec *sab.Record, ctx *renderContext) string {
	if v, ok := rec.Field("source-title"); ok {
		if list, ok := v.([]any); ok && len(list) > 0 {
			return renderContentList(list, &renderContext{registry: ctx.registry, currentFile: ctx.currentFile})
		}
	}

	return html.EscapeString(recordDisplayName(rec.Name))
}

// RenderPage renders a full HTML page from a SAB file's records, pairing
// each record with its index item (for callee lookups) before rendering
// (spec §4.10, §4.11 pass 2). cssPath/indexPath/logoPath/searchJSPath are
// site-relative asset paths substituted into the page shell.
func RenderPage(file *sab.File, registry *xref.Registry, currentFile, title string, assets PageAssets) string {
	var body strings.Builder
	for i, rec := range file.Records {
		var idx *sab.IndexItem
		if i < len(file.Index) {
			idx = &file.Index[i]
		}
		SetupRecordCallees(rec, idx)

		tag := "h2"
		if i == 0 {
			tag = "h1"
		}
		body.WriteString(RenderRecord(rec, registry, currentFile, tag))
	}

	pageTitle := title
	if pageTitle == "" {
		pageTitle = "SAB Document"
	}

	return fmt.Sprintf(pageTemplate,
		html.EscapeString(pageTitle), assets.CSSPath, assets.IndexPath, assets.LogoPath, body.String(), assets.SearchJSPath)
}

// PageAssets names the site-relative asset paths a rendered page links to.
type PageAssets struct {
	CSSPath      string
	IndexPath    string
	LogoPath     string
	SearchJSPath string
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
  <link rel="stylesheet" href="%s">
</head>
<body>
<header class="site-header">
  <div class="header-left">
    <a href="%s" class="header-logo">
      <img src="%s" alt="Symbolics">
    </a>
    <span class="header-title">Portable Genera 9.0 Documentation</span>
  </div>
  <div class="header-search">
    <input type="text" id="header-search-input" placeholder="Search documentation..." autocomplete="off">
    <div id="header-search-results" class="search-dropdown"></div>
  </div>
</header>
<main class="content">
%s
</main>
<script src="%s"></script>
</body>
</html>
`
