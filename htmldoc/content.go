package htmldoc

import (
	"html"
	"strings"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/sab"
)

// renderContentList applies the paragraph/tab fix-up pipeline then renders
// every item (spec §4.10).
func renderContentList(items []any, ctx *renderContext) string {
	if len(items) == 0 {
		return ""
	}

	processed := fixUpSpecialMarkup(items)
	var b strings.Builder
	for _, item := range processed {
		b.WriteString(renderSage(item, ctx))
	}

	return b.String()
}

// renderContentListRaw renders without the fix-up pipeline: embedded
// paragraph markers become raw newlines instead of <p> tags, for pre-wrap
// environments like display.
func renderContentListRaw(items []any, ctx *renderContext) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	marker := string(genera.ParagraphMarker)
	for _, item := range items {
		if text, ok := item.(string); ok {
			b.WriteString(html.EscapeString(strings.ReplaceAll(text, marker, "\n")))

			continue
		}
		b.WriteString(renderSage(item, ctx))
	}

	return b.String()
}

// renderSage is the main dispatch over one content-list item.
func renderSage(sage any, ctx *renderContext) string {
	switch v := sage.(type) {
	case nil:
		return ""
	case string:
		return renderText(v)
	case paragraphBreak:
		return "</p>\n<p>"
	case *sab.Envr:
		return renderEnvr(v, ctx)
	case *sab.Command:
		return renderCommand(v, ctx)
	case *sab.Reference:
		return renderReference(v, ctx)
	case *sab.Picture:
		return renderPicture(v, ctx)
	case *sab.ExampleRecordMarker:
		return `<div class="example-record-marker"></div>`
	case []any:
		var b strings.Builder
		for _, item := range v {
			b.WriteString(renderSage(item, ctx))
		}

		return b.String()
	case sab.FunctionSpec:
		return html.EscapeString(v.Name)
	default:
		return ""
	}
}

// renderText HTML-escapes text then converts the paragraph/line-break
// sentinels: the paragraph marker should already have been split out by
// fixUpSpecialMarkup, but text reaching here unprocessed (e.g. via
// renderContentListRaw's caller paths) still gets a safe fallback.
func renderText(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, string(genera.ParagraphMarker), "</p>\n<p>")
	escaped = strings.ReplaceAll(escaped, string(genera.LineBreakMarker), "\n")

	return escaped
}
