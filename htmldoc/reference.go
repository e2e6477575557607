package htmldoc

import (
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/xref"
)

// renderReference dispatches a reference to its HTML rendering (spec
// §4.10 "Reference rendering"). Every non-empty output ends with a
// newline so consecutive references get whitespace in flowing HTML.
func renderReference(ref *sab.Reference, ctx *renderContext) string {
	topic := topicText(ref.Topic)
	display := html.EscapeString(stripPackagePrefix(topic))

	switch ref.Appearance {
	case "invisible":
		return ""
	case "topic":
		href := resolveHref(ref, ctx)

		return fmt.Sprintf("<span class=\"ref-topic\">“<a href=\"%s\">%s</a>”</span>\n", html.EscapeString(href), display)
	case "see":
		href := resolveHref(ref, ctx)
		typeLabel := html.EscapeString(stripPackagePrefix(ref.Type))
		capS := "s"
		if hasBoolean(ref.Booleans, "initial-cap") {
			capS = "S"
		}
		period := ""
		if hasBoolean(ref.Booleans, "final-period") {
			period = "."
		}

		return fmt.Sprintf("<span class=\"ref-see\">%see the %s <a href=\"%s\">%s</a>%s</span>\n",
			capS, typeLabel, html.EscapeString(href), display, period)
	}

	calledHow, ok := calleeType(ref, ctx)
	if !ok {
		href := resolveHref(ref, ctx)

		return fmt.Sprintf("<a href=\"%s\">%s</a>\n", html.EscapeString(href), display)
	}

	href := resolveHref(ref, ctx)
	switch calledHow {
	case "expand", "Expand":
		return fmt.Sprintf("<div class=\"ref-expand\"><a href=\"%s\">%s</a></div>\n", html.EscapeString(href), display)
	case "topic", "precis", "contents", "operation":
		return fmt.Sprintf("<span class=\"ref-topic\">“<a href=\"%s\">%s</a>”</span>\n", html.EscapeString(href), display)
	case "crossreference", "CrossRef", "crossref":
		return fmt.Sprintf("<span class=\"ref-crossref\"><a href=\"%s\">%s</a></span>\n", html.EscapeString(href), display)
	default:
		return fmt.Sprintf("<a href=\"%s\">%s</a>\n", html.EscapeString(href), display)
	}
}

func hasBoolean(booleans []string, name string) bool {
	for _, b := range booleans {
		if b == name {
			return true
		}
	}

	return false
}

// calleeType looks up the called-how of a reference against the current
// record's callee map, populated by SetupRecordCallees.
func calleeType(ref *sab.Reference, ctx *renderContext) (string, bool) {
	if ctx == nil || ctx.record == nil || len(ctx.record.Callees) == 0 {
		return "", false
	}

	c, ok := ctx.record.Callees[uniqueIDKey(ref.UniqueID)]
	if !ok {
		return "", false
	}

	return c.CalledHow, true
}

// resolveHref resolves a reference against the registry and relativizes
// the result to the current page (spec §4.8 "Link relativization").
func resolveHref(ref *sab.Reference, ctx *renderContext) string {
	if ctx == nil || ctx.registry == nil {
		return "#"
	}

	target, ok := ctx.registry.Resolve(ref.UniqueID, topicText(ref.Topic))
	if !ok {
		return "#"
	}

	return relativizeLink(target, ctx)
}

// relativizeLink turns a resolved target into a link usable from
// ctx.currentFile: a same-page fragment, or a path relative to the current
// file's directory.
func relativizeLink(target xref.Target, ctx *renderContext) string {
	anchor := xref.Slugify(target.Topic)

	if ctx == nil || ctx.currentFile == "" {
		return target.RelPath + "#" + anchor
	}
	if target.RelPath == ctx.currentFile {
		return "#" + anchor
	}

	rel := relativePath(path.Dir(ctx.currentFile), target.RelPath)

	return rel + "#" + anchor
}

// relativePath computes a slash-separated path from fromDir to to, in the
// style of filepath.Rel but over site-relative (always forward-slash)
// paths rather than OS paths.
func relativePath(fromDir, to string) string {
	if fromDir == "." || fromDir == "" {
		return to
	}

	fromParts := strings.Split(fromDir, "/")
	toParts := strings.Split(to, "/")

	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}

	ups := len(fromParts) - common
	segments := make([]string, 0, ups+len(toParts)-common)
	for i := 0; i < ups; i++ {
		segments = append(segments, "..")
	}
	segments = append(segments, toParts[common:]...)

	if len(segments) == 0 {
		return "."
	}

	return strings.Join(segments, "/")
}
