package htmldoc

import (
	"strings"

	"github.com/arloliu/sabdoc/genera"
	"github.com/arloliu/sabdoc/sab"
)

// paragraphBreak is the synthetic marker splitParagraphMarkers inserts in
// place of the genera.ParagraphMarker rune, so later passes can group on
// it positionally instead of re-scanning text (spec §4.10 pass 1).
type paragraphBreak struct{}

// blockLevelNames names environments that a paragraph grouping must never
// wrap: they always remain top-level siblings (spec §4.10 pass 3).
var blockLevelNames = map[string]bool{
	"example": true, "display": true, "enumerate": true, "itemize": true,
	"verbatim": true, "description": true, "center": true, "figure": true,
	"group": true, "multiple": true, "commentary": true,
	"header": true, "heading": true, "majorheading": true,
}

func isBlockLevel(name string) bool {
	lower := strings.ToLower(name)
	if blockLevelNames[lower] {
		return true
	}

	return strings.Contains(lower, "format")
}

// fixUpSpecialMarkup runs the three-pass pre-processing spec §4.10
// describes before a content list is rendered: splitting embedded
// paragraph markers out of text, grouping tab-stop cells, then grouping
// paragraphs while never letting a group span a block-level environment.
func fixUpSpecialMarkup(items []any) []any {
	return groupParagraphs(groupTabStops(splitParagraphMarkers(items)))
}

// splitParagraphMarkers turns a string containing the paragraph-marker
// sentinel into alternating text/paragraphBreak items (pass 1).
func splitParagraphMarkers(items []any) []any {
	out := make([]any, 0, len(items))
	marker := string(genera.ParagraphMarker)

	for _, item := range items {
		text, ok := item.(string)
		if !ok || !strings.Contains(text, marker) {
			out = append(out, item)

			continue
		}

		segments := strings.Split(text, marker)
		for i, seg := range segments {
			if i > 0 {
				out = append(out, paragraphBreak{})
			}
			if seg != "" {
				out = append(out, seg)
			}
		}
	}

	return out
}

func commandName(item any) (string, bool) {
	cmd, ok := item.(*sab.Command)
	if !ok {
		return "", false
	}

	return cmd.Name, true
}

// groupTabStops wraps the cells between tab-to-tab-stop commands into
// synthetic nex-tab-to-tab-stop environments, never spanning a paragraph
// break (pass 2). A content list with no tab-to-tab-stop command at all
// passes through unchanged.
func groupTabStops(items []any) []any {
	hasTab := false
	for _, item := range items {
		if name, ok := commandName(item); ok && name == "tab-to-tab-stop" {
			hasTab = true

			break
		}
	}
	if !hasTab {
		return items
	}

	var out []any
	var group []any

	flush := func() {
		if len(group) > 0 {
			out = append(out, &sab.Envr{Name: "nex-tab-to-tab-stop", Contents: group})
			group = nil
		}
	}

	for _, item := range items {
		switch {
		case isCommand(item, "tab-to-tab-stop"):
			flush()
		case isParagraphBreak(item):
			flush()
			out = append(out, item)
		default:
			group = append(group, item)
		}
	}
	flush()

	return out
}

// groupParagraphs wraps inline runs between paragraph breaks into synthetic
// nex-paragraph environments, flushing whenever a block-level environment
// is encountered so a paragraph never wraps one (pass 3). A list with no
// paragraph break and no block-level environment is returned unchanged, so
// re-running the fix-up over a nex-paragraph's own contents does not wrap
// them again.
func groupParagraphs(items []any) []any {
	needsGrouping := false
	for _, item := range items {
		if isParagraphBreak(item) || isBlockLevelItem(item) {
			needsGrouping = true

			break
		}
	}
	if !needsGrouping {
		return items
	}

	var out []any
	var group []any

	flush := func() {
		if len(group) > 0 {
			out = append(out, &sab.Envr{Name: "nex-paragraph", Contents: group})
			group = nil
		}
	}

	for _, item := range items {
		switch {
		case isParagraphBreak(item):
			flush()
		case isBlockLevelItem(item):
			flush()
			out = append(out, item)
		default:
			group = append(group, item)
		}
	}
	flush()

	return out
}

func isParagraphBreak(item any) bool {
	_, ok := item.(paragraphBreak)

	return ok
}

func isCommand(item any, name string) bool {
	n, ok := commandName(item)

	return ok && n == name
}

func isBlockLevelItem(item any) bool {
	envr, ok := item.(*sab.Envr)
	if !ok {
		return false
	}

	return isBlockLevel(envr.Name)
}
