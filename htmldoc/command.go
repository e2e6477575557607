package htmldoc

import (
	"fmt"
	"html"

	"github.com/arloliu/sabdoc/sab"
)

// silentCommands render as nothing: they carry no visual representation in
// HTML (spec §4.10 "A fixed set of commands renders as empty strings").
var silentCommands = map[string]bool{
	"indexsecondary": true, "tabdivide": true, "permanentstring": true,
	"collect-centering": true, "collect-right-flushing": true,
	"dynamic-left-margin": true, "plainheadingsnow": true, "plainheadings": true,
	"pagefooting": true, "pageheading": true, "pageref": true, "blocklabel": true,
	"hinge": true, "make": true, "tabclear": true, "tabset": true,
	"endexamplecompiledprologue": true, "replicate-pattern": true,
	"simpletablespecs": true, "dictionarytabs": true, "note": true, "bar": true,
	"abbreviation-period": true, "missing-special-character": true,
	"layerederror": true, "include": true, "lisp:case": true,
	"common-lisp:string": true, "lisp:string": true,
	"ignore-white-space": true, "index": true,
}

// renderCommand dispatches a command to its HTML rendering (spec §4.10
// "Command dispatch").
func renderCommand(cmd *sab.Command, ctx *renderContext) string {
	switch cmd.Name {
	case "em":
		return "—"
	case "force-line-break":
		return "<br>"
	case "literal-space":
		return " "
	case "permit-word-break":
		return "​"
	case "tab-to-tab-stop":
		return `<span class="tab-stop"></span>`
	case "blankspace":
		return renderBlankspace(cmd.Parameter)
	case "tag":
		anchor := extractParamText(cmd.Parameter)

		return fmt.Sprintf(`<a id="%s" class="tag"></a>`, html.EscapeString(anchor))
	case "label":
		anchor := extractParamText(cmd.Parameter)

		return fmt.Sprintf(`<a id="%s" class="label"></a>`, html.EscapeString(anchor))
	case "ref":
		target := extractParamText(cmd.Parameter)

		return fmt.Sprintf(`<a href="#%s">%s</a>`, html.EscapeString(target), html.EscapeString(target))
	case "l":
		return renderLCommand(cmd.Parameter, ctx)
	case "value":
		return fmt.Sprintf("<var>%s</var>", html.EscapeString(extractParamText(cmd.Parameter)))
	case "caption":
		return fmt.Sprintf(`<div class="caption">%s</div>`, html.EscapeString(extractParamText(cmd.Parameter)))
	case "newpage":
		return `<hr class="page-break">`
	}

	if silentCommands[cmd.Name] {
		return ""
	}

	return ""
}

// renderLCommand resolves a Lisp symbol name to an href via the registry
// (exact, then upper-cased, then lower-cased) and emits a bold link, or
// bold plain text if nothing resolves.
func renderLCommand(parameter any, ctx *renderContext) string {
	paramText := extractParamText(parameter)
	display := stripPackagePrefix(paramText)

	if ctx != nil && ctx.registry != nil {
		stripped := stripPackagePrefix(paramText)
		if target, ok := ctx.registry.Resolve(nil, stripped); ok {
			href := relativizeLink(target, ctx)

			return fmt.Sprintf(`<b><a href="%s">%s</a></b>`, html.EscapeString(href), html.EscapeString(display))
		}
	}

	return "<b>" + html.EscapeString(display) + "</b>"
}

func renderBlankspace(parameter any) string {
	defaultDiv := `<div class="blankspace" style="height: 1em;"></div>`

	el := parameter
	if list, ok := el.([]any); ok {
		if len(list) == 0 {
			return defaultDiv
		}
		el = list[0]
	}

	list, ok := el.([]any)
	if !ok {
		return defaultDiv
	}

	var count, unit any
	switch len(list) {
	case 3:
		count, unit = list[1], list[2]
	case 2:
		count, unit = list[0], list[1]
	default:
		return defaultDiv
	}

	unitStr := fmt.Sprintf("%v", unit)
	var suffix string
	switch unitStr {
	case "lines":
		suffix = "em"
	case "inches":
		suffix = "in"
	case "cm":
		suffix = "cm"
	default:
		suffix = "em"
	}

	return fmt.Sprintf(`<div class="blankspace" style="height: %v%s;"></div>`, count, suffix)
}

// extractParamText pulls a display string out of a command parameter,
// which may be a bare string or a nested list whose first element carries
// the text.
func extractParamText(parameter any) string {
	switch v := parameter.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case string:
			return first
		case []any:
			if len(first) == 0 {
				return ""
			}

			return fmt.Sprintf("%v", first[0])
		default:
			return fmt.Sprintf("%v", first)
		}
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
