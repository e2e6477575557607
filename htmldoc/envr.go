package htmldoc

import (
	"fmt"
	"html"
	"strings"

	"github.com/arloliu/sabdoc/sab"
)

// renderEnvr dispatches an environment to its HTML rendering (spec §4.10
// "Environment dispatch").
func renderEnvr(envr *sab.Envr, ctx *renderContext) string {
	content := renderContentList(envr.Contents, ctx)
	name := strings.ToLower(envr.Name)

	switch name {
	case "b":
		return "<b>" + content + "</b>"
	case "bi":
		return "<b><i>" + content + "</i></b>"
	case "i":
		return "<i>" + content + "</i>"
	case "r", "g", "w", "p", "s", "f":
		return fmt.Sprintf(`<span class="%s">%s</span>`, name, content)
	case "k", "m", "ls", "t":
		return fmt.Sprintf(`<code class="%s">%s</code>`, name, content)
	case "c":
		return `<span class="pathname">` + content + `</span>`
	case "u", "un", "ux":
		return `<span class="underline">` + content + `</span>`

	case "example":
		return `<div class="example"><pre>` + content + `</pre></div>`
	case "display":
		raw := strings.TrimSpace(renderContentListRaw(envr.Contents, ctx))

		return `<div class="display">` + raw + `</div>`
	case "enumerate":
		return `<ol class="enumerate">` + extractListItems(envr.Contents, ctx) + `</ol>`
	case "itemize":
		return `<ul class="itemize">` + extractListItems(envr.Contents, ctx) + `</ul>`
	case "verbatim":
		return `<pre class="verbatim">` + content + `</pre>`
	case "description":
		return `<div class="description">` + content + `</div>`
	case "center":
		return `<div class="center">` + content + `</div>`
	case "figure":
		return `<div class="figure">` + content + `</div>`
	case "group":
		return `<div class="group">` + content + `</div>`
	case "multiple":
		return `<div class="multiple">` + content + `</div>`
	case "commentary":
		return `<div class="commentary">` + content + `</div>`

	case "header":
		return `<h3 class="header">` + content + `</h3>`
	case "heading":
		return `<h4 class="heading">` + content + `</h4>`
	case "majorheading":
		return `<h3 class="majorheading">` + content + `</h3>`

	case "common-lisp:-", "lisp:-":
		return "<sub>" + content + "</sub>"
	case "common-lisp:+", "lisp:+":
		return "<sup>" + content + "</sup>"
	case "lisp:t", "common-lisp:t":
		return `<span class="true">` + content + `</span>`

	case "lisp:format", "common-lisp:format", "global:format":
		return `<div class="format">` + content + `</div>`

	case "nex-tab-to-tab-stop":
		return `<span class="tab-stop">` + content + `</span>`
	case "nex-paragraph":
		return "<p>" + content + "</p>"
	}

	if knownEnvClasses[name] {
		return fmt.Sprintf(`<div class="%s">%s</div>`, html.EscapeString(name), content)
	}

	return fmt.Sprintf(`<div class="unknown-env" data-name="%s">%s</div>`, html.EscapeString(name), content)
}

var knownEnvClasses = map[string]bool{
	"quotation": true, "advancednote": true, "plus": true, "minus": true, "crossref": true,
	"table": true, "simpletable": true, "checklist": true, "equation": true, "verse": true,
	"text": true, "level": true, "flushright": true, "flushleft": true, "inputexample": true,
	"fileexample": true, "programexample": true, "outputexample": true, "activeexample": true,
	"box": true, "subheading": true, "subsubheading": true, "captionenv": true,
	"common-lisp:block": true, "lisp:block": true, "c-description": true,
	"bar": true, "old-bar-environment": true, "largestyle": true, "titlestyle": true,
	"transparent": true, "layerederrorenv": true, "lisp:float": true, "fullpagefigure": true,
	"fullpagetable": true,
}

// extractListItems splits fixed-up contents on nex-paragraph boundaries,
// wrapping each chunk in <li> (spec §4.10 enumerate/itemize).
func extractListItems(contents []any, ctx *renderContext) string {
	processed := fixUpSpecialMarkup(contents)

	var items []string
	var current strings.Builder
	for _, item := range processed {
		if envr, ok := item.(*sab.Envr); ok && envr.Name == "nex-paragraph" {
			if current.Len() > 0 {
				items = append(items, current.String())
				current.Reset()
			}
			items = append(items, renderContentList(envr.Contents, ctx))

			continue
		}
		current.WriteString(renderSage(item, ctx))
	}
	if current.Len() > 0 {
		items = append(items, current.String())
	}

	if len(items) == 0 {
		return renderContentList(contents, ctx)
	}

	var b strings.Builder
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		b.WriteString("<li>" + item + "</li>\n")
	}

	return b.String()
}
