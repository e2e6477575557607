package htmldoc

import (
	"fmt"
	"html"

	"github.com/arloliu/sabdoc/graphics"
	"github.com/arloliu/sabdoc/sab"
	"github.com/arloliu/sabdoc/svg"
)

// renderPicture decodes a picture's binary graphics and renders it via
// svg.Render, with a link resolver backed by the registry. A decode
// failure degrades locally to a placeholder, never failing the page
// (spec §4.10 "Pictures", §7 "malformed pictures do not kill a page").
func renderPicture(pic *sab.Picture, ctx *renderContext) string {
	if len(pic.Raw) == 0 {
		return fmt.Sprintf(`<div class="picture"><p>Picture: %s</p></div>`, html.EscapeString(pic.DisplayName))
	}

	forms, err := graphics.Decode(pic.Raw)
	if err != nil {
		return fmt.Sprintf(`<div class="picture"><p>Picture: %s (error: %s)</p></div>`,
			html.EscapeString(pic.DisplayName), html.EscapeString(err.Error()))
	}

	out := svg.Render(forms, pictureLinkResolver(ctx))

	return fmt.Sprintf("<div class=\"picture\">\n%s\n</div>", out)
}

// pictureLinkResolver adapts the registry's topic-name lookup to the
// svg.LinkResolver shape a picture's embedded text labels need.
func pictureLinkResolver(ctx *renderContext) svg.LinkResolver {
	if ctx == nil || ctx.registry == nil {
		return nil
	}

	return func(text string) (string, bool) {
		target, ok := ctx.registry.Resolve(nil, text)
		if !ok {
			return "", false
		}

		return relativizeLink(target, ctx), true
	}
}
