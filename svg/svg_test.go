package svg_test

import (
	"strings"
	"testing"

	"github.com/arloliu/sabdoc/graphics"
	"github.com/arloliu/sabdoc/svg"
	"github.com/stretchr/testify/require"
)

func TestRender_LineNegatesY(t *testing.T) {
	out := svg.Render([]graphics.Form{
		graphics.Line{X1: 0, Y1: 10, X2: 5, Y2: 20},
	}, nil)
	require.Contains(t, out, `y1="-10"`)
	require.Contains(t, out, `y2="-20"`)
}

func TestRender_FilledRectangleOmitsStroke(t *testing.T) {
	out := svg.Render([]graphics.Form{
		graphics.Rectangle{Left: 0, Top: 0, Right: 10, Bottom: 10, Options: graphics.Options{":filled", true}},
	}, nil)
	require.Contains(t, out, `fill="black"`)
	require.Contains(t, out, `stroke="none"`)
}

func TestRender_GrayLevelComputesColor(t *testing.T) {
	out := svg.Render([]graphics.Form{
		graphics.Point{X: 0, Y: 0, Options: graphics.Options{":gray-level", 1.0}},
	}, nil)
	require.Contains(t, out, `rgb(0,0,0)`)
}

func TestRender_StringWithLinkResolver(t *testing.T) {
	resolver := func(text string) (string, bool) {
		if text == "car" {
			return "/functions/car.html", true
		}

		return "", false
	}
	out := svg.Render([]graphics.Form{
		graphics.StringAt{X: 0, Y: 0, Text: "car"},
	}, resolver)
	require.True(t, strings.Contains(out, `href="/functions/car.html"`))
	require.True(t, strings.Contains(out, ">car</text>"))
}

func TestRender_GraphicsTransformSuppressesYNegation(t *testing.T) {
	out := svg.Render([]graphics.Form{
		graphics.GraphicsTransform{R11: 1, R12: 0, R21: 0, R22: 1, TX: 0, TY: 0},
		graphics.Point{X: 3, Y: 7},
	}, nil)
	require.Contains(t, out, `cy="7"`)
}

func TestRender_EmptyFormsProducesUnitViewBox(t *testing.T) {
	out := svg.Render(nil, nil)
	require.Contains(t, out, `viewBox="0 0 1 1"`)
}
