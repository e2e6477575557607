package svg

import (
	"fmt"
	"html"
	"strings"

	"github.com/arloliu/sabdoc/graphics"
	"github.com/arloliu/sabdoc/raster"
)

// LinkResolver maps string/string-image text to a hyperlink target, if any
// (spec §4.6).
type LinkResolver func(text string) (href string, ok bool)

const charWidth = 10
const charHeight = 16

type renderer struct {
	resolver LinkResolver
	current  *graphics.GraphicsTransform // nil = identity, y negated on emit
	box      bbox

	// path-building cursor for the LineTo/CircularArcTo/ClosePath
	// primitives nested inside a Path form.
	haveCursor           bool
	cursorX, cursorY     float64
	havePathStart        bool
	pathStartX, pathStartY float64

	buf strings.Builder
}

// Render walks forms and produces a standalone <svg>...</svg> document.
// resolver may be nil, in which case no text is linked.
func Render(forms []graphics.Form, resolver LinkResolver) string {
	r := &renderer{resolver: resolver}
	for _, f := range forms {
		r.renderForm(f)
	}

	x, y, w, h := r.box.viewBox()

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="%g %g %g %g"><g>%s</g></svg>`,
		w, h, x, y, w, h, r.buf.String(),
	)
}

// emitY applies the Genera-to-SVG y-axis inversion, except while a child
// transform (graphics-transform) is active: its matrix already encodes
// whatever orientation the picture's author intended (spec §4.6).
func (r *renderer) emitY(y float64) float64 {
	if r.current == nil {
		return -y
	}

	return y
}

func (r *renderer) point(x, y float64) (float64, float64) {
	ey := r.emitY(y)
	r.box.extend(x, ey)

	return x, ey
}

func (r *renderer) renderForm(f graphics.Form) {
	switch v := f.(type) {
	case graphics.Point:
		x, y := r.point(v.X, v.Y)
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="1" %s/>`, x, y, st.fillAttrs()))

	case graphics.Line:
		x1, y1 := r.point(v.X1, v.Y1)
		x2, y2 := r.point(v.X2, v.Y2)
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" %s/>`, x1, y1, x2, y2, st.strokeAttrs()))

	case graphics.Lines:
		pts := r.pointsAttr(v.Points)
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" %s/>`, pts, st.strokeAttrs()))

	case graphics.Rectangle:
		x1, y1 := r.point(v.Left, v.Top)
		x2, y2 := r.point(v.Right, v.Bottom)
		st := resolveStyle(v.Options)
		x, y, w, h := normalizeRect(x1, y1, x2, y2)
		r.buf.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" %s/>`, x, y, w, h, st.fillAttrs()))

	case graphics.Triangle:
		pts := r.pointsAttr([]graphics.Coord{v.P1, v.P2, v.P3})
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<polygon points="%s" %s/>`, pts, st.fillAttrs()))

	case graphics.Polygon:
		pts := r.pointsAttr(v.Points)
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<polygon points="%s" %s/>`, pts, st.fillAttrs()))

	case graphics.Ellipse:
		cx, cy := r.point(v.CenterX, v.CenterY)
		r.box.extend(v.CenterX+v.RadiusX, r.emitY(v.CenterY+v.RadiusY))
		r.box.extend(v.CenterX-v.RadiusX, r.emitY(v.CenterY-v.RadiusY))
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" %s/>`, cx, cy, v.RadiusX, v.RadiusY, st.fillAttrs()))

	case graphics.BezierCurve:
		p0x, p0y := r.point(v.P0.X, v.P0.Y)
		p1x, p1y := r.point(v.P1.X, v.P1.Y)
		p2x, p2y := r.point(v.P2.X, v.P2.Y)
		p3x, p3y := r.point(v.P3.X, v.P3.Y)
		st := resolveStyle(v.Options)
		d := fmt.Sprintf("M%g,%g C%g,%g %g,%g %g,%g", p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y)
		r.buf.WriteString(fmt.Sprintf(`<path d="%s" %s/>`, d, st.fillAttrs()))

	case graphics.CubicSpline:
		pts := r.pointsAttr(v.Points)
		st := resolveStyle(v.Options)
		r.buf.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" %s/>`, pts, st.strokeAttrs()))

	case graphics.Path:
		r.havePathStart = false
		r.haveCursor = false
		for _, sub := range v.Forms {
			r.renderForm(sub)
		}

	case graphics.PathOp:
		if inner, ok := v.Value.(graphics.Path); ok {
			r.renderForm(inner)
		}

	case graphics.StringAt:
		r.renderText(v.X, v.Y, v.Text)

	case graphics.StringImage:
		r.renderText(v.X, v.Y, v.Text)

	case graphics.CircularArcTo:
		// approximated as a straight segment; true arc geometry is not
		// reconstructible from the decoded operands alone.
		r.lineTo(v.X, v.Y)

	case graphics.Image:
		r.renderImage(v)

	case graphics.LineTo:
		r.lineTo(v.X, v.Y)

	case graphics.ClosePath:
		if r.haveCursor && r.havePathStart {
			x1, y1 := r.point(r.cursorX, r.cursorY)
			x2, y2 := r.point(r.pathStartX, r.pathStartY)
			r.buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="black" stroke-width="1"/>`, x1, y1, x2, y2))
		}
		r.haveCursor = false
		r.havePathStart = false

	case graphics.SetCurrentPosition:
		r.cursorX, r.cursorY = v.X, v.Y
		r.haveCursor = true
		if !r.havePathStart {
			r.pathStartX, r.pathStartY = v.X, v.Y
			r.havePathStart = true
		}
		r.point(v.X, v.Y)

	case graphics.GraphicsTransform:
		t := v
		r.current = &t

	case graphics.ScanConversionMode:
		sub := &renderer{resolver: r.resolver, current: r.current}
		for _, f := range v.Forms {
			sub.renderForm(f)
		}
		r.buf.WriteString(sub.buf.String())
		r.box.merge(sub.box)
	}
}

func (r *renderer) lineTo(x, y float64) {
	if r.haveCursor {
		x1, y1 := r.point(r.cursorX, r.cursorY)
		x2, y2 := r.point(x, y)
		r.buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="black" stroke-width="1"/>`, x1, y1, x2, y2))
	} else {
		r.point(x, y)
	}
	r.cursorX, r.cursorY = x, y
	r.haveCursor = true
	if !r.havePathStart {
		r.pathStartX, r.pathStartY = x, y
		r.havePathStart = true
	}
}

func (r *renderer) pointsAttr(coords []graphics.Coord) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		x, y := r.point(c.X, c.Y)
		parts[i] = fmt.Sprintf("%g,%g", x, y)
	}

	return strings.Join(parts, " ")
}

func (r *renderer) renderText(x, y float64, text string) {
	ex, ey := r.point(x, y)
	r.box.extend(x+float64(len(text))*charWidth, r.emitY(y)-charHeight)

	escaped := html.EscapeString(text)
	textEl := fmt.Sprintf(`<text x="%g" y="%g">%s</text>`, ex, ey, escaped)

	if r.resolver != nil {
		if href, ok := r.resolver(text); ok {
			r.buf.WriteString(fmt.Sprintf(`<a href="%s" style="fill:blue;">%s</a>`, html.EscapeString(href), textEl))
			return
		}
	}
	r.buf.WriteString(textEl)
}

func (r *renderer) renderImage(v graphics.Image) {
	x, y := r.point(v.X, v.Y)
	width, height := float64(v.Raster.Width), float64(v.Raster.Height)
	if right, ok := v.Options.Get(":image-right"); ok {
		width = toFloat(right) - v.X
	}
	if bottom, ok := v.Options.Get(":image-bottom"); ok {
		height = toFloat(bottom) - v.Y
	}
	r.box.extend(v.X+width, r.emitY(v.Y+height))

	uri, err := raster.EncodeDataURI(v.Raster.Width, v.Raster.Height, v.Raster.Bytes)
	if err != nil {
		r.buf.WriteString(fmt.Sprintf(`<!-- raster decode failed: %s -->`, html.EscapeString(err.Error())))
		return
	}
	r.buf.WriteString(fmt.Sprintf(`<image x="%g" y="%g" width="%g" height="%g" xlink:href="%s"/>`, x, y, width, height, uri))
}

func normalizeRect(x1, y1, x2, y2 float64) (x, y, w, h float64) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	return x1, y1, x2 - x1, y2 - y1
}
