// Package svg renders a decoded binary-graphics form list to an inline SVG
// document (spec §4.6): y-axis inversion, affine transform replacement,
// bounding-box tracking, and raster/text primitive handling.
package svg

import "math"

// bbox accumulates the smallest rectangle enclosing every primitive's
// control points, in the same coordinate space the elements are emitted in.
type bbox struct {
	minX, minY, maxX, maxY float64
	touched                bool
}

func (b *bbox) extend(x, y float64) {
	if !b.touched {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.touched = true

		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *bbox) merge(other bbox) {
	if !other.touched {
		return
	}
	b.extend(other.minX, other.minY)
	b.extend(other.maxX, other.maxY)
}

// viewBox returns (minX, minY, width, height), defaulting to a 1x1 box at
// the origin when nothing was drawn.
func (b *bbox) viewBox() (float64, float64, float64, float64) {
	if !b.touched {
		return 0, 0, 1, 1
	}

	return b.minX, b.minY, b.maxX - b.minX, b.maxY - b.minY
}
