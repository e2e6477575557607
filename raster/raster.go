// Package raster turns a 1-bit-per-pixel SAB raster-image payload into a PNG
// data URI (spec §4.7). No third-party PNG encoder exists in the retrieval
// pack (x/image ships bmp/tiff/webp/ccitt codecs but not png); the standard
// library's image/png is the ecosystem's own answer to this concern, so it
// is used directly rather than reimplemented.
package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/arloliu/sabdoc/errs"
)

// bitReverseTable precomputes the MSB<->LSB bit reversal of every byte
// value, applied to each payload byte before it is packed into the image
// (spec §4.7: "Genera" bit order is the mirror of the most-significant-bit
// first order bitImage.At reads pixels in).
var bitReverseTable [256]byte

func init() {
	for i := range bitReverseTable {
		b := byte(i)
		b = (b&0xF0)>>4 | (b&0x0F)<<4
		b = (b&0xCC)>>2 | (b&0x33)<<2
		b = (b&0xAA)>>1 | (b&0x55)<<1
		bitReverseTable[i] = b
	}
}

func reverseBits(b byte) byte {
	return bitReverseTable[b]
}

// bitImage adapts a packed 1-bit-per-pixel row-major buffer to image.Image.
type bitImage struct {
	width, height int
	rowBytes      int
	data          []byte
}

func (b *bitImage) ColorModel() color.Model { return color.GrayModel }

func (b *bitImage) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

func (b *bitImage) At(x, y int) color.Color {
	idx := y*b.rowBytes + x/8
	bit := b.data[idx] & (0x80 >> uint(x%8))
	if bit != 0 {
		return color.Gray{Y: 255}
	}

	return color.Gray{Y: 0}
}

// EncodeDataURI reverses the bits of every payload byte, packs the result
// into a 1-bit-per-pixel image of the given dimensions, encodes it as PNG,
// and returns a "data:image/png;base64,..." URI.
func EncodeDataURI(width, height int, payload []byte) (string, error) {
	rowBytes := (width + 7) / 8
	required := rowBytes * height
	if len(payload) < required {
		return "", fmt.Errorf("raster payload too short: need %d bytes, got %d: %w", required, len(payload), errs.ErrUnexpectedEOF)
	}

	flipped := make([]byte, required)
	for i, b := range payload[:required] {
		flipped[i] = reverseBits(b)
	}

	img := &bitImage{width: width, height: height, rowBytes: rowBytes, data: flipped}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
