package graphics_test

import (
	"testing"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/graphics"
	"github.com/stretchr/testify/require"
)

func TestDecode_BadFormatVersion(t *testing.T) {
	data := []byte{51, 2}
	_, err := graphics.Decode(data)
	require.ErrorIs(t, err, errs.ErrBadGraphicsVersion)
}

func TestDecode_UnknownOpcode(t *testing.T) {
	data := []byte{51, 1, 0xFF}
	_, err := graphics.Decode(data)
	require.ErrorIs(t, err, errs.ErrUnknownGraphicsOpcode)
}

func TestDecode_ForValueAtTopLevel(t *testing.T) {
	data := []byte{51, 1, 52, 133}
	_, err := graphics.Decode(data)
	require.ErrorIs(t, err, errs.ErrUnexpectedForValue)
}

func TestDecode_Point(t *testing.T) {
	data := []byte{
		51, 1, // format-version 1
		1,      // point
		52, 133, // x = 5
		53, 10, 128, // y = 10
		50, // end (options)
	}
	forms, err := graphics.Decode(data)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	p, ok := forms[0].(graphics.Point)
	require.True(t, ok)
	require.Equal(t, 5.0, p.X)
	require.Equal(t, 10.0, p.Y)
}

func TestDecode_PointWithOptions(t *testing.T) {
	data := []byte{
		51, 1,
		1,
		52, 133, // x = 5
		52, 138, // y = 10
		64, 37, // keyword :filled
		62,     // true
		50,     // end options
	}
	forms, err := graphics.Decode(data)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	p := forms[0].(graphics.Point)
	v, ok := p.Options.Get(":filled")
	require.True(t, ok)
	require.Equal(t, true, v)
}

func TestDecode_PathOpWrapsNestedPath(t *testing.T) {
	data := []byte{
		51, 1,
		11, // path-op
		22, // path command
		50, // end of inner path: empty
		50, // end of path-op's options
	}
	forms, err := graphics.Decode(data)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	op, ok := forms[0].(graphics.PathOp)
	require.True(t, ok)
	path, ok := op.Value.(graphics.Path)
	require.True(t, ok)
	require.Empty(t, path.Forms)
}

func TestDecode_ImageWithRasterImage(t *testing.T) {
	data := []byte{
		51, 1,
		16,     // image
		52, 128, // x = 0
		52, 128, // y = 0
		23, 1, // raster-image, byte-size = 1
		52, 136, // width = 8
		52, 129, // height = 1
		0xAA, // 1 byte of pixel data
		50,   // end options
	}
	forms, err := graphics.Decode(data)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	img, ok := forms[0].(graphics.Image)
	require.True(t, ok)
	require.Equal(t, 8, img.Raster.Width)
	require.Equal(t, 1, img.Raster.Height)
	require.Equal(t, []byte{0xAA}, img.Raster.Bytes)
}

func TestDecode_ScanConversionMode(t *testing.T) {
	data := []byte{
		51, 1,
		74, // scan-conversion-mode
		50, // empty nested form list
		50, // empty options
	}
	forms, err := graphics.Decode(data)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	scm, ok := forms[0].(graphics.ScanConversionMode)
	require.True(t, ok)
	require.Empty(t, scm.Forms)
}
