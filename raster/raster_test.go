package raster_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/arloliu/sabdoc/raster"
	"github.com/stretchr/testify/require"
)

func TestEncodeDataURI_Prefix(t *testing.T) {
	uri, err := raster.EncodeDataURI(8, 1, []byte{0xAA})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeDataURI_DecodesToExpectedDimensions(t *testing.T) {
	uri, err := raster.EncodeDataURI(16, 2, []byte{0x0F, 0xF0, 0xAA, 0x55})
	require.NoError(t, err)

	encoded := strings.TrimPrefix(uri, "data:image/png;base64,")
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())
}

func TestEncodeDataURI_PayloadTooShort(t *testing.T) {
	_, err := raster.EncodeDataURI(16, 2, []byte{0x00})
	require.Error(t, err)
}
