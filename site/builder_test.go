package site

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sabdoc/format"
	"github.com/arloliu/sabdoc/sab"
)

func TestNew_AppliesOptions(t *testing.T) {
	b, err := New("in", "out", WithXML(), WithCompression(format.CompressionGzip), WithCache("cache.bin"), WithWorkers(4))
	require.NoError(t, err)
	require.True(t, b.emitXML)
	require.Equal(t, format.CompressionGzip, b.compression)
	require.Equal(t, "cache.bin", b.cachePath)
	require.Equal(t, 4, b.workers)
}

func TestNew_DefaultsWorkersToNumCPU(t *testing.T) {
	b, err := New("in", "out")
	require.NoError(t, err)
	require.Greater(t, b.workers, 0)
	require.False(t, b.emitXML)
	require.Equal(t, format.CompressionNone, b.compression)
}

func TestWithWorkers_RejectsNonPositive(t *testing.T) {
	_, err := New("in", "out", WithWorkers(0))
	require.Error(t, err)
}

func TestPageTitle_PrefersFunctionSpecName(t *testing.T) {
	require.Equal(t, "car", pageTitle([]*sab.Record{{Name: sab.FunctionSpec{Name: "car"}}}))
	require.Equal(t, "Overview", pageTitle([]*sab.Record{{Name: "Overview"}}))
	require.Equal(t, "Untitled", pageTitle(nil))
}
