package genera_test

import (
	"testing"

	"github.com/arloliu/sabdoc/genera"
	"github.com/stretchr/testify/require"
)

func TestRecodeShort_Scenario3(t *testing.T) {
	// "x\x02y\x8d\x8dz\x89q" with col=0 before the tab -> "xαy<para>z       q"
	raw := []byte{'x', 0x02, 'y', 0x8d, 0x8d, 'z', 0x89, 'q'}
	got, err := genera.RecodeShort(raw)
	require.NoError(t, err)

	want := "x" + "α" + "y" + string(genera.ParagraphMarker) + "z" + "       " + "q"
	require.Equal(t, want, got)
}

func TestRecodeShort_SingleLineBreak(t *testing.T) {
	raw := []byte{'a', 0x8d, 'b'}
	got, err := genera.RecodeShort(raw)
	require.NoError(t, err)
	require.Equal(t, "a"+string(genera.LineBreakMarker)+"b", got)
}

func TestRecodeShort_TabResetsOnLineBreak(t *testing.T) {
	// After a line break, column resets to 0 so the next tab goes to 8 spaces.
	raw := []byte{'a', 'b', 0x8d, 0x89}
	got, err := genera.RecodeShort(raw)
	require.NoError(t, err)
	require.Equal(t, "ab"+string(genera.LineBreakMarker)+"        ", got)
}

func TestRecodeShort_DropsUnmappedC1(t *testing.T) {
	raw := []byte{'a', 0x90, 'b'}
	got, err := genera.RecodeShort(raw)
	require.NoError(t, err)
	require.Equal(t, "ab", got)
}
