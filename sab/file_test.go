package sab_test

import (
	"testing"

	"github.com/arloliu/sabdoc/internal/hash"
	"github.com/arloliu/sabdoc/sab"
	"github.com/stretchr/testify/require"
)

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// buildMinimalSAB constructs a one-record, one-index-item SAB file byte
// buffer. Offsets are computed from the actual section lengths rather than
// hand-counted, so the fixture stays correct under edits.
func buildMinimalSAB() []byte {
	var records []byte
	records = append(records, byte(sab.OpRecord))
	records = append(records, byte(sab.OpString), 3, 'f', 'o', 'o') // name "foo"
	records = append(records, byte(sab.OpTypeSymbol), byte(sab.OpSagePkgSymbolDef), 7,
		's', 'e', 'c', 't', 'i', 'o', 'n') // type "section"
	records = append(records, byte(sab.OpFieldAlist), 0, 0) // no fields

	var index []byte
	index = append(index, byte(sab.OpIndex))
	index = append(index, u32le(1)...) // 1 index-item
	index = append(index, byte(sab.OpIndexItem))
	index = append(index, byte(sab.OpString), 3, 'f', 'o', 'o') // topic "foo"
	index = append(index, byte(sab.OpString), 8, 'f', 'u', 'n', 'c', 't', 'i', 'o', 'n') // type "function"
	index = append(index, 1, 0)                                                         // field count = 1
	index = append(index, byte(sab.OpFieldName), byte(sab.OpString), 9,
		'u', 'n', 'i', 'q', 'u', 'e', '-', 'i', 'd')
	index = append(index, byte(sab.OpUniqueID), byte(sab.OpString), 6, 'f', 'o', 'o', '-', 'i', 'd')

	var header []byte
	header = append(header, u32le(0)...) // id-pattern
	header = append(header, 7)           // version
	header = append(header, byte(sab.OpFileAttributeAlist), byte(sab.OpFieldAlist), 0, 0)

	recordsOffset := uint32(len(header) + 8) // +8 for the two offsets below
	indexOffset := recordsOffset + uint32(len(records))

	full := append([]byte{}, header...)
	full = append(full, u32le(recordsOffset)...)
	full = append(full, u32le(indexOffset)...)
	full = append(full, records...)
	full = append(full, index...)

	return full
}

func TestReadFile_Minimal(t *testing.T) {
	data := buildMinimalSAB()

	f, err := sab.ReadFile(data, nil)
	require.NoError(t, err)
	require.Empty(t, f.FileAttributes)
	require.Len(t, f.Records, 1)
	require.Equal(t, "foo", f.Records[0].Name)
	require.Equal(t, "section", f.Records[0].Type)
	require.Len(t, f.Index, 1)
	require.Equal(t, "foo", f.Index[0].Topic)
	uid, ok := f.Index[0].Field("unique-id")
	require.True(t, ok)
	require.Equal(t, "foo-id", uid)
}

func TestReadIndexOnly_MatchesFullRead(t *testing.T) {
	data := buildMinimalSAB()

	interner := hash.NewInterner()
	full, err := sab.ReadFile(data, interner)
	require.NoError(t, err)

	idxOnly, err := sab.ReadIndexOnly(data, interner)
	require.NoError(t, err)

	// spec §8: index-only fast path and full read agree on file attributes
	// and on the index contents.
	require.Equal(t, full.FileAttributes, idxOnly.FileAttributes)
	require.Equal(t, full.Index, idxOnly.Index)
}
