package sab_test

import (
	"testing"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/sab"
	"github.com/stretchr/testify/require"
)

func TestReadFile_BadIDPattern(t *testing.T) {
	// spec §8 scenario 1: bad id-pattern.
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x07}
	_, err := sab.ReadFile(data, nil)
	require.ErrorIs(t, err, errs.ErrNotSabFile)
}

func TestReadFile_BadVersion(t *testing.T) {
	// spec §8 scenario 2: bad version.
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x05}
	_, err := sab.ReadFile(data, nil)
	require.ErrorIs(t, err, errs.ErrBadVersion)
}

func TestReader_FixnumAndString(t *testing.T) {
	data := []byte{
		byte(sab.OpFixnum), 0x2A, 0x00, 0x00, 0x00, // fixnum 42
		byte(sab.OpString), 0x03, 'f', 'o', 'o', // "foo"
	}
	r := sab.NewReader(data, nil)

	v, err := r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	v, err = r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, "foo", v)
	require.True(t, r.EOF())
}

func TestReader_SymbolDefAndRef(t *testing.T) {
	data := []byte{
		byte(sab.OpSagePkgSymbolDef), 0x07, 's', 'e', 'c', 't', 'i', 'o', 'n',
		byte(sab.OpSymbolRef), 0x00, 0x00,
	}
	r := sab.NewReader(data, nil)

	v, err := r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, "section", v)

	v, err = r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, "section", v)
}

func TestReader_SymbolRefOutOfBounds(t *testing.T) {
	data := []byte{byte(sab.OpSymbolRef), 0x00, 0x00}
	r := sab.NewReader(data, nil)
	_, err := r.ReadThing()
	require.ErrorIs(t, err, errs.ErrSymbolIndexOOB)
}

func TestReader_OpcodeMismatch(t *testing.T) {
	data := []byte{byte(sab.OpFixnum), 0, 0, 0, 0}
	r := sab.NewReader(data, nil)
	_, err := r.ReadExpected(sab.OpString)
	require.ErrorIs(t, err, errs.ErrOpcodeMismatch)
}

func TestReader_UnknownOpcode(t *testing.T) {
	data := []byte{0xFE}
	r := sab.NewReader(data, nil)
	_, err := r.ReadThing()
	require.ErrorIs(t, err, errs.ErrUnknownOpcode)
}

func TestReader_Reference(t *testing.T) {
	data := []byte{
		byte(sab.OpReference),
		byte(sab.OpString), 0x03, 'c', 'a', 'r',
		byte(sab.OpString), 0x08, 'f', 'u', 'n', 'c', 't', 'i', 'o', 'n',
		byte(sab.OpUniqueID), byte(sab.OpString), 0x02, 'u', '1',
		byte(sab.OpString), 0x00, // view: empty string
		byte(sab.OpSagePkgSymbolDef), 0x08, 'l', 'i', 's', 'p', ':', 'n', 'i', 'l', // field -> lisp:nil
	}
	r := sab.NewReader(data, nil)
	v, err := r.ReadThing()
	require.NoError(t, err)
	ref, ok := v.(*sab.Reference)
	require.True(t, ok)
	require.Equal(t, "car", ref.Topic)
	require.Equal(t, "function", ref.Type)
	require.Equal(t, "u1", ref.UniqueID)
	require.Equal(t, "", ref.View)
	require.Equal(t, []any{}, ref.Field)
}

func TestReader_Picture(t *testing.T) {
	data := []byte{
		byte(sab.OpPicture),
		byte(sab.OpString), 0x03, 'r', 'a', 's',
		byte(sab.OpString), 0x04, 'p', '.', 'r', 'a',
		0x05, 'p', 'i', 'c', '1', '!', // short-string display-name: len=5, "pic1!"
		0x03, 0x00, 0x00, 0x00, // raw byte length=3
		0xDE, 0xAD, 0xBE, // only 3 bytes used
	}
	r := sab.NewReader(data, nil)
	v, err := r.ReadThing()
	require.NoError(t, err)
	pic, ok := v.(*sab.Picture)
	require.True(t, ok)
	require.Equal(t, "ras", pic.Type)
	require.Equal(t, "p.ra", pic.FileName)
	require.Equal(t, "pic1!", pic.DisplayName)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE}, pic.Raw)
}
