package sab_test

import (
	"testing"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/sab"
	"github.com/stretchr/testify/require"
)

func TestFatString_NoStyleBlock(t *testing.T) {
	data := []byte{
		byte(sab.OpFatString),
		2, 5, 0, // dimCount=2, dims=[5,0]: 5 chars, no style block
		5, 0, 'h', 'e', 'l', 'l', 'o', // chunk-len=5, discard byte, "hello"
	}
	r := sab.NewReader(data, nil)
	v, err := r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestFatString_0x0CStyleBlock(t *testing.T) {
	data := []byte{
		byte(sab.OpFatString),
		2, 3, 1, // dimCount=2, dims=[3,1]
		0xAA,             // skip dims[1]=1 byte
		0x0C,             // type code
		2, 0x01, 0x02,    // L1=2 + discard
		1, 0x03,          // L2=1 + discard
		0x10,             // terminator
		3, 'A', 'r', 'i', // font-name-len=3 + "Ari"
		0x00,             // trailing zero
		3, 0x00, 'a', 'b', 'c', // chunk-len=3, discard, "abc"
	}
	r := sab.NewReader(data, nil)
	v, err := r.ReadThing()
	require.NoError(t, err)
	require.Equal(t, "abc", v)
}

func TestFatString_UnknownStyleTypeCode(t *testing.T) {
	data := []byte{
		byte(sab.OpFatString),
		2, 1, 1, // dimCount=2, dims=[1,1]
		0xAA, // skip 1 byte
		0xFF, // unknown type code
	}
	r := sab.NewReader(data, nil)
	_, err := r.ReadThing()
	require.ErrorIs(t, err, errs.ErrFatStringFraming)
}
