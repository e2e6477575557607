package sabstream_test

import (
	"testing"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/sabstream"
	"github.com/stretchr/testify/require"
)

func TestStream_ReadPrimitives(t *testing.T) {
	data := []byte{
		0x2A,                   // u8
		0x34, 0x12,             // u16 LE -> 0x1234
		0x78, 0x56, 0x34, 0x12, // u32 LE -> 0x12345678
	}
	s := sabstream.New(data)

	b, err := s.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(0x2A), b)

	u16, err := s.ReadU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := s.ReadU32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), u32)

	require.True(t, s.EOF())
}

func TestStream_ReadBytesEOF(t *testing.T) {
	s := sabstream.New([]byte{0x01, 0x02})
	_, err := s.ReadBytes(3)
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestStream_PeekDoesNotAdvance(t *testing.T) {
	s := sabstream.New([]byte{0x99})
	b, err := s.Peek()
	require.NoError(t, err)
	require.Equal(t, byte(0x99), b)
	require.Equal(t, 0, s.Offset())
}

func TestStream_SeekAndUintLE(t *testing.T) {
	s := sabstream.New([]byte{0xFF, 0xFF, 0xFF, 0x01, 0x02, 0x03})
	require.NoError(t, s.Seek(3))
	n, err := s.ReadUintLE(3)
	require.NoError(t, err)
	require.Equal(t, "0x30201", "0x"+n.Text(16))
}

func TestStream_ReadBytesIsZeroCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	s := sabstream.New(data)
	view, err := s.ReadBytes(4)
	require.NoError(t, err)
	data[0] = 0xAA
	require.Equal(t, byte(0xAA), view[0])
}
