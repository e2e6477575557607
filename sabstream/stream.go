// Package sabstream provides a byte-cursor reader over an immutable buffer,
// the primitive every SAB and binary-graphics decoder reads through.
package sabstream

import (
	"math"
	"math/big"

	"github.com/arloliu/sabdoc/endian"
	"github.com/arloliu/sabdoc/errs"
)

// Stream is a (buffer, offset) pair. The invariant offset ∈ [0, len(buffer)]
// holds after every successful operation; a read that would exceed len(data)
// fails with errs.ErrUnexpectedEOF and leaves the offset unchanged.
type Stream struct {
	data   []byte
	offset int
	engine endian.EndianEngine
}

// New wraps data for little-endian reads starting at offset 0. All SAB and
// binary-graphics integers are little-endian (spec §6).
func New(data []byte) *Stream {
	return &Stream{data: data, engine: endian.GetLittleEndianEngine()}
}

// Offset returns the current cursor position.
func (s *Stream) Offset() int { return s.offset }

// Len returns the total buffer length.
func (s *Stream) Len() int { return len(s.data) }

func (s *Stream) require(n int) error {
	if s.offset+n > len(s.data) {
		return errs.ErrUnexpectedEOF
	}

	return nil
}

// ReadU8 reads one byte and advances the cursor.
func (s *Stream) ReadU8() (byte, error) {
	if err := s.require(1); err != nil {
		return 0, err
	}
	b := s.data[s.offset]
	s.offset++

	return b, nil
}

// ReadU16LE reads a little-endian uint16.
func (s *Stream) ReadU16LE() (uint16, error) {
	if err := s.require(2); err != nil {
		return 0, err
	}
	v := s.engine.Uint16(s.data[s.offset : s.offset+2])
	s.offset += 2

	return v, nil
}

// ReadU32LE reads a little-endian uint32.
func (s *Stream) ReadU32LE() (uint32, error) {
	if err := s.require(4); err != nil {
		return 0, err
	}
	v := s.engine.Uint32(s.data[s.offset : s.offset+4])
	s.offset += 4

	return v, nil
}

// ReadU64LE reads a little-endian uint64.
func (s *Stream) ReadU64LE() (uint64, error) {
	if err := s.require(8); err != nil {
		return 0, err
	}
	v := s.engine.Uint64(s.data[s.offset : s.offset+8])
	s.offset += 8

	return v, nil
}

// ReadF32LE reads a little-endian IEEE-754 single-precision float.
func (s *Stream) ReadF32LE() (float32, error) {
	bits, err := s.ReadU32LE()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// ReadF64LE reads a little-endian IEEE-754 double-precision float.
func (s *Stream) ReadF64LE() (float64, error) {
	if err := s.require(8); err != nil {
		return 0, err
	}
	bits := s.engine.Uint64(s.data[s.offset : s.offset+8])
	s.offset += 8

	return math.Float64frombits(bits), nil
}

// ReadBytes returns a zero-copy view of the next n bytes and advances the
// cursor. The returned slice aliases the stream's underlying buffer and must
// not be retained past the buffer's lifetime if the caller later mutates it.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.ErrUnexpectedEOF
	}
	if err := s.require(n); err != nil {
		return nil, err
	}
	b := s.data[s.offset : s.offset+n]
	s.offset += n

	return b, nil
}

// ReadUintLE reads n bytes little-endian into an arbitrary-precision
// unsigned integer, used by the binary-graphics "very-large-integer" command
// (opcode 55) whose byte count is not fixed at 1/2/4/8.
func (s *Stream) ReadUintLE(n int) (*big.Int, error) {
	b, err := s.ReadBytes(n)
	if err != nil {
		return nil, err
	}

	result := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		result.Lsh(result, 8)
		result.Or(result, big.NewInt(int64(b[i])))
	}

	return result, nil
}

// Peek returns the byte at the cursor without advancing it.
func (s *Stream) Peek() (byte, error) {
	if err := s.require(1); err != nil {
		return 0, err
	}

	return s.data[s.offset], nil
}

// Seek moves the cursor to an absolute position.
func (s *Stream) Seek(pos int) error {
	if pos < 0 || pos > len(s.data) {
		return errs.ErrUnexpectedEOF
	}
	s.offset = pos

	return nil
}

// EOF reports whether the cursor has reached the end of the buffer.
func (s *Stream) EOF() bool {
	return s.offset >= len(s.data)
}
