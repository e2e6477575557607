// Package errs collects the sentinel errors returned across sabdoc's
// decoders, in the style of a single shared error package rather than one
// per-package var block.
package errs

import (
	"errors"
	"fmt"
)

// SAB container errors (§4.4, §7).
var (
	ErrNotSabFile          = errors.New("not a SAB file")
	ErrBadVersion          = errors.New("incompatible SAB version")
	ErrUnexpectedEOF       = errors.New("unexpected end of stream")
	ErrUnknownOpcode       = errors.New("unknown SAB opcode")
	ErrOpcodeMismatch      = errors.New("SAB opcode mismatch")
	ErrUnknownField        = errors.New("unknown field name")
	ErrFatStringFraming    = errors.New("malformed fat-string framing")
	ErrSymbolIndexOOB      = errors.New("symbol reference index out of bounds")
	ErrMalformedIndexItem  = errors.New("malformed index item")
	ErrMalformedFileHeader = errors.New("malformed SAB file header")
	ErrUnexpectedValueType = errors.New("unexpected value type")
)

// Binary graphics sub-format errors (§4.5, §7).
var (
	ErrBadGraphicsVersion    = errors.New("bad graphics format version")
	ErrUnknownGraphicsOpcode = errors.New("unknown graphics opcode")
	ErrUnexpectedForValue    = errors.New("for-value command at top level")
	ErrUnknownResultKind     = errors.New("unknown command result kind")
	ErrKeywordIndexOOB       = errors.New("keyword index out of bounds")
)

// Cache / site errors.
var (
	ErrInvalidCacheFile = errors.New("invalid registry cache file")
	ErrCacheVersion     = errors.New("incompatible registry cache version")
)

// DecodeError wraps a decode failure with the byte offset and the symbolic
// opcode name active at the point of failure, per spec §7: "Decoders fail
// the whole file with an error carrying the offset and the symbolic opcode
// name."
type DecodeError struct {
	Offset int
	Opcode string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Opcode == "" {
		return fmt.Sprintf("offset 0x%x: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("offset 0x%x (%s): %v", e.Offset, e.Opcode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode wraps err with offset/opcode context, or returns nil if err is nil.
func Decode(offset int, opcode string, err error) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Offset: offset, Opcode: opcode, Err: err}
}
