package graphics

import (
	"math"
	"math/big"

	"golang.org/x/text/encoding/charmap"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/sabstream"
)

// resultKind classifies what a command opcode produces (spec §4.5).
type resultKind int

const (
	kindValue resultKind = iota
	kindEffect
	kindForm
	kindEnd
)

var latin1Decoder = charmap.ISO8859_1.NewDecoder()

func readLatin1(s *sabstream.Stream, n int) (string, error) {
	raw, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	out, err := latin1Decoder.Bytes(raw)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Decoder walks a binary-graphics byte stream, dispatching each opcode to
// the command table or the operation table.
type Decoder struct {
	s *sabstream.Stream
}

// NewDecoder wraps a picture's raw bytes for graphics decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{s: sabstream.New(data)}
}

// Decode reads the stream to EOF and returns the top-level form list
// (spec §4.5: "Top-level reader consumes bytes until EOF").
func Decode(data []byte) ([]Form, error) {
	d := NewDecoder(data)

	return d.decodeForms(false)
}

// decodeForms reads opcodes until EOF (stopAtEnd=false) or until the end
// sentinel (stopAtEnd=true, used by the nested path/scan-conversion-mode
// decoders at opcodes 22 and 74).
func (d *Decoder) decodeForms(stopAtEnd bool) ([]Form, error) {
	var forms []Form

	for !d.s.EOF() {
		offset := d.s.Offset()
		op, err := d.s.ReadU8()
		if err != nil {
			return forms, err
		}

		switch {
		case isCommandOpcode(op):
			value, kind, err := d.decodeCommand(op, offset)
			if err != nil {
				return nil, err
			}
			switch kind {
			case kindEnd:
				if stopAtEnd {
					return forms, nil
				}
				// stray end marker at the top level: no-op.
			case kindForm:
				forms = append(forms, value.(Form))
			case kindValue:
				return nil, errs.Decode(offset, opcodeName(op), errs.ErrUnexpectedForValue)
			case kindEffect:
				// format-version and similar: nothing to append.
			}
		case isOperationOpcode(op):
			form, err := d.decodeOperation(op, offset)
			if err != nil {
				return nil, err
			}
			forms = append(forms, form)
		default:
			return nil, errs.Decode(offset, "", errs.ErrUnknownGraphicsOpcode)
		}
	}

	if stopAtEnd {
		return nil, errs.ErrUnexpectedEOF
	}

	return forms, nil
}

// nextValue implements the helper of the same name (spec §4.5): it skips
// for-effect commands, propagates the end sentinel, and returns the first
// for-value command's result.
func (d *Decoder) nextValue() (any, bool, error) {
	for {
		offset := d.s.Offset()
		op, err := d.s.ReadU8()
		if err != nil {
			return nil, false, err
		}
		if !isCommandOpcode(op) {
			return nil, false, errs.Decode(offset, opcodeName(op), errs.ErrUnknownGraphicsOpcode)
		}

		value, kind, err := d.decodeCommand(op, offset)
		if err != nil {
			return nil, false, err
		}

		switch kind {
		case kindEnd:
			return nil, true, nil
		case kindValue:
			return value, false, nil
		default:
			continue
		}
	}
}

// readUntilDone collects next_value results until the end sentinel,
// implementing every operation's trailing options list.
func (d *Decoder) readUntilDone() (Options, error) {
	var out Options
	for {
		v, isEnd, err := d.nextValue()
		if err != nil {
			return nil, err
		}
		if isEnd {
			return out, nil
		}
		out = append(out, v)
	}
}

func (d *Decoder) nextNumber() (float64, error) {
	v, _, err := d.nextValue()
	if err != nil {
		return 0, err
	}

	return toFloat(v), nil
}

func (d *Decoder) nextInt() (int, error) {
	v, err := d.nextNumber()
	if err != nil {
		return 0, err
	}

	return int(v), nil
}

func (d *Decoder) nextCoord() (Coord, error) {
	x, err := d.nextNumber()
	if err != nil {
		return Coord{}, err
	}
	y, err := d.nextNumber()
	if err != nil {
		return Coord{}, err
	}

	return Coord{X: x, Y: y}, nil
}

func (d *Decoder) nextCoords(n int) ([]Coord, error) {
	out := make([]Coord, n)
	for i := range out {
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}

	return out, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	case *big.Int:
		f := new(big.Float).SetInt(n)
		out, _ := f.Float64()
		return out
	default:
		return 0
	}
}

func tenthsOfDegreesToRadians(v float64) float64 {
	return v / 10 * math.Pi / 180
}
