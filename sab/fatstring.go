package sab

import (
	"fmt"

	"github.com/arloliu/sabdoc/errs"
	"github.com/arloliu/sabdoc/genera"
)

// readFatString implements opcode 34: Genera's styled-text sub-format. The
// framing is not documented anywhere besides observed files (spec §9); all
// styling bytes (font run, character-style runs) are discarded and only
// the concatenated character payload is returned.
func (r *Reader) readFatString() (string, error) {
	dimCount, err := r.stream.ReadU8()
	if err != nil {
		return "", err
	}
	dims := make([]byte, dimCount)
	for i := range dims {
		dims[i], err = r.stream.ReadU8()
		if err != nil {
			return "", err
		}
	}
	if len(dims) == 0 {
		return "", errs.Decode(r.stream.Offset(), OpFatString.Name(), errs.ErrFatStringFraming)
	}
	totalChars := int(dims[0])

	if len(dims) > 1 && dims[1] > 0 {
		if err := r.skipFatStringStyleBlock(int(dims[1])); err != nil {
			return "", err
		}
	}

	var payload []byte
	for len(payload) < totalChars {
		chunkLen, err := r.stream.ReadU8()
		if err != nil {
			return "", err
		}
		if _, err := r.stream.ReadU8(); err != nil { // discarded per-chunk byte
			return "", err
		}
		chunk, err := r.stream.ReadBytes(int(chunkLen))
		if err != nil {
			return "", err
		}
		payload = append(payload, chunk...)
	}

	return genera.RecodeLong(payload)
}

// skipFatStringStyleBlock discards the font/style run preceding a fat
// string's character payload (spec §4.4).
func (r *Reader) skipFatStringStyleBlock(skip int) error {
	if _, err := r.stream.ReadBytes(skip); err != nil {
		return err
	}

	typeCode, err := r.stream.ReadU8()
	if err != nil {
		return err
	}

	switch typeCode {
	case 0x0C:
		if err := r.discardLenPrefixed(); err != nil {
			return err
		}
		if err := r.discardLenPrefixed(); err != nil {
			return err
		}
		if err := r.requireByte(0x10); err != nil {
			return err
		}

	case 0x14:
		for {
			if err := r.discardLenPrefixed(); err != nil {
				return err
			}
			b, err := r.stream.ReadU8()
			if err != nil {
				return err
			}
			if b == 0x14 {
				continue
			}
			if b != 0x10 {
				return errs.Decode(r.stream.Offset(), OpFatString.Name(), errs.ErrFatStringFraming)
			}

			break
		}

	default:
		return errs.Decode(r.stream.Offset(), OpFatString.Name(),
			fmt.Errorf("%w: unknown style type code 0x%02x", errs.ErrFatStringFraming, typeCode))
	}

	if err := r.discardLenPrefixed(); err != nil {
		return err
	}

	return r.requireByte(0x00)
}

func (r *Reader) discardLenPrefixed() error {
	n, err := r.stream.ReadU8()
	if err != nil {
		return err
	}
	_, err = r.stream.ReadBytes(int(n))

	return err
}

func (r *Reader) requireByte(want byte) error {
	got, err := r.stream.ReadU8()
	if err != nil {
		return err
	}
	if got != want {
		return errs.Decode(r.stream.Offset(), OpFatString.Name(),
			fmt.Errorf("%w: got 0x%02x, want 0x%02x", errs.ErrFatStringFraming, got, want))
	}

	return nil
}
