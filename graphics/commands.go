package graphics

import (
	"fmt"

	"github.com/arloliu/sabdoc/errs"
)

// decodeCommand dispatches one command opcode, already consumed by the
// caller at the given offset, and reports its result and kind (spec §4.5).
func (d *Decoder) decodeCommand(op byte, offset int) (any, resultKind, error) {
	switch op {
	case opThinString:
		n, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}
		s, err := readLatin1(d.s, int(n))
		if err != nil {
			return nil, 0, errs.Decode(offset, "thin-string", err)
		}

		return s, kindValue, nil

	case opPath:
		forms, err := d.decodeForms(true)
		if err != nil {
			return nil, 0, errs.Decode(offset, "path", err)
		}

		return Form(Path{Forms: forms}), kindValue, nil

	case opRasterImage:
		byteSize, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}
		width, err := d.nextInt()
		if err != nil {
			return nil, 0, err
		}
		height, err := d.nextInt()
		if err != nil {
			return nil, 0, err
		}
		n := (width*int(byteSize) + 7) / 8 * height
		raw, err := d.s.ReadBytes(n)
		if err != nil {
			return nil, 0, errs.Decode(offset, "raster-image", err)
		}
		buf := append([]byte{}, raw...)

		return &RasterImage{ByteSize: int(byteSize), Width: width, Height: height, Bytes: buf}, kindValue, nil

	case opCharacterStyle:
		n, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}
		s, err := readLatin1(d.s, int(n))
		if err != nil {
			return nil, 0, errs.Decode(offset, "character-style", err)
		}

		return s, kindValue, nil

	case opEnd:
		return nil, kindEnd, nil

	case opFormatVersion:
		v, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}
		if v != 1 {
			return nil, 0, errs.Decode(offset, "format-version", fmt.Errorf("%w %d", errs.ErrBadGraphicsVersion, v))
		}

		return nil, kindEffect, nil

	case opSmallInteger:
		v, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}

		return int64(v) - 128, kindValue, nil

	case opMediumInteger:
		v, err := d.s.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}

		return int64(v) - 32768, kindValue, nil

	case opLargeInteger:
		v, err := d.s.ReadU32LE()
		if err != nil {
			return nil, 0, err
		}

		return int64(v), kindValue, nil

	case opVeryLargeInteger:
		bits, err := d.s.ReadU16LE()
		if err != nil {
			return nil, 0, err
		}
		nbytes := (int(bits) + 7) / 8
		v, err := d.s.ReadUintLE(nbytes)
		if err != nil {
			return nil, 0, errs.Decode(offset, "very-large-integer", err)
		}

		return v, kindValue, nil

	case opRatio:
		a, err := d.nextNumber()
		if err != nil {
			return nil, 0, err
		}
		b, err := d.nextNumber()
		if err != nil {
			return nil, 0, err
		}

		return a / b, kindValue, nil

	case opSingleFloat:
		v, err := d.s.ReadF32LE()
		if err != nil {
			return nil, 0, err
		}

		return float64(v), kindValue, nil

	case opDoubleFloat:
		v, err := d.s.ReadF64LE()
		if err != nil {
			return nil, 0, err
		}

		return v, kindValue, nil

	case opPointSequence:
		n, err := d.nextInt()
		if err != nil {
			return nil, 0, err
		}
		out := make([]float64, 2*n)
		for i := range out {
			out[i], err = d.nextNumber()
			if err != nil {
				return nil, 0, err
			}
		}

		return out, kindValue, nil

	case opAngle:
		tenths, err := d.nextNumber()
		if err != nil {
			return nil, 0, err
		}

		return tenthsOfDegreesToRadians(tenths), kindValue, nil

	case opTrue:
		return true, kindValue, nil

	case opFalse:
		return false, kindValue, nil

	case opKeyword:
		idx, err := d.s.ReadU8()
		if err != nil {
			return nil, 0, err
		}
		name, ok := keywordAt(int(idx))
		if !ok {
			return nil, 0, errs.Decode(offset, "keyword", fmt.Errorf("%w: %d", errs.ErrKeywordIndexOOB, idx))
		}

		return name, kindValue, nil

	case opSetPosition:
		c, err := d.nextCoord()
		if err != nil {
			return nil, 0, err
		}

		return Form(SetCurrentPosition{X: c.X, Y: c.Y}), kindForm, nil

	case opTransformMatrix:
		vals, err := d.nextCoords(3)
		if err != nil {
			return nil, 0, err
		}

		return Form(GraphicsTransform{
			R11: vals[0].X, R12: vals[0].Y,
			R21: vals[1].X, R22: vals[1].Y,
			TX: vals[2].X, TY: vals[2].Y,
		}), kindForm, nil

	case opDashPattern:
		n, err := d.nextInt()
		if err != nil {
			return nil, 0, err
		}
		out := make([]float64, n)
		for i := range out {
			out[i], err = d.nextNumber()
			if err != nil {
				return nil, 0, err
			}
		}

		return out, kindValue, nil

	case opScanConversionMode:
		forms, err := d.decodeForms(true)
		if err != nil {
			return nil, 0, errs.Decode(offset, "scan-conversion-mode", err)
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, 0, err
		}

		return Form(ScanConversionMode{Forms: forms, Options: opts}), kindForm, nil
	}

	return nil, 0, errs.Decode(offset, "", errs.ErrUnknownGraphicsOpcode)
}
