package graphics

import "github.com/arloliu/sabdoc/errs"

// decodeOperation dispatches one operation opcode: fixed geometry operands
// via next_value, then read_until_done for trailing options (spec §4.5).
func (d *Decoder) decodeOperation(op byte, offset int) (Form, error) {
	switch op {
	case opPoint:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Point{X: c.X, Y: c.Y, Options: opts}, nil

	case opLine:
		pts, err := d.nextCoords(2)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Line{X1: pts[0].X, Y1: pts[0].Y, X2: pts[1].X, Y2: pts[1].Y, Options: opts}, nil

	case opLines:
		n, err := d.nextInt()
		if err != nil {
			return nil, err
		}
		pts, err := d.nextCoords(n)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Lines{Points: pts, Options: opts}, nil

	case opRectangle:
		v, err := d.nextCoords(2)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Rectangle{Left: v[0].X, Top: v[0].Y, Right: v[1].X, Bottom: v[1].Y, Options: opts}, nil

	case opTriangle:
		pts, err := d.nextCoords(3)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Triangle{P1: pts[0], P2: pts[1], P3: pts[2], Options: opts}, nil

	case opPolygon:
		n, err := d.nextInt()
		if err != nil {
			return nil, err
		}
		pts, err := d.nextCoords(n)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Polygon{Points: pts, Options: opts}, nil

	case opEllipse:
		v, err := d.nextCoords(3)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Ellipse{
			CenterX: v[0].X, CenterY: v[0].Y,
			RadiusX: v[1].X, RadiusY: v[1].Y,
			StartAngle: v[2].X, EndAngle: v[2].Y,
			Options: opts,
		}, nil

	case opBezierCurve:
		pts, err := d.nextCoords(4)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return BezierCurve{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3], Options: opts}, nil

	case opCubicSpline:
		n, err := d.nextInt()
		if err != nil {
			return nil, err
		}
		pts, err := d.nextCoords(n)
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return CubicSpline{Points: pts, Options: opts}, nil

	case opPathOp:
		value, _, err := d.nextValue()
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return PathOp{Value: value, Options: opts}, nil

	case opString:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		text, _, err := d.nextValue()
		if err != nil {
			return nil, err
		}
		s, ok := text.(string)
		if !ok {
			return nil, errs.Decode(offset, "string", errs.ErrUnexpectedValueType)
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return StringAt{X: c.X, Y: c.Y, Text: s, Options: opts}, nil

	case opCircularArcTo:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return CircularArcTo{X: c.X, Y: c.Y, Options: opts}, nil

	case opImage:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		rasterAny, _, err := d.nextValue()
		if err != nil {
			return nil, err
		}
		raster, ok := rasterAny.(*RasterImage)
		if !ok {
			return nil, errs.Decode(offset, "image", errs.ErrUnexpectedValueType)
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return Image{X: c.X, Y: c.Y, Raster: raster, Options: opts}, nil

	case opStringImage:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		text, _, err := d.nextValue()
		if err != nil {
			return nil, err
		}
		s, ok := text.(string)
		if !ok {
			return nil, errs.Decode(offset, "string-image", errs.ErrUnexpectedValueType)
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return StringImage{X: c.X, Y: c.Y, Text: s, Options: opts}, nil

	case opLineTo:
		c, err := d.nextCoord()
		if err != nil {
			return nil, err
		}
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return LineTo{X: c.X, Y: c.Y, Options: opts}, nil

	case opClosePath:
		opts, err := d.readUntilDone()
		if err != nil {
			return nil, err
		}

		return ClosePath{Options: opts}, nil
	}

	return nil, errs.Decode(offset, "", errs.ErrUnknownGraphicsOpcode)
}
