package pointfile

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Scale is the fixed-point factor: a coordinate v is stored as round(v*Scale).
	Scale = 1000

	// FieldWidth is the width of one encoded coordinate: SDD.DDD.
	FieldWidth = 7

	// RecordWidth is the width of one encoded point including the trailing newline.
	RecordWidth = 3*FieldWidth + 3

	// MaxCoord is the largest fixed-point magnitude an axis can hold.
	MaxCoord = math.MaxInt16
)

// field start offsets within a record
const (
	fieldX = 0
	fieldY = FieldWidth + 1
	fieldZ = 2 * (FieldWidth + 1)
)

// ErrCoordRange is returned when a coordinate cannot be represented in a field.
var ErrCoordRange = errors.New("coordinate out of range")

// Point is a 3D point with fixed-point coordinates (e.g. +01.330 -> 1330).
type Point struct {
	X, Y, Z int16
}

// FixedPoint converts a real coordinate to its fixed-point value, rounding half away from zero.
func FixedPoint(v float64) (int16, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: NaN", ErrCoordRange)
	}
	f := math.Round(v * Scale)
	if f > MaxCoord || f < -MaxCoord {
		return 0, fmt.Errorf("%w: %g", ErrCoordRange, v)
	}
	return int16(f), nil
}

// Float returns the real-valued coordinates of p.
func (p Point) Float() (x, y, z float64) {
	return float64(p.X) / Scale, float64(p.Y) / Scale, float64(p.Z) / Scale
}

// AppendCoord appends the SDD.DDD encoding of v to dst.
func AppendCoord(dst []byte, v float64) ([]byte, error) {
	f, err := FixedPoint(v)
	if err != nil {
		return dst, err
	}
	return appendFixed(dst, f), nil
}

func appendFixed(dst []byte, f int16) []byte {
	sign := byte('+')
	u := int(f)
	if u < 0 {
		sign = '-'
		u = -u
	}
	whole, frac := u/Scale, u%Scale
	return append(dst,
		sign,
		byte('0'+whole/10),
		byte('0'+whole%10),
		'.',
		byte('0'+frac/100),
		byte('0'+frac/10%10),
		byte('0'+frac%10),
	)
}

// AppendRecord appends one full record for the real coordinates x, y, z.
func AppendRecord(dst []byte, x, y, z float64) ([]byte, error) {
	var p Point
	var err error
	if p.X, err = FixedPoint(x); err != nil {
		return dst, err
	}
	if p.Y, err = FixedPoint(y); err != nil {
		return dst, err
	}
	if p.Z, err = FixedPoint(z); err != nil {
		return dst, err
	}
	return AppendPoint(dst, p), nil
}

// AppendPoint appends the record encoding of p.
func AppendPoint(dst []byte, p Point) []byte {
	dst = appendFixed(dst, p.X)
	dst = append(dst, ' ')
	dst = appendFixed(dst, p.Y)
	dst = append(dst, ' ')
	dst = appendFixed(dst, p.Z)
	return append(dst, '\n')
}

// DecodeRecord decodes one record using fixed-offset digit arithmetic.
// It reports false for lines shorter than RecordWidth and for lines that are
// not exactly one well-formed record; such lines carry no point.
func DecodeRecord(line []byte) (Point, bool) {
	if len(line) != RecordWidth {
		return Point{}, false
	}
	_ = line[RecordWidth-1]
	if line[fieldY-1] != ' ' || line[fieldZ-1] != ' ' || line[RecordWidth-1] != '\n' {
		return Point{}, false
	}
	x, okx := decodeField(line[fieldX : fieldX+FieldWidth])
	y, oky := decodeField(line[fieldY : fieldY+FieldWidth])
	z, okz := decodeField(line[fieldZ : fieldZ+FieldWidth])
	if !(okx && oky && okz) {
		return Point{}, false
	}
	return Point{X: x, Y: y, Z: z}, true
}

// decodeField decodes SDD.DDD. Bytes below '0' wrap around, so one > 9 test per digit suffices.
func decodeField(f []byte) (int16, bool) {
	_ = f[FieldWidth-1]
	d1, d2 := f[1]-'0', f[2]-'0'
	d4, d5, d6 := f[4]-'0', f[5]-'0', f[6]-'0'
	if d1 > 9 || d2 > 9 || d4 > 9 || d5 > 9 || d6 > 9 || f[3] != '.' {
		return 0, false
	}
	v := (int(d1)*10+int(d2))*Scale + int(d4)*100 + int(d5)*10 + int(d6)
	if v > MaxCoord {
		return 0, false
	}
	switch f[0] {
	case '+':
		return int16(v), true
	case '-':
		return int16(-v), true
	}
	return 0, false
}
