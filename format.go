package exif66

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

type Format uint16

// Exif value formats (uppercase as in TIFF 6.0).
const (
	BYTE      Format = 1
	ASCII     Format = 2
	SHORT     Format = 3
	LONG      Format = 4
	RATIONAL  Format = 5
	SBYTE     Format = 6
	UNDEFINED Format = 7
	SSHORT    Format = 8
	SLONG     Format = 9
	SRATIONAL Format = 10
	FLOAT     Format = 11
	DOUBLE    Format = 12
)

var FormatNames = map[Format]string{
	BYTE:      "Byte",
	ASCII:     "ASCII",
	SHORT:     "Short",
	LONG:      "Long",
	RATIONAL:  "Rational",
	SBYTE:     "SByte",
	UNDEFINED: "Undefined",
	SSHORT:    "SShort",
	SLONG:     "SLong",
	SRATIONAL: "SRational",
	FLOAT:     "Float",
	DOUBLE:    "Double",
}

// Return the name of a format.
func (f Format) Name() string {
	name, found := FormatNames[f]
	if found {
		return name
	}
	return "Unknown"
}

// Byte size of a single component of each format, indexed by format.
var formatSizes = [...]uint32{0, 1, 1, 2, 4, 8, 1, 1, 2, 4, 8, 4, 8}

// Return the size of a single component of a format, or 0 if the format
// is unknown.
func (f Format) Size() uint32 {
	if int(f) < len(formatSizes) {
		return formatSizes[f]
	}
	return 0
}

// Indicate if the given format is one of the integer formats.
func (f Format) IsIntegral() bool {
	return f == BYTE || f == SHORT || f == LONG || f == SBYTE || f == SSHORT || f == SLONG
}

// Indicate if the given format is one of the rational formats.
func (f Format) IsRational() bool {
	return f == RATIONAL || f == SRATIONAL
}

// Indicate if the given format is one of the floating point formats.
func (f Format) IsFloat() bool {
	return f == FLOAT || f == DOUBLE
}

// ByteOrder of an Exif block. It implements binary.ByteOrder, so values
// can be read and written with it directly.
type ByteOrder uint8

const (
	Motorola ByteOrder = iota // big-endian, "MM"
	Intel                     // little-endian, "II"
)

func (o ByteOrder) binary() binary.ByteOrder {
	if o == Intel {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o ByteOrder) Uint16(b []byte) uint16       { return o.binary().Uint16(b) }
func (o ByteOrder) Uint32(b []byte) uint32       { return o.binary().Uint32(b) }
func (o ByteOrder) Uint64(b []byte) uint64       { return o.binary().Uint64(b) }
func (o ByteOrder) PutUint16(b []byte, v uint16) { o.binary().PutUint16(b, v) }
func (o ByteOrder) PutUint32(b []byte, v uint32) { o.binary().PutUint32(b, v) }
func (o ByteOrder) PutUint64(b []byte, v uint64) { o.binary().PutUint64(b, v) }

func (o ByteOrder) String() string {
	if o == Intel {
		return "Intel"
	}
	return "Motorola"
}

// Unsigned rational value.
type Rational struct {
	Num, Den uint32
}

// Return the value as a float. The second result is false if the
// denominator is zero, in which case the value is undefined.
func (r Rational) Float() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Signed rational value.
type SRational struct {
	Num, Den int32
}

// Return the value as a float. The second result is false if the
// denominator is zero.
func (r SRational) Float() (float64, bool) {
	if r.Den == 0 {
		return 0, false
	}
	return float64(r.Num) / float64(r.Den), true
}

func (r SRational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Decode count components of a format from buf at offset. The result is
// []uint8 (BYTE and UNDEFINED), string (ASCII, without the terminating
// NUL), []uint16, []uint32, []Rational, []int8, []int16, []int32,
// []SRational, []float32 or []float64. Returns nil if the format is
// unknown or the value doesn't lie entirely within buf.
func DecodeValue(buf []byte, offset uint32, format Format, count uint32, order ByteOrder) interface{} {
	size := uint64(format.Size())
	if size == 0 {
		return nil
	}
	end := uint64(offset) + size*uint64(count)
	if end > uint64(len(buf)) {
		return nil
	}
	data := buf[offset:end]
	switch format {
	case BYTE, UNDEFINED:
		return append([]uint8{}, data...)
	case ASCII:
		if len(data) > 0 && data[len(data)-1] == 0 {
			data = data[:len(data)-1]
		}
		return string(data)
	case SHORT:
		vals := make([]uint16, count)
		for i := range vals {
			vals[i] = order.Uint16(data[i*2:])
		}
		return vals
	case LONG:
		vals := make([]uint32, count)
		for i := range vals {
			vals[i] = order.Uint32(data[i*4:])
		}
		return vals
	case RATIONAL:
		vals := make([]Rational, count)
		for i := range vals {
			vals[i] = Rational{order.Uint32(data[i*8:]), order.Uint32(data[i*8+4:])}
		}
		return vals
	case SBYTE:
		vals := make([]int8, count)
		for i := range vals {
			vals[i] = int8(data[i])
		}
		return vals
	case SSHORT:
		vals := make([]int16, count)
		for i := range vals {
			vals[i] = int16(order.Uint16(data[i*2:]))
		}
		return vals
	case SLONG:
		vals := make([]int32, count)
		for i := range vals {
			vals[i] = int32(order.Uint32(data[i*4:]))
		}
		return vals
	case SRATIONAL:
		vals := make([]SRational, count)
		for i := range vals {
			vals[i] = SRational{int32(order.Uint32(data[i*8:])), int32(order.Uint32(data[i*8+4:]))}
		}
		return vals
	case FLOAT:
		vals := make([]float32, count)
		for i := range vals {
			vals[i] = math.Float32frombits(order.Uint32(data[i*4:]))
		}
		return vals
	case DOUBLE:
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = math.Float64frombits(order.Uint64(data[i*8:]))
		}
		return vals
	}
	return nil
}

var errValueType = errors.New("value type doesn't match format")

// Convert a scalar or slice of Go integers to int64s.
func toInt64s(value interface{}) ([]int64, bool) {
	switch v := value.(type) {
	case int:
		return []int64{int64(v)}, true
	case int64:
		return []int64{v}, true
	case uint8:
		return []int64{int64(v)}, true
	case uint16:
		return []int64{int64(v)}, true
	case uint32:
		return []int64{int64(v)}, true
	case int8:
		return []int64{int64(v)}, true
	case int16:
		return []int64{int64(v)}, true
	case int32:
		return []int64{int64(v)}, true
	case []int:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []int64:
		return append([]int64{}, v...), true
	case []uint8:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []uint16:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []uint32:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []int8:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []int16:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	case []int32:
		out := make([]int64, len(v))
		for i := range v {
			out[i] = int64(v[i])
		}
		return out, true
	}
	return nil, false
}

// Encode a value in the given format. Integer formats accept Go integers
// or slices of them, rational formats accept Rational, SRational or
// slices of them, ASCII accepts a string or []byte (a NUL is appended if
// missing), BYTE and UNDEFINED accept []byte or string, and the float
// formats accept float32/float64 or slices of them. Returns the encoded
// data and its component count.
func EncodeValue(value interface{}, format Format, order ByteOrder) ([]byte, uint32, error) {
	switch {
	case format == ASCII:
		var s []byte
		switch v := value.(type) {
		case string:
			s = []byte(v)
		case []byte:
			s = append([]byte{}, v...)
		default:
			return nil, 0, errValueType
		}
		if len(s) == 0 || s[len(s)-1] != 0 {
			s = append(s, 0)
		}
		return s, uint32(len(s)), nil
	case format == BYTE || format == UNDEFINED:
		switch v := value.(type) {
		case []byte:
			return append([]byte{}, v...), uint32(len(v)), nil
		case string:
			return []byte(v), uint32(len(v)), nil
		}
	}
	if format.IsIntegral() {
		vals, ok := toInt64s(value)
		if !ok {
			return nil, 0, errValueType
		}
		e := Entry{Format: format, Count: uint32(len(vals))}
		e.Data = make([]byte, e.Size())
		for i, v := range vals {
			e.PutAnyInteger(v, uint32(i), order)
		}
		return e.Data, e.Count, nil
	}
	switch format {
	case RATIONAL:
		var vals []Rational
		switch v := value.(type) {
		case Rational:
			vals = []Rational{v}
		case []Rational:
			vals = v
		default:
			return nil, 0, errValueType
		}
		data := make([]byte, 8*len(vals))
		for i, r := range vals {
			order.PutUint32(data[i*8:], r.Num)
			order.PutUint32(data[i*8+4:], r.Den)
		}
		return data, uint32(len(vals)), nil
	case SRATIONAL:
		var vals []SRational
		switch v := value.(type) {
		case SRational:
			vals = []SRational{v}
		case []SRational:
			vals = v
		default:
			return nil, 0, errValueType
		}
		data := make([]byte, 8*len(vals))
		for i, r := range vals {
			order.PutUint32(data[i*8:], uint32(r.Num))
			order.PutUint32(data[i*8+4:], uint32(r.Den))
		}
		return data, uint32(len(vals)), nil
	case FLOAT, DOUBLE:
		var vals []float64
		switch v := value.(type) {
		case float32:
			vals = []float64{float64(v)}
		case float64:
			vals = []float64{v}
		case []float32:
			for _, f := range v {
				vals = append(vals, float64(f))
			}
		case []float64:
			vals = v
		default:
			return nil, 0, errValueType
		}
		e := Entry{Format: format, Count: uint32(len(vals))}
		e.Data = make([]byte, e.Size())
		for i, v := range vals {
			e.PutAnyFloat(v, uint32(i), order)
		}
		return e.Data, e.Count, nil
	}
	return nil, 0, fmt.Errorf("can't encode format %d: %w", format, errValueType)
}

// Rewrite count components of a format in data from one byte order to
// another, in place. Components that don't fit in data are left alone.
func convertByteOrder(data []byte, format Format, count uint32, from, to ByteOrder) {
	if from == to {
		return
	}
	size := format.Size()
	if size == 0 {
		return
	}
	if n := uint32(len(data)) / size; count > n {
		count = n
	}
	switch format {
	case SHORT, SSHORT:
		for i := uint32(0); i < count; i++ {
			to.PutUint16(data[i*2:], from.Uint16(data[i*2:]))
		}
	case LONG, SLONG, FLOAT:
		for i := uint32(0); i < count; i++ {
			to.PutUint32(data[i*4:], from.Uint32(data[i*4:]))
		}
	case RATIONAL, SRATIONAL:
		for i := uint32(0); i < count*2; i++ {
			to.PutUint32(data[i*4:], from.Uint32(data[i*4:]))
		}
	case DOUBLE:
		for i := uint32(0); i < count; i++ {
			to.PutUint64(data[i*8:], from.Uint64(data[i*8:]))
		}
	}
}
