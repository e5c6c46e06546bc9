package exif66

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// An Exif entry: a tag, its format and component count, and the encoded
// value. len(Data) is always Count * Format.Size().
type Entry struct {
	Tag    Tag
	Format Format
	Count  uint32
	Data   []byte
}

// Create an entry by encoding a value, see EncodeValue.
func NewEntry(tag Tag, format Format, value interface{}, order ByteOrder) (Entry, error) {
	data, count, err := EncodeValue(value, format, order)
	if err != nil {
		return Entry{}, fmt.Errorf("tag 0x%04X: %w", uint16(tag), err)
	}
	return Entry{tag, format, count, data}, nil
}

// Entry data size.
func (e Entry) Size() uint32 {
	return e.Format.Size() * e.Count
}

// Indicate if the data length matches the format and count.
func (e Entry) valid() bool {
	return e.Format.Size() != 0 && uint64(len(e.Data)) == uint64(e.Format.Size())*uint64(e.Count)
}

// Return the decoded value, see DecodeValue.
func (e Entry) Value(order ByteOrder) interface{} {
	return DecodeValue(e.Data, 0, e.Format, e.Count, order)
}

// Return a BYTE entry's ith component.
func (e Entry) Byte(i uint32) uint8 {
	return e.Data[i]
}

// Set a BYTE entry's ith component.
func (e Entry) PutByte(val uint8, i uint32) {
	e.Data[i] = val
}

// Return a SHORT entry's ith component.
func (e Entry) Short(i uint32, order ByteOrder) uint16 {
	return order.Uint16(e.Data[i*2:])
}

// Set a SHORT entry's ith component.
func (e Entry) PutShort(val uint16, i uint32, order ByteOrder) {
	order.PutUint16(e.Data[i*2:], val)
}

// Return a LONG entry's ith component.
func (e Entry) Long(i uint32, order ByteOrder) uint32 {
	return order.Uint32(e.Data[i*4:])
}

// Set a LONG entry's ith component.
func (e Entry) PutLong(val uint32, i uint32, order ByteOrder) {
	order.PutUint32(e.Data[i*4:], val)
}

// Return a SBYTE entry's ith component.
func (e Entry) SByte(i uint32) int8 {
	return int8(e.Data[i])
}

// Set a SBYTE entry's ith component.
func (e Entry) PutSByte(val int8, i uint32) {
	e.Data[i] = uint8(val)
}

// Return a SSHORT entry's ith component.
func (e Entry) SShort(i uint32, order ByteOrder) int16 {
	return int16(order.Uint16(e.Data[i*2:]))
}

// Set a SSHORT entry's ith component.
func (e Entry) PutSShort(val int16, i uint32, order ByteOrder) {
	order.PutUint16(e.Data[i*2:], uint16(val))
}

// Return a SLONG entry's ith component.
func (e Entry) SLong(i uint32, order ByteOrder) int32 {
	return int32(order.Uint32(e.Data[i*4:]))
}

// Set a SLONG entry's ith component.
func (e Entry) PutSLong(val int32, i uint32, order ByteOrder) {
	order.PutUint32(e.Data[i*4:], uint32(val))
}

// Return an integral-valued entry's ith component.
func (e Entry) AnyInteger(i uint32, order ByteOrder) int64 {
	switch e.Format {
	case BYTE:
		return int64(e.Byte(i))
	case SHORT:
		return int64(e.Short(i, order))
	case LONG:
		return int64(e.Long(i, order))
	case SBYTE:
		return int64(e.SByte(i))
	case SSHORT:
		return int64(e.SShort(i, order))
	case SLONG:
		return int64(e.SLong(i, order))
	}
	panic("AnyInteger called with wrong format entry")
}

// Set an integral-valued entry's ith component.
func (e Entry) PutAnyInteger(val int64, i uint32, order ByteOrder) {
	switch e.Format {
	case BYTE:
		e.PutByte(uint8(val), i)
	case SHORT:
		e.PutShort(uint16(val), i, order)
	case LONG:
		e.PutLong(uint32(val), i, order)
	case SBYTE:
		e.PutSByte(int8(val), i)
	case SSHORT:
		e.PutSShort(int16(val), i, order)
	case SLONG:
		e.PutSLong(int32(val), i, order)
	default:
		panic("PutAnyInteger called with wrong format entry")
	}
}

// Return a RATIONAL entry's ith component.
func (e Entry) Rational(i uint32, order ByteOrder) Rational {
	return Rational{order.Uint32(e.Data[i*8:]), order.Uint32(e.Data[i*8+4:])}
}

// Set a RATIONAL entry's ith component.
func (e Entry) PutRational(val Rational, i uint32, order ByteOrder) {
	order.PutUint32(e.Data[i*8:], val.Num)
	order.PutUint32(e.Data[i*8+4:], val.Den)
}

// Return a SRATIONAL entry's ith component.
func (e Entry) SRational(i uint32, order ByteOrder) SRational {
	return SRational{int32(order.Uint32(e.Data[i*8:])), int32(order.Uint32(e.Data[i*8+4:]))}
}

// Set a SRATIONAL entry's ith component.
func (e Entry) PutSRational(val SRational, i uint32, order ByteOrder) {
	order.PutUint32(e.Data[i*8:], uint32(val.Num))
	order.PutUint32(e.Data[i*8+4:], uint32(val.Den))
}

// Return a rational-valued entry's ith component as numerator and
// denominator.
func (e Entry) AnyRational(i uint32, order ByteOrder) (int64, int64) {
	switch e.Format {
	case RATIONAL:
		r := e.Rational(i, order)
		return int64(r.Num), int64(r.Den)
	case SRATIONAL:
		r := e.SRational(i, order)
		return int64(r.Num), int64(r.Den)
	}
	panic("AnyRational called with wrong format entry")
}

// Return a FLOAT entry's ith component.
func (e Entry) Float(i uint32, order ByteOrder) float32 {
	return math.Float32frombits(order.Uint32(e.Data[i*4:]))
}

// Set a FLOAT entry's ith component.
func (e Entry) PutFloat(val float32, i uint32, order ByteOrder) {
	order.PutUint32(e.Data[i*4:], math.Float32bits(val))
}

// Return a DOUBLE entry's ith component.
func (e Entry) Double(i uint32, order ByteOrder) float64 {
	return math.Float64frombits(order.Uint64(e.Data[i*8:]))
}

// Set a DOUBLE entry's ith component.
func (e Entry) PutDouble(val float64, i uint32, order ByteOrder) {
	order.PutUint64(e.Data[i*8:], math.Float64bits(val))
}

// Return a floating point entry's ith component.
func (e Entry) AnyFloat(i uint32, order ByteOrder) float64 {
	switch e.Format {
	case FLOAT:
		return float64(e.Float(i, order))
	case DOUBLE:
		return e.Double(i, order)
	}
	panic("AnyFloat called with wrong format entry")
}

// Set a floating point entry's ith component.
func (e Entry) PutAnyFloat(val float64, i uint32, order ByteOrder) {
	switch e.Format {
	case FLOAT:
		e.PutFloat(float32(val), i, order)
	case DOUBLE:
		e.PutDouble(val, i, order)
	default:
		panic("PutAnyFloat called with wrong format entry")
	}
}

// Return ASCII entry data as a string. It omits the terminating NUL if
// present but retains any other NULs.
func (e Entry) ASCII() string {
	if len(e.Data) > 0 && e.Data[len(e.Data)-1] == 0 {
		return string(e.Data[:len(e.Data)-1])
	}
	return string(e.Data)
}

// Set ASCII entry data from a string, including a trailing NUL. The
// entry's data will be reallocated.
func (e *Entry) PutASCII(val string) {
	e.Format = ASCII
	e.Data = make([]byte, len(val)+1)
	copy(e.Data, val)
	e.Count = uint32(len(e.Data))
}

// Character codes that start a UserComment value.
var (
	asciiCode     = []byte("ASCII\000\000\000")
	jisCode       = []byte("JIS\000\000\000\000\000")
	unicodeCode   = []byte("UNICODE\000")
	undefinedCode = []byte("\000\000\000\000\000\000\000\000")
)

// Decode a UserComment value. Returns false if the character code isn't
// one that can be decoded.
func userComment(data []byte, order ByteOrder) (string, bool) {
	if len(data) < 8 {
		return "", false
	}
	code, body := data[:8], data[8:]
	switch {
	case bytes.Equal(code, asciiCode), bytes.Equal(code, undefinedCode):
		return strings.TrimRight(string(body), "\000 "), true
	case bytes.Equal(code, unicodeCode):
		endian := unicode.BigEndian
		if order == Intel {
			endian = unicode.LittleEndian
		}
		text, err := unicode.UTF16(endian, unicode.UseBOM).NewDecoder().Bytes(body)
		if err != nil {
			return "", false
		}
		return strings.TrimRight(string(text), "\000 "), true
	}
	return "", false
}

// Return an entry's values as text, up to a given limit (or 0 for no
// limit).
func (e Entry) ValueString(order ByteOrder, limit uint32) string {
	if !e.valid() {
		return fmt.Sprintf("<%d bytes of invalid %s data>", len(e.Data), e.Format.Name())
	}
	switch {
	case e.Format == ASCII:
		return strconv.Quote(e.ASCII())
	case e.Tag == UserComment && e.Format == UNDEFINED:
		if s, ok := userComment(e.Data, order); ok {
			return strconv.Quote(s)
		}
	}
	n := e.Count
	if limit > 0 && n > limit {
		n = limit
	}
	var b strings.Builder
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case e.Format.IsRational():
			num, den := e.AnyRational(i, order)
			fmt.Fprintf(&b, "%d/%d", num, den)
		case e.Format.IsIntegral():
			fmt.Fprintf(&b, "%d", e.AnyInteger(i, order))
		case e.Format.IsFloat():
			fmt.Fprintf(&b, "%g", e.AnyFloat(i, order))
		default:
			fmt.Fprintf(&b, "%02X", e.Data[i])
		}
	}
	if n < e.Count {
		b.WriteString(" ...")
	}
	return b.String()
}
