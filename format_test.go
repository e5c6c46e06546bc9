package exif66

import (
	"bytes"
	"math"
	"testing"
)

// Test the get/put functions.
func doOrder(t *testing.T, order ByteOrder) {
	field := Entry{Compression, BYTE, 1, nil}
	field.Data = make([]byte, 16)
	pos := uint32(1)
	{
		val := uint8(42)
		field.PutByte(val, pos)
		if field.Byte(pos) != val {
			t.Error("Byte")
		}
	}
	{
		val := uint16(42)
		field.PutShort(val, pos, order)
		if field.Short(pos, order) != val {
			t.Error("Short")
		}
	}
	{
		val := uint32(42)
		field.PutLong(val, pos, order)
		if field.Long(pos, order) != val {
			t.Error("Long")
		}
	}
	{
		val := int8(-42)
		field.PutSByte(val, pos)
		if field.SByte(pos) != val {
			t.Error("SByte")
		}
	}
	{
		val := int16(-42)
		field.PutSShort(val, pos, order)
		if field.SShort(pos, order) != val {
			t.Error("SShort")
		}
	}
	{
		val := int32(-42)
		field.PutSLong(val, pos, order)
		if field.SLong(pos, order) != val {
			t.Error("SLong")
		}
	}
	{
		val := Rational{21, 42}
		field.PutRational(val, pos, order)
		if field.Rational(pos, order) != val {
			t.Error("Rational")
		}
	}
	{
		val := SRational{-21, -42}
		field.PutSRational(val, pos, order)
		if field.SRational(pos, order) != val {
			t.Error("SRational")
		}
	}
	{
		val := float32(math.Pi)
		field.PutFloat(val, pos, order)
		if field.Float(pos, order) != val {
			t.Error("Float")
		}
	}
	{
		val := float64(math.Pi)
		field.PutDouble(val, pos, order)
		if field.Double(pos, order) != val {
			t.Error("Double")
		}
	}
	{
		val := "42"
		field.PutASCII(val)
		if field.ASCII() != val {
			t.Error("ASCII")
		}
		if field.Count != 3 || !field.valid() {
			t.Error("ASCII count")
		}
	}
}

func TestAccessors(t *testing.T) {
	doOrder(t, Motorola)
	doOrder(t, Intel)
}

func TestEncodeValue(t *testing.T) {
	data, count, err := EncodeValue("Canon", ASCII, Intel)
	if err != nil || count != 6 || !bytes.Equal(data, []byte("Canon\000")) {
		t.Errorf("ASCII encoded as %q, %d, %v", data, count, err)
	}
	data, count, err = EncodeValue("Canon\000", ASCII, Intel)
	if err != nil || count != 6 {
		t.Errorf("terminated ASCII encoded as %q, %d", data, count)
	}
	data, count, err = EncodeValue([]uint16{1, 2}, SHORT, Motorola)
	if err != nil || count != 2 || !bytes.Equal(data, []byte{0, 1, 0, 2}) {
		t.Errorf("SHORT encoded as %v, %d, %v", data, count, err)
	}
	data, _, err = EncodeValue(Rational{1, 3}, RATIONAL, Intel)
	if err != nil || !bytes.Equal(data, []byte{1, 0, 0, 0, 3, 0, 0, 0}) {
		t.Errorf("RATIONAL encoded as %v, %v", data, err)
	}
	if _, _, err := EncodeValue("x", SHORT, Intel); err == nil {
		t.Error("string accepted as SHORT")
	}
	if _, _, err := EncodeValue(1, Format(99), Intel); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestDecodeValue(t *testing.T) {
	buf := []byte{0, 0, 0, 7, 0, 0, 0, 2}
	if v, ok := DecodeValue(buf, 0, RATIONAL, 1, Motorola).([]Rational); !ok || v[0] != (Rational{7, 2}) {
		t.Errorf("RATIONAL decoded as %v", v)
	}
	if v, ok := DecodeValue(buf, 2, SHORT, 3, Motorola).([]uint16); !ok || len(v) != 3 || v[0] != 7 {
		t.Errorf("SHORT decoded as %v", v)
	}
	if v := DecodeValue(buf, 4, LONG, 2, Motorola); v != nil {
		t.Errorf("out of bounds value decoded as %v", v)
	}
	if v := DecodeValue(buf, 0xFFFFFFFF, BYTE, 2, Motorola); v != nil {
		t.Errorf("value at huge offset decoded as %v", v)
	}
	if v := DecodeValue([]byte("ab\000"), 0, ASCII, 3, Intel); v != "ab" {
		t.Errorf("ASCII decoded as %q", v)
	}
}

func TestRationalFloat(t *testing.T) {
	if _, ok := (Rational{1, 0}).Float(); ok {
		t.Error("zero denominator gave a value")
	}
	if f, ok := (SRational{-1, 4}).Float(); !ok || f != -0.25 {
		t.Errorf("-1/4 gave %v, %v", f, ok)
	}
}

// Converting to the other order and back reproduces the original bytes.
func TestConvertByteOrder(t *testing.T) {
	for _, format := range []Format{BYTE, SHORT, LONG, RATIONAL, SSHORT, SLONG, SRATIONAL, FLOAT, DOUBLE, UNDEFINED} {
		data := make([]byte, format.Size()*3)
		for i := range data {
			data[i] = byte(i + 1)
		}
		orig := append([]byte{}, data...)
		convertByteOrder(data, format, 3, Intel, Motorola)
		if format.Size() > 1 && bytes.Equal(data, orig) {
			t.Errorf("%s not converted", format.Name())
		}
		convertByteOrder(data, format, 3, Motorola, Intel)
		if !bytes.Equal(data, orig) {
			t.Errorf("%s not restored: %v", format.Name(), data)
		}
	}
}

func TestUserComment(t *testing.T) {
	e := Entry{UserComment, UNDEFINED, 12, append([]byte("UNICODE\000"), 0, 'H', 0, 'i')}
	if s := e.ValueString(Motorola, 0); s != `"Hi"` {
		t.Errorf("UNICODE comment is %s", s)
	}
	e = Entry{UserComment, UNDEFINED, 11, []byte("ASCII\000\000\000abc")}
	if s := e.ValueString(Intel, 0); s != `"abc"` {
		t.Errorf("ASCII comment is %s", s)
	}
}

func TestValueString(t *testing.T) {
	e, err := NewEntry(BitsPerSample, SHORT, []uint16{8, 8, 8}, Intel)
	if err != nil {
		t.Fatal(err)
	}
	if s := e.ValueString(Intel, 0); s != "8 8 8" {
		t.Errorf("got %q", s)
	}
	if s := e.ValueString(Intel, 2); s != "8 8 ..." {
		t.Errorf("limited to %q", s)
	}
	e = Entry{XResolution, RATIONAL, 1, []byte{1, 2}}
	if s := e.ValueString(Intel, 0); s != "<2 bytes of invalid Rational data>" {
		t.Errorf("invalid entry gave %q", s)
	}
}
