package exif66

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type logRecord struct {
	code   LogCode
	domain string
	msg    string
}

// Logger that keeps everything it's given.
type logRecorder struct {
	records []logRecord
}

func (r *logRecorder) Log(code LogCode, domain string, format string, args ...interface{}) {
	r.records = append(r.records, logRecord{code, domain, fmt.Sprintf(format, args...)})
}

func (r *logRecorder) count(code LogCode) int {
	n := 0
	for _, rec := range r.records {
		if rec.code == code {
			n++
		}
	}
	return n
}

func mustEntry(t *testing.T, tag Tag, format Format, value interface{}, order ByteOrder) Entry {
	t.Helper()
	e, err := NewEntry(tag, format, value, order)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func testEntries(t *testing.T, order ByteOrder) []Entry {
	return []Entry{
		mustEntry(t, Software, ASCII, "abcd", order),
		mustEntry(t, Orientation, SHORT, uint16(6), order),
		mustEntry(t, Make, ASCII, "Canon", order),
		mustEntry(t, Model, ASCII, "EOS", order),
	}
}

// Encoding doesn't depend on the order entries were added, tables are
// sorted by tag and odd sized values are padded.
func TestEncodeIFD(t *testing.T) {
	for _, order := range []ByteOrder{Intel, Motorola} {
		entries := testEntries(t, order)
		enc := encodeIFD(entries, order)
		reversed := []Entry{entries[3], entries[2], entries[1], entries[0]}
		enc2 := encodeIFD(reversed, order)
		if !bytes.Equal(enc.table, enc2.table) || !bytes.Equal(enc.values, enc2.values) {
			t.Errorf("%s: encoding depends on entry order", order)
		}
		if enc.size() != tableSize(4)+6+6 {
			t.Errorf("%s: size is %d", order, enc.size())
		}
		if enc.offsets[Orientation] != 2+2*entrySize+8 {
			t.Errorf("%s: Orientation value at %d", order, enc.offsets[Orientation])
		}
		if enc.offsets[Make] != tableSize(4) {
			t.Errorf("%s: Make value at %d", order, enc.offsets[Make])
		}
		pos := uint32(HeaderSize)
		enc.relocate(pos)
		buf := make([]byte, pos+enc.size())
		enc.put(buf, pos)
		lg := &logRecorder{}
		raws, next, err := decodeIFD(buf, pos, order, lg, "test")
		if err != nil {
			t.Fatal(err)
		}
		if next != 0 {
			t.Errorf("%s: next is %d", order, next)
		}
		want := []Tag{Make, Model, Orientation, Software}
		if len(raws) != len(want) {
			t.Fatalf("%s: read %d entries", order, len(raws))
		}
		for i, r := range raws {
			if r.Tag != want[i] {
				t.Errorf("%s: entry %d has tag 0x%04X", order, i, uint16(r.Tag))
			}
		}
		if raws[0].ASCII() != "Canon" || raws[3].ASCII() != "abcd" {
			t.Errorf("%s: read %q and %q", order, raws[0].ASCII(), raws[3].ASCII())
		}
		if raws[0].pos != pos+tableSize(4) {
			t.Errorf("%s: Make value at %d", order, raws[0].pos)
		}
		if len(lg.records) != 0 {
			t.Errorf("%s: unexpected log %v", order, lg.records)
		}
	}
}

// The next IFD pointer and values are written in place.
func TestEncodedPatches(t *testing.T) {
	order := Intel
	enc := encodeIFD([]Entry{pointerEntry(ExifIFDPointer), mustEntry(t, Make, ASCII, "Canon", order)}, order)
	enc.relocate(HeaderSize)
	enc.setLong(ExifIFDPointer, 1234)
	enc.setNext(5678)
	enc.setValue(Make, []byte("Nikon\000"))
	buf := make([]byte, HeaderSize+enc.size())
	enc.put(buf, HeaderSize)
	raws, next, err := decodeIFD(buf, HeaderSize, order, &logRecorder{}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if next != 5678 {
		t.Errorf("next is %d", next)
	}
	if len(raws) != 2 || raws[0].ASCII() != "Nikon" || raws[1].Long(0, order) != 1234 {
		t.Errorf("read %v", raws)
	}
}

// An entry count larger than the buffer allows is truncated.
func TestDecodeTruncatedIFD(t *testing.T) {
	order := Motorola
	buf := make([]byte, 2+entrySize)
	order.PutUint16(buf, 3)
	order.PutUint16(buf[2:], uint16(Orientation))
	order.PutUint16(buf[4:], uint16(SHORT))
	order.PutUint32(buf[6:], 1)
	order.PutUint16(buf[10:], 1)
	lg := &logRecorder{}
	raws, next, err := decodeIFD(buf, 0, order, lg, "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 1 || raws[0].Short(0, order) != 1 || next != 0 {
		t.Errorf("read %v, next %d", raws, next)
	}
	if lg.count(LogCorruptData) != 1 {
		t.Errorf("log is %v", lg.records)
	}
	if _, _, err := decodeIFD(buf, uint32(len(buf)), order, lg, "test"); err == nil {
		t.Error("IFD beyond the buffer was read")
	}
}

// Entries with unknown formats or values outside the buffer are skipped
// and the rest are kept.
func TestDecodeBadEntries(t *testing.T) {
	order := Intel
	buf := make([]byte, tableSize(4))
	order.PutUint16(buf, 4)
	rec := buf[2:]
	// Unknown format.
	order.PutUint16(rec, uint16(Orientation))
	order.PutUint16(rec[2:], 99)
	order.PutUint32(rec[4:], 1)
	rec = rec[entrySize:]
	// Value beyond the end.
	order.PutUint16(rec, uint16(Make))
	order.PutUint16(rec[2:], uint16(ASCII))
	order.PutUint32(rec[4:], 10)
	order.PutUint32(rec[8:], 1000)
	rec = rec[entrySize:]
	// Empty record.
	rec = rec[entrySize:]
	order.PutUint16(rec, uint16(ResolutionUnit))
	order.PutUint16(rec[2:], uint16(SHORT))
	order.PutUint32(rec[4:], 1)
	order.PutUint16(rec[8:], 2)
	order.PutUint32(buf[len(buf)-4:], 42)
	lg := &logRecorder{}
	raws, next, err := decodeIFD(buf, 0, order, lg, "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 1 || raws[0].Tag != ResolutionUnit || raws[0].Short(0, order) != 2 {
		t.Errorf("read %v", raws)
	}
	if next != 42 {
		t.Errorf("next is %d", next)
	}
	if lg.count(LogCorruptData) != 2 || lg.count(LogDebug) != 1 {
		t.Errorf("log is %v", lg.records)
	}
}

func TestDirectory(t *testing.T) {
	d := New()
	dir := d.Directory(IFD0)
	if err := dir.SetValue(Orientation, SHORT, uint16(1)); err != nil {
		t.Fatal(err)
	}
	if err := dir.SetValue(Make, ASCII, "Canon"); err != nil {
		t.Fatal(err)
	}
	err := dir.Add(mustEntry(t, Orientation, SHORT, uint16(3), d.ByteOrder()))
	if !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("duplicate add gave %v", err)
	}
	err = dir.Add(Entry{Model, ASCII, 3, []byte("a")})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("invalid add gave %v", err)
	}
	if err := dir.SetValue(Orientation, SHORT, uint16(8)); err != nil {
		t.Fatal(err)
	}
	entries := dir.Entries()
	if len(entries) != 2 || entries[0].Tag != Orientation || entries[0].Short(0, d.ByteOrder()) != 8 {
		t.Errorf("entries are %v", entries)
	}
	if dir.ByteOrder() != Motorola || dir.IFD() != IFD0 {
		t.Error("wrong directory properties")
	}
	if !dir.Remove(Orientation) || dir.Remove(Orientation) {
		t.Error("Remove")
	}
	var tags []Tag
	dir.ForeachEntry(func(e *Entry) {
		tags = append(tags, e.Tag)
	})
	if len(tags) != 1 || tags[0] != Make || dir.Len() != 1 {
		t.Errorf("tags are %v", tags)
	}
}

func TestAlign(t *testing.T) {
	for in, out := range map[uint32]uint32{0: 0, 1: 2, 8: 8, 9: 10} {
		if Align(in) != out {
			t.Errorf("Align(%d) = %d", in, Align(in))
		}
	}
}
