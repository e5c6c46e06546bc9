package exif66

import (
	"bytes"
	"testing"
)

// Create a tree with entries in every IFD and a thumbnail, and check
// the layout of the saved block and that it's read back correctly.
func TestSubIFDs(t *testing.T) {
	order := Intel
	d := New()
	defer d.Unref()
	d.SetByteOrder(order)
	d.Directory(IFD0).SetValue(Orientation, SHORT, uint16(1))
	d.Directory(IFD1).SetValue(Compression, SHORT, uint16(6))
	d.Directory(IFDExif).SetValue(ExposureTime, RATIONAL, Rational{1, 250})
	d.Directory(IFDGPS).SetValue(GPSVersionID, BYTE, []byte{2, 3, 0, 0})
	d.Directory(IFDInterop).SetValue(InteroperabilityIndex, ASCII, "R98")
	thumb := []byte("\xFF\xD8\xFF\xD9")
	if err := d.SetThumbnail(thumb); err != nil {
		t.Fatal(err)
	}
	buf, err := d.Save()
	if err != nil {
		t.Fatal(err)
	}
	valid, getorder, getpos := GetHeader(buf)
	if !valid {
		t.Fatal("Header not valid")
	}
	if getorder != order {
		t.Error("Order incorrect")
	}
	if getpos != HeaderSize {
		t.Error("Position incorrect")
	}

	// Layout: 0th (Orientation, Exif and GPS pointers), Exif
	// (ExposureTime and its value, Interop pointer), GPS, Interop, 1st
	// (Compression and thumbnail tags), thumbnail.
	exifPos := HeaderSize + tableSize(3)
	gpsPos := exifPos + tableSize(2) + 8
	interopPos := gpsPos + tableSize(1)
	ifd1Pos := interopPos + tableSize(1)
	thumbPos := ifd1Pos + tableSize(3)
	if len(buf) != int(thumbPos)+len(thumb) {
		t.Fatalf("saved %d bytes", len(buf))
	}
	if !bytes.Equal(buf[thumbPos:], thumb) {
		t.Error("thumbnail not at end")
	}
	raws, next, err := decodeIFD(buf, HeaderSize, order, &logRecorder{}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if next != ifd1Pos {
		t.Errorf("1st IFD at %d", next)
	}
	if len(raws) != 3 || raws[1].Tag != ExifIFDPointer || raws[1].Long(0, order) != exifPos ||
		raws[2].Tag != GPSInfoIFDPointer || raws[2].Long(0, order) != gpsPos {
		t.Errorf("0th IFD is %v", raws)
	}
	raws, _, _ = decodeIFD(buf, ifd1Pos, order, &logRecorder{}, "test")
	if len(raws) != 3 || raws[1].Long(0, order) != thumbPos || raws[2].Long(0, order) != uint32(len(thumb)) {
		t.Errorf("1st IFD is %v", raws)
	}
	raws, _, _ = decodeIFD(buf, exifPos, order, &logRecorder{}, "test")
	if len(raws) != 2 || raws[1].Tag != InteropIFDPointer || raws[1].Long(0, order) != interopPos {
		t.Errorf("Exif IFD is %v", raws)
	}

	d2, err := NewFromData(buf)
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Unref()
	if !bytes.Equal(d2.Thumbnail(), thumb) {
		t.Error("Wrong thumbnail")
	}
	for ifd, tag := range map[IFD]Tag{IFD0: Orientation, IFD1: Compression, IFDExif: ExposureTime, IFDGPS: GPSVersionID, IFDInterop: InteroperabilityIndex} {
		dir := d2.Directory(ifd)
		if dir.Len() != 1 || dir.Entry(tag) == nil {
			t.Errorf("Wrong entries in %s IFD: %v", ifd.Name(), dir.Entries())
		}
	}

	// Without a thumbnail the 1st IFD has no thumbnail tags.
	d2.SetThumbnail(nil)
	buf, err = d2.Save()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != int(ifd1Pos+tableSize(1)) {
		t.Errorf("saved %d bytes without thumbnail", len(buf))
	}
}
