package exif66

import (
	"bytes"
	"testing"
)

// An empty tree is saved as a header and an empty 0th IFD.
func TestEmpty(t *testing.T) {
	d := New()
	defer d.Unref()
	buf, err := d.Save()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'M', 'M', 0, 0x2A, 0, 0, 0, 8, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(buf, want) {
		t.Errorf("empty tree saved as % X", buf)
	}
	d2, err := NewFromData(buf)
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Unref()
	d2.ForeachContent(func(dir *Directory) {
		if dir.Len() != 0 {
			t.Errorf("%s IFD has %d entries", dir.IFD().Name(), dir.Len())
		}
	})
}

// Empty directories aren't written, except for an Exif IFD that's needed
// to reach a non-empty Interoperability IFD.
func TestEmptyIFDsOmitted(t *testing.T) {
	d := New()
	defer d.Unref()
	d.Directory(IFDInterop).SetValue(InteroperabilityIndex, ASCII, "R98")
	buf, err := d.Save()
	if err != nil {
		t.Fatal(err)
	}
	// 0th, Exif and Interoperability IFDs with one entry each.
	if len(buf) != HeaderSize+3*int(tableSize(1)) {
		t.Errorf("saved %d bytes", len(buf))
	}
	if n := Motorola.Uint16(buf[HeaderSize:]); n != 1 {
		t.Errorf("0th IFD has %d entries", n)
	}
	d2, err := NewFromData(buf)
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Unref()
	if e := d2.Directory(IFDInterop).Entry(InteroperabilityIndex); e == nil || e.ASCII() != "R98" {
		t.Error("Interoperability IFD not read back")
	}
	if d2.Directory(IFDExif).Len() != 0 || d2.Directory(IFDGPS).Len() != 0 || d2.Directory(IFD0).Len() != 0 {
		t.Error("pointers kept as entries")
	}

	// Removing the only entry drops both sub-IFDs.
	d2.Directory(IFDInterop).Remove(InteroperabilityIndex)
	buf, err = d2.Save()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != HeaderSize+int(tableSize(0)) {
		t.Errorf("saved %d bytes", len(buf))
	}
}
