package exif66

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tagsOf(dir *Directory) []Tag {
	var tags []Tag
	for _, e := range sortEntries(dir.Entries()) {
		tags = append(tags, e.Tag)
	}
	return tags
}

// Fixing an empty tree adds the mandatory tags of a compressed image.
func TestFixDefaults(t *testing.T) {
	d := New()
	defer d.Unref()
	d.Fix()
	want := map[IFD][]Tag{
		IFD0:       {XResolution, YResolution, ResolutionUnit, YCbCrPositioning},
		IFD1:       nil,
		IFDExif:    {ExifVersion, ComponentsConfiguration, FlashpixVersion, ColorSpace, PixelXDimension, PixelYDimension},
		IFDGPS:     nil,
		IFDInterop: nil,
	}
	for ifd, tags := range want {
		if diff := cmp.Diff(tags, tagsOf(d.Directory(ifd))); diff != "" {
			t.Errorf("%s IFD (-want +got):\n%s", ifd.Name(), diff)
		}
	}
	order := d.ByteOrder()
	if e := d.Directory(IFD0).Entry(XResolution); e.Rational(0, order) != (Rational{72, 1}) {
		t.Errorf("XResolution is %s", e.ValueString(order, 0))
	}
	if e := d.Directory(IFDExif).Entry(ExifVersion); string(e.Data) != "0220" {
		t.Errorf("ExifVersion is %q", e.Data)
	}

	// Running it again changes nothing.
	var before [IFDCount][]Entry
	for i := range before {
		before[i] = d.Directory(IFD(i)).Entries()
	}
	d.Fix()
	for i := range before {
		if diff := cmp.Diff(before[i], d.Directory(IFD(i)).Entries()); diff != "" {
			t.Errorf("%s IFD changed (-first +second):\n%s", IFD(i).Name(), diff)
		}
	}
}

func TestFixThumbnail(t *testing.T) {
	d := New()
	defer d.Unref()
	d.Directory(IFD1).SetValue(Orientation, SHORT, uint16(1))
	d.Fix()
	if d.Directory(IFD1).Len() != 0 {
		t.Error("1st IFD kept without a thumbnail")
	}
	d.Directory(IFD1).SetValue(Orientation, SHORT, uint16(1))
	if err := d.SetThumbnail([]byte("\xFF\xD8\xFF\xD9")); err != nil {
		t.Fatal(err)
	}
	d.Fix()
	want := []Tag{Compression, Orientation, XResolution, YResolution, ResolutionUnit}
	if diff := cmp.Diff(want, tagsOf(d.Directory(IFD1))); diff != "" {
		t.Errorf("1st IFD (-want +got):\n%s", diff)
	}
	if e := d.Directory(IFD1).Entry(Compression); e.Short(0, d.ByteOrder()) != 6 {
		t.Error("thumbnail compression isn't JPEG")
	}
}

// Tags that aren't recorded in a directory are removed, unknown tags are
// kept.
func TestFixRemove(t *testing.T) {
	d := New()
	defer d.Unref()
	dir := d.Directory(IFD0)
	dir.SetValue(GPSAltitude, RATIONAL, Rational{10, 1})
	dir.SetValue(Tag(0xBEEF), SHORT, uint16(1))
	dir.SetValue(Compression, SHORT, uint16(6))
	dir.SetValue(ExifIFDPointer, LONG, uint32(100))
	d.Fix()
	for _, tag := range []Tag{GPSAltitude, Compression, ExifIFDPointer} {
		if dir.Entry(tag) != nil {
			t.Errorf("tag 0x%04X kept", uint16(tag))
		}
	}
	if dir.Entry(Tag(0xBEEF)) == nil {
		t.Error("unknown tag removed")
	}
}

func TestFixEntries(t *testing.T) {
	d := New()
	defer d.Unref()
	order := d.ByteOrder()
	dir0 := d.Directory(IFD0)
	dirExif := d.Directory(IFDExif)
	dir0.Add(Entry{Make, ASCII, 5, []byte("Canon")})
	dir0.SetValue(Orientation, LONG, uint32(3))
	dir0.SetValue(ResolutionUnit, LONG, uint32(70000))
	dirExif.SetValue(UserComment, ASCII, "hello")
	d.Fix()

	if e := dir0.Entry(Make); e.Count != 6 || !bytes.Equal(e.Data, []byte("Canon\000")) {
		t.Errorf("Make is %q", e.Data)
	}
	if e := dir0.Entry(Orientation); e.Format != SHORT || e.Count != 1 || e.Short(0, order) != 3 {
		t.Errorf("Orientation is %s %s", e.Format.Name(), e.ValueString(order, 0))
	}
	if e := dir0.Entry(ResolutionUnit); e.Format != LONG || e.Long(0, order) != 70000 {
		t.Errorf("ResolutionUnit is %s %s", e.Format.Name(), e.ValueString(order, 0))
	}
	if e := dirExif.Entry(UserComment); e.Format != UNDEFINED || !bytes.Equal(e.Data, []byte("ASCII\000\000\000hello")) {
		t.Errorf("UserComment is %s %q", e.Format.Name(), e.Data)
	}

	dirExif.SetValue(UserComment, UNDEFINED, []byte("hi"))
	d.Fix()
	if e := dirExif.Entry(UserComment); !bytes.Equal(e.Data, []byte("ASCII\000\000\000hi")) {
		t.Errorf("UserComment is %q", e.Data)
	}
	unicodeComment := append([]byte("UNICODE\000"), 0, 'h', 0, 'i')
	dirExif.SetValue(UserComment, UNDEFINED, unicodeComment)
	d.Fix()
	if e := dirExif.Entry(UserComment); !bytes.Equal(e.Data, unicodeComment) {
		t.Errorf("UNICODE UserComment changed to %q", e.Data)
	}
}

func TestFixDataType(t *testing.T) {
	d := New()
	defer d.Unref()
	d.SetDataType(UncompressedChunky)
	if d.DataType() != UncompressedChunky {
		t.Fatal("SetDataType")
	}
	d.Fix()
	order := d.ByteOrder()
	dir := d.Directory(IFD0)
	for _, tag := range []Tag{ImageWidth, ImageLength, BitsPerSample, Compression, PhotometricInterpretation, StripOffsets, SamplesPerPixel, RowsPerStrip, StripByteCounts} {
		if dir.Entry(tag) == nil {
			t.Errorf("%s not added", TagName(tag, IFD0))
		}
	}
	if dir.Entry(YCbCrPositioning) != nil {
		t.Error("YCbCrPositioning added to RGB image")
	}
	if e := dir.Entry(Compression); e.Short(0, order) != 1 {
		t.Error("uncompressed image has compression")
	}
	if e := dir.Entry(BitsPerSample); e.ValueString(order, 0) != "8 8 8" {
		t.Errorf("BitsPerSample is %s", e.ValueString(order, 0))
	}
	if d.Directory(IFDExif).Entry(ComponentsConfiguration) != nil {
		t.Error("ComponentsConfiguration added to uncompressed image")
	}
}

// FollowSpecification runs Fix after loading.
func TestFollowSpecification(t *testing.T) {
	d := New()
	defer d.Unref()
	d.SetOption(FollowSpecification)
	if err := d.Load(orientationBlock); err != nil {
		t.Fatal(err)
	}
	if d.Directory(IFDExif).Entry(ExifVersion) == nil || d.Directory(IFD0).Entry(XResolution) == nil {
		t.Error("mandatory tags not added")
	}
	if d.Directory(IFD0).Entry(Orientation) == nil {
		t.Error("Orientation removed")
	}
}

type reallocCounter struct {
	Allocator
	reallocs int
}

func (a *reallocCounter) Realloc(buf []byte, size uint32) []byte {
	a.reallocs++
	return a.Allocator.Realloc(buf, size)
}

// Terminating an ASCII value grows its buffer through the allocator.
func TestFixTerminateRealloc(t *testing.T) {
	mem := &reallocCounter{Allocator: NewLimitAllocator(1 << 16)}
	d := NewWithAllocator(mem)
	defer d.Unref()
	d.Directory(IFD0).Add(Entry{Make, ASCII, 5, []byte("Canon")})
	d.Fix()
	if mem.reallocs != 1 {
		t.Errorf("%d reallocations", mem.reallocs)
	}
	if e := d.Directory(IFD0).Entry(Make); e.Count != 6 || !bytes.Equal(e.Data, []byte("Canon\000")) {
		t.Errorf("Make is %q", e.Data)
	}

	// Without memory the entry is left alone.
	mem = &reallocCounter{Allocator: NewLimitAllocator(0)}
	d2 := NewWithAllocator(mem)
	defer d2.Unref()
	lg := &logRecorder{}
	d2.SetLog(lg)
	d2.Directory(IFD0).Add(Entry{Make, ASCII, 5, []byte("Canon")})
	d2.Fix()
	if e := d2.Directory(IFD0).Entry(Make); e.Count != 5 || !bytes.Equal(e.Data, []byte("Canon")) {
		t.Errorf("Make is %q", e.Data)
	}
	if lg.count(LogNoMemory) == 0 {
		t.Error("allocation failure not logged")
	}
}
