package exif66

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	jseg "github.com/garyhouston/jpegsegs"
)

func segment(marker byte, data []byte) []byte {
	n := len(data) + 2
	return append([]byte{0xFF, marker, byte(n >> 8), byte(n)}, data...)
}

// A minimal JPEG stream: JFIF APP0, a scan with its data, and EOI.
func testJPEG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, jseg.SOI})
	buf.Write(segment(jseg.APP0, []byte("JFIF\000\001\002\000\000\001\000\001\000\000")))
	buf.Write(segment(jseg.SOS, []byte{1, 1, 0, 0, 63, 0}))
	buf.Write([]byte{0x12, 0x34, 0x56})
	buf.Write([]byte{0xFF, jseg.EOI})
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// Copy in to out with its Exif block replaced.
func rewriteJPEG(t *testing.T, in, out string, block []byte) {
	t.Helper()
	r, err := os.Open(in)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	w, err := os.Create(out)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := WriteJPEG(w, r, block); err != nil {
		t.Fatal(err)
	}
}

func TestJPEG(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.jpg")
	withExif := filepath.Join(dir, "exif.jpg")
	stripped := filepath.Join(dir, "stripped.jpg")
	orig := testJPEG()
	writeFile(t, plain, orig)

	if _, err := ReadFile(plain); !errors.Is(err, ErrNoExif) {
		t.Errorf("JPEG without Exif gave %v", err)
	}
	rewriteJPEG(t, plain, withExif, orientationBlock)
	out, err := os.ReadFile(withExif)
	if err != nil {
		t.Fatal(err)
	}
	// The Exif segment follows the JFIF segment.
	app1 := 2 + 4 + 14
	if out[app1] != 0xFF || out[app1+1] != jseg.APP0+1 || !bytes.Equal(out[app1+4:app1+4+len(ExifHeader)], ExifHeader) {
		t.Errorf("no Exif segment after JFIF: % X", out[:app1+10])
	}
	if !bytes.HasSuffix(out, []byte{0x12, 0x34, 0x56, 0xFF, jseg.EOI}) {
		t.Error("image data not copied")
	}
	block, err := ReadFile(withExif)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(block, orientationBlock) {
		t.Errorf("read back % X", block)
	}
	d, err := NewFromFile(withExif)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Unref()
	if e := d.Directory(IFD0).Entry(Orientation); e == nil {
		t.Error("Orientation not loaded")
	}

	// Replacing keeps a single Exif segment, an empty block removes it.
	rewriteJPEG(t, withExif, stripped, orientationBlock)
	if again, _ := os.ReadFile(stripped); !bytes.Equal(again, out) {
		t.Error("replacing the Exif segment changed the file")
	}
	rewriteJPEG(t, withExif, stripped, nil)
	if again, _ := os.ReadFile(stripped); !bytes.Equal(again, orig) {
		t.Errorf("removing the Exif segment gave % X", again)
	}
}

// Files that aren't JPEG are read as Exif blocks.
func TestReadRawFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.exif")
	writeFile(t, path, append(append([]byte{}, ExifHeader...), orientationBlock...))
	d, err := NewFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Unref()
	if d.ByteOrder() != Intel || d.Directory(IFD0).Len() != 1 {
		t.Error("block not loaded")
	}
	writeFile(t, path, []byte("not exif"))
	if _, err := NewFromFile(path); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("junk gave %v", err)
	}
}
