package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	exif "github.com/garyhouston/exif66"
)

func testBlock(t *testing.T) []byte {
	t.Helper()
	d := exif.New()
	defer d.Unref()
	d.Directory(exif.IFD0).SetValue(exif.Orientation, exif.SHORT, uint16(1))
	block, err := d.Save()
	if err != nil {
		t.Fatal(err)
	}
	return block
}

// Raw blocks keep the framing they were read with.
func TestWriteRawOutput(t *testing.T) {
	block := testBlock(t)
	dir := t.TempDir()
	for _, prefixed := range []bool{false, true} {
		in := filepath.Join(dir, "in.exif")
		out := filepath.Join(dir, "out.exif")
		data := block
		if prefixed {
			data = append(append([]byte{}, exif.ExifHeader...), block...)
		}
		if err := os.WriteFile(in, data, 0o644); err != nil {
			t.Fatal(err)
		}
		buf, err := exif.ReadFile(in)
		if err != nil {
			t.Fatal(err)
		}
		if err := writeOutput(in, out, block, bytes.HasPrefix(buf, exif.ExifHeader)); err != nil {
			t.Fatal(err)
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("prefixed=%v: wrote % X", prefixed, got)
		}
	}
}
