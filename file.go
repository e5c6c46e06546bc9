package exif66

import (
	"bytes"
	"errors"
	"io"
	"os"

	jseg "github.com/garyhouston/jpegsegs"
)

var ErrNoExif = errors.New("no Exif APP1 segment found")

const app1 = jseg.APP0 + 1

// Indicate if a JPEG segment holds an Exif block.
func isExifSegment(seg jseg.Segment) bool {
	return seg.Marker == app1 && bytes.HasPrefix(seg.Data, ExifHeader)
}

// Return the TIFF block from the Exif APP1 segment of a JPEG stream.
func ReadJPEG(r io.ReadSeeker) ([]byte, error) {
	segments, err := jseg.ReadSegments(r)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		if isExifSegment(seg) {
			return seg.Data[len(ExifHeader):], nil
		}
	}
	return nil, ErrNoExif
}

// Copy a JPEG stream from r to w with its Exif APP1 segment replaced by
// a TIFF block. If r has no Exif segment, one is inserted after any JFIF
// APP0 segment. An empty block removes the Exif segment.
func WriteJPEG(w io.WriteSeeker, r io.ReadSeeker, block []byte) error {
	segments, err := jseg.ReadSegments(r)
	if err != nil {
		return err
	}
	var exif *jseg.Segment
	if len(block) > 0 {
		exif = &jseg.Segment{Marker: app1, Data: append(append([]byte{}, ExifHeader...), block...)}
	}
	out := make([]jseg.Segment, 0, len(segments)+1)
	for _, seg := range segments {
		if isExifSegment(seg) {
			if exif != nil {
				out = append(out, *exif)
				exif = nil
			}
			continue
		}
		if exif != nil && seg.Marker != jseg.APP0 {
			out = append(out, *exif)
			exif = nil
		}
		out = append(out, seg)
	}
	if err := jseg.WriteSegments(w, out); err != nil {
		return err
	}
	// Image data and everything after it is copied unchanged.
	_, err = io.Copy(w, r)
	return err
}

// Read an Exif block from a file, which is either a JPEG file or holds
// the block itself, with or without the Exif header.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	head := make([]byte, jseg.HeaderSize)
	if _, err := io.ReadFull(file, head); err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if jseg.IsJPEGHeader(head) {
		return ReadJPEG(file)
	}
	return io.ReadAll(file)
}

// Return a tree loaded from a file, see ReadFile.
func NewFromFile(path string) (*Data, error) {
	buf, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromData(buf)
}
