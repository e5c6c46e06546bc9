package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	exif "github.com/garyhouston/exif66"
	jseg "github.com/garyhouston/jpegsegs"
)

// Write a JPEG file with its Exif segment replaced, or a file holding
// only the Exif block, after the Exif header if exifHeader is set.
func writeOutput(inPath, outPath string, block []byte, exifHeader bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	head := make([]byte, jseg.HeaderSize)
	if _, err := io.ReadFull(in, head); err != nil {
		return err
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if jseg.IsJPEGHeader(head) {
		err = exif.WriteJPEG(out, in, block)
	} else {
		if exifHeader {
			block = append(append([]byte{}, exif.ExifHeader...), block...)
		}
		_, err = out.Write(block)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// Decode an Exif block, then re-encode it and write it to a new file.
func main() {
	var orderName string
	var fix, keepMakerNote bool
	flag.StringVar(&orderName, "order", "", "byte order of the output, II or MM")
	flag.BoolVar(&fix, "f", false, "fix the data to follow the Exif specification")
	flag.BoolVar(&keepMakerNote, "keep-makernote", false, "write the maker note unchanged")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Printf("Usage: %s [-order II|MM] [-f] [-keep-makernote] file outfile\n", os.Args[0])
		return
	}
	buf, err := exif.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	data := exif.New()
	defer data.Unref()
	if keepMakerNote {
		data.SetOption(exif.DontChangeMakerNote)
	}
	if err := data.Load(buf); err != nil {
		log.Fatal(err)
	}
	switch orderName {
	case "":
	case "II":
		data.SetByteOrder(exif.Intel)
	case "MM":
		data.SetByteOrder(exif.Motorola)
	default:
		log.Fatalf("Invalid byte order %q", orderName)
	}
	if fix {
		data.Fix()
	}
	block, err := data.Save()
	if err != nil {
		log.Fatal(err)
	}
	if err := writeOutput(flag.Arg(0), flag.Arg(1), block, bytes.HasPrefix(buf, exif.ExifHeader)); err != nil {
		log.Fatal(err)
	}
}
