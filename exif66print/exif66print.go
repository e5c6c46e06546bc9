package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	exif "github.com/garyhouston/exif66"
)

func printTags(m exif.Manufacturer) {
	tags, err := exif.MakerNoteTags(m)
	if err != nil {
		log.Fatal(err)
	}
	md, err := exif.NewMakerNoteData(m)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s maker note tags:\n", m)
	for _, tag := range tags {
		fmt.Printf("0x%04X %s\n", uint16(tag), md.Name(tag))
	}
}

// Read and display the Exif block of a JPEG file, or a file holding only
// the block, including the maker note if it can be decoded.
func main() {
	var length uint
	var ignoreUnknown, fix, list bool
	flag.UintVar(&length, "m", 20, "maximum values to print or 0 for no limit")
	flag.BoolVar(&ignoreUnknown, "i", false, "ignore unknown tags")
	flag.BoolVar(&fix, "f", false, "fix the data to follow the Exif specification")
	flag.BoolVar(&list, "l", false, "list the known tags of the file's maker note")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [-m max values] [-i] [-f] [-l] file\n", os.Args[0])
		return
	}
	buf, err := exif.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	data := exif.New()
	defer data.Unref()
	if ignoreUnknown {
		data.SetOption(exif.IgnoreUnknownTags)
	}
	if fix {
		data.SetOption(exif.FollowSpecification)
	}
	if err := data.Load(buf); err != nil {
		log.Fatal(err)
	}
	if err := data.Dump(os.Stdout, uint32(length)); err != nil {
		log.Fatal(err)
	}
	if md := data.MakerNote(); list && md != nil {
		fmt.Println()
		printTags(md.Manufacturer())
	}
}
