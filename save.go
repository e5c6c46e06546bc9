package exif66

import (
	"errors"
	"fmt"
)

// Order of the directories in an encoded block.
var saveOrder = []IFD{IFD0, IFDExif, IFDGPS, IFDInterop, IFD1}

// Return a placeholder for a LONG entry that's set once the layout is
// known.
func pointerEntry(tag Tag) Entry {
	return Entry{tag, LONG, 1, make([]byte, 4)}
}

// Return entries with e replacing any entry with the same tag.
func replaceEntry(entries []Entry, e Entry) []Entry {
	for i := range entries {
		if entries[i].Tag == e.Tag {
			entries[i] = e
			return entries
		}
	}
	return append(entries, e)
}

// Encode the tree as a TIFF block, without the Exif APP1 header. The
// directories are written in the order 0th, Exif, GPS, Interoperability,
// 1st, followed by the thumbnail. Sub-IFD pointers and the thumbnail
// position are generated from the tree's contents. Empty directories
// other than the 0th are omitted. Returns nil and ErrNoMemory if the
// allocator fails.
func (d *Data) Save() ([]byte, error) {
	d.check()
	order := d.order
	var entries [IFDCount][]Entry
	for i, dir := range d.ifd {
		for _, e := range dir.entries {
			if !isStructural(e.Tag, IFD(i)) {
				entries[i] = append(entries[i], e)
			}
		}
	}
	mnote, err := d.encodeMakerNote()
	if err != nil {
		return nil, err
	}
	defer d.mem.Free(mnote)
	if mnote != nil {
		entries[IFDExif] = replaceEntry(entries[IFDExif], Entry{MakerNote, UNDEFINED, uint32(len(mnote)), mnote})
	}

	var present [IFDCount]bool
	present[IFD0] = true
	present[IFDInterop] = len(entries[IFDInterop]) > 0
	present[IFDExif] = len(entries[IFDExif]) > 0 || present[IFDInterop]
	present[IFDGPS] = len(entries[IFDGPS]) > 0
	hasThumb := len(d.thumbnail) > 0
	present[IFD1] = len(entries[IFD1]) > 0 || hasThumb
	if present[IFDExif] {
		entries[IFD0] = append(entries[IFD0], pointerEntry(ExifIFDPointer))
	}
	if present[IFDGPS] {
		entries[IFD0] = append(entries[IFD0], pointerEntry(GPSInfoIFDPointer))
	}
	if present[IFDInterop] {
		entries[IFDExif] = append(entries[IFDExif], pointerEntry(InteropIFDPointer))
	}
	if hasThumb {
		entries[IFD1] = append(entries[IFD1], pointerEntry(JPEGInterchangeFormat), pointerEntry(JPEGInterchangeFormatLength))
	}

	// Sizes don't depend on positions, so a single pass assigns them.
	var enc [IFDCount]*encodedIFD
	var pos [IFDCount]uint32
	next := uint32(HeaderSize)
	for _, ifd := range saveOrder {
		if !present[ifd] {
			continue
		}
		enc[ifd] = encodeIFD(entries[ifd], order)
		pos[ifd] = next
		enc[ifd].relocate(next)
		next = Align(next + enc[ifd].size())
	}
	thumbPos := next
	size := uint64(thumbPos) + uint64(len(d.thumbnail))
	if size > 0xFFFFFFFF {
		return nil, fmt.Errorf("encoded size %d exceeds the 32 bit offset range", size)
	}

	if present[IFDExif] {
		enc[IFD0].setLong(ExifIFDPointer, pos[IFDExif])
	}
	if present[IFDGPS] {
		enc[IFD0].setLong(GPSInfoIFDPointer, pos[IFDGPS])
	}
	if present[IFDInterop] {
		enc[IFDExif].setLong(InteropIFDPointer, pos[IFDInterop])
	}
	if present[IFD1] {
		enc[IFD0].setNext(pos[IFD1])
	}
	if hasThumb {
		enc[IFD1].setLong(JPEGInterchangeFormat, thumbPos)
		enc[IFD1].setLong(JPEGInterchangeFormatLength, uint32(len(d.thumbnail)))
	}
	if mnote != nil {
		// Encode the maker note again now that its position is known.
		d.mnote.SetOffset(pos[IFDExif] + enc[IFDExif].offsets[MakerNote])
		final, err := d.mnote.Save()
		if err != nil {
			return nil, err
		}
		if len(final) != len(mnote) {
			d.mem.Free(final)
			return nil, fmt.Errorf("maker note size changed from %d to %d bytes", len(mnote), len(final))
		}
		enc[IFDExif].setValue(MakerNote, final)
		d.mem.Free(final)
	}

	out := d.mem.Alloc(uint32(size))
	if out == nil {
		d.log.Log(LogNoMemory, "save", "can't allocate %d bytes", size)
		return nil, ErrNoMemory
	}
	PutHeader(out, order, HeaderSize)
	for _, ifd := range saveOrder {
		if present[ifd] {
			enc[ifd].put(out, pos[ifd])
		}
	}
	copy(out[thumbPos:], d.thumbnail)
	return out, nil
}

// Encode the maker note with its vendor codec, or return nil if the raw
// MakerNote entry is to be written instead. That's the case when there's
// no decoded maker note, or DontChangeMakerNote is set and there is a raw
// entry to keep.
func (d *Data) encodeMakerNote() ([]byte, error) {
	if d.mnote == nil {
		return nil, nil
	}
	if d.options&DontChangeMakerNote != 0 && d.ifd[IFDExif].Entry(MakerNote) != nil {
		return nil, nil
	}
	buf, err := d.mnote.Save()
	switch {
	case errors.Is(err, ErrNoMemory):
		d.log.Log(LogNoMemory, "makernote", "can't encode the maker note")
		return nil, err
	case err != nil:
		// Keep the raw entry if the maker note can't be encoded.
		d.log.Log(LogCorruptData, "makernote", "%v", err)
		return nil, nil
	}
	return buf, nil
}
