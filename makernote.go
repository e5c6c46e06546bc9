package exif66

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Camera manufacturers with supported maker notes.
type Manufacturer int

const (
	Canon Manufacturer = iota + 1
	Olympus
	Pentax
	Nikon
	Casio
	Fuji
	Samsung
)

var manufacturerNames = map[Manufacturer]string{
	Canon:   "Canon",
	Olympus: "Olympus",
	Pentax:  "Pentax",
	Nikon:   "Nikon",
	Casio:   "Casio",
	Fuji:    "Fuji",
	Samsung: "Samsung",
}

func (m Manufacturer) String() string {
	name, found := manufacturerNames[m]
	if found {
		return name
	}
	return "Unknown"
}

var (
	ErrUnknownManufacturer  = errors.New("unrecognized manufacturer")
	ErrNoMakerNote          = errors.New("no maker note allocated")
	ErrManufacturerMismatch = errors.New("maker note belongs to a different manufacturer")
	ErrSlotRange            = errors.New("maker note entry slot out of reserved range")
	ErrSubtagRange          = errors.New("subtag out of range of the parent entry")
	ErrInvalidFormat        = errors.New("invalid format")
)

// MakerNoteData is a decoded maker note. Each manufacturer has its own
// implementation with its own tag table, byte order and offset
// conventions.
type MakerNoteData interface {
	Manufacturer() Manufacturer
	// Load decodes the maker note found at pos in buf, which is the
	// whole TIFF block since some vendors use offsets relative to its
	// start. order is the byte order of the block.
	Load(buf []byte, pos, size uint32, order ByteOrder) error
	// Save encodes the maker note for the position set with SetOffset.
	Save() ([]byte, error)
	SetOffset(offset uint32)
	ByteOrder() ByteOrder
	// SetByteOrder converts the entries to a new order, unless the
	// vendor fixes the order of its maker notes.
	SetByteOrder(order ByteOrder)
	Count() int
	Tag(i int) (Tag, bool)
	Name(tag Tag) string
	Value(tag Tag) (string, bool)
	Entries() []Entry

	// Builder steps, see the Data methods of the same names.
	Reserve(n int) error
	AddEntry(tag Tag, format Format, components uint32, slot int) error
	AddSubtagEntry(tag Tag, format Format, components uint32, sub Subtag, value int64) error
	AddString(tag Tag, format Format, components uint32, s string) error
}

// Subtag addresses one component of a grouped maker note entry: an
// integer array whose components are themselves named values.
type Subtag struct {
	Tag  Tag // Index of the component in the parent entry.
	Slot int // Entry slot holding the parent entry.
}

type makerNoteVendor struct {
	// Indicate if the maker note starts with one of the vendor's labels
	// or has some other recognizable structure.
	signature func(data []byte) bool
	// Lower case prefixes of the Make tag used when no signature matches.
	makes  []string
	create func() MakerNoteData
}

var makerNoteVendors = map[Manufacturer]makerNoteVendor{
	Canon:   {nil, []string{"canon"}, newCanonNote},
	Olympus: {isOlympusNote, nil, newOlympusNote},
	Pentax:  {isPentaxNote, []string{"pentax", "asahi"}, newPentaxNote},
	Nikon:   {isNikonNote, []string{"nikon"}, newNikonNote},
	Casio:   {isCasioNote, []string{"casio"}, newCasioNote},
	Fuji:    {isFujiNote, nil, newFujiNote},
	Samsung: {nil, []string{"samsung"}, newSamsungNote},
}

// Return the manufacturers with maker note support, in order.
func Manufacturers() []Manufacturer {
	list := maps.Keys(makerNoteVendors)
	slices.Sort(list)
	return list
}

// Identify the manufacturer of a maker note from its data and the camera
// make and model. Signatures are tried first, then the make. Returns
// false if the maker note isn't recognized.
func IdentifyMakerNote(data []byte, camMake, model string) (Manufacturer, bool) {
	list := Manufacturers()
	for _, m := range list {
		if sig := makerNoteVendors[m].signature; sig != nil && sig(data) {
			return m, true
		}
	}
	lcMake := strings.ToLower(strings.TrimSpace(camMake))
	for _, m := range list {
		for _, prefix := range makerNoteVendors[m].makes {
			if strings.HasPrefix(lcMake, prefix) {
				return m, true
			}
		}
	}
	return 0, false
}

// Create an empty maker note for a manufacturer.
func NewMakerNoteData(m Manufacturer) (MakerNoteData, error) {
	vendor, found := makerNoteVendors[m]
	if !found {
		return nil, ErrUnknownManufacturer
	}
	return vendor.create(), nil
}

// Return the tags named by a manufacturer's maker note table, in
// ascending order.
func MakerNoteTags(m Manufacturer) ([]Tag, error) {
	md, err := NewMakerNoteData(m)
	if err != nil {
		return nil, err
	}
	n, ok := md.(interface{ tagNames() map[Tag]string })
	if !ok {
		return nil, nil
	}
	tags := maps.Keys(n.tagNames())
	slices.Sort(tags)
	return tags, nil
}

// Given a buffer pointing to an IFD entry count, guess the byte order of
// the IFD. The number of entries is usually small, usually less than
// 256.
func detectByteOrder(buf []byte, fallback ByteOrder) ByteOrder {
	if len(buf) < 2 {
		return fallback
	}
	big := Motorola.Uint16(buf)
	little := Intel.Uint16(buf)
	if little < big {
		return Intel
	}
	return Motorola
}

// Return the byte order given by a two byte "II" or "MM" marker.
func markerOrder(marker []byte) (ByteOrder, bool) {
	switch {
	case bytes.HasPrefix(marker, []byte("II")):
		return Intel, true
	case bytes.HasPrefix(marker, []byte("MM")):
		return Motorola, true
	}
	return Motorola, false
}

func orderMarker(order ByteOrder) []byte {
	if order == Intel {
		return []byte("II")
	}
	return []byte("MM")
}

// Create an empty maker note for a manufacturer, replacing any maker note
// in the tree. It will be written in the Exif IFD on Save.
func (d *Data) NewMakerNote(m Manufacturer) error {
	d.check()
	md, err := NewMakerNoteData(m)
	if err != nil {
		return err
	}
	d.attachMakerNote(md)
	md.SetByteOrder(d.order)
	return nil
}

// Return the tree's maker note if it belongs to m.
func (d *Data) builderNote(m Manufacturer) (MakerNoteData, error) {
	d.check()
	if _, found := makerNoteVendors[m]; !found {
		return nil, ErrUnknownManufacturer
	}
	if d.mnote == nil {
		return nil, ErrNoMakerNote
	}
	if d.mnote.Manufacturer() != m {
		return nil, ErrManufacturerMismatch
	}
	return d.mnote, nil
}

// Reserve n more entry slots in the maker note.
func (d *Data) ReserveMakerNoteEntries(m Manufacturer, n int) error {
	md, err := d.builderNote(m)
	if err != nil {
		return err
	}
	return md.Reserve(n)
}

// Put a zero-valued entry in a reserved maker note slot.
func (d *Data) AddMakerNoteEntry(m Manufacturer, tag Tag, format Format, components uint32, slot int) error {
	md, err := d.builderNote(m)
	if err != nil {
		return err
	}
	return md.AddEntry(tag, format, components, slot)
}

// Set one component of a grouped maker note entry, creating the parent
// entry in sub.Slot if it isn't already there.
func (d *Data) AddMakerNoteSubtagEntry(m Manufacturer, tag Tag, format Format, components uint32, sub Subtag, value int64) error {
	md, err := d.builderNote(m)
	if err != nil {
		return err
	}
	return md.AddSubtagEntry(tag, format, components, sub, value)
}

// Put a NUL-terminated string entry in the next free maker note slot. If
// components is nonzero the value is padded or truncated to that size.
func (d *Data) AddMakerNoteString(m Manufacturer, tag Tag, format Format, components uint32, s string) error {
	md, err := d.builderNote(m)
	if err != nil {
		return err
	}
	return md.AddString(tag, format, components, s)
}
