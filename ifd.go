package exif66

import (
	"cmp"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

const entrySize = 12

// Return the size of an IFD table with n entries: 2 bytes for the entry
// count, 12 for each entry and 4 for the position of the next IFD.
func tableSize(n int) uint32 {
	return 2 + uint32(n)*entrySize + 4
}

// Align a position to the next word (2 byte) boundary.
func Align(pos uint32) uint32 {
	if pos/2*2 != pos {
		return pos + 1
	}
	return pos
}

var (
	ErrDuplicateTag = errors.New("tag already present in IFD")
	ErrInvalidEntry = errors.New("entry data size doesn't match format and count")
)

// One of the five IFDs of a Data tree. Tags are unique within a
// directory and entries keep their insertion order.
type Directory struct {
	ifd     IFD
	entries []Entry
	parent  *Data
}

// Return the kind of IFD.
func (c *Directory) IFD() IFD {
	return c.ifd
}

// Return the number of entries.
func (c *Directory) Len() int {
	return len(c.entries)
}

// Return the entries in insertion order. The slice is a copy but the
// entries share their data with the directory.
func (c *Directory) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Return the byte order of the owning tree.
func (c *Directory) ByteOrder() ByteOrder {
	return c.parent.order
}

// Return a pointer to the entry with the given tag, or nil.
func (c *Directory) Entry(tag Tag) *Entry {
	for i := range c.entries {
		if c.entries[i].Tag == tag {
			return &c.entries[i]
		}
	}
	return nil
}

// Add an entry. The directory takes ownership of its data.
func (c *Directory) Add(e Entry) error {
	if !e.valid() {
		return fmt.Errorf("tag 0x%04X: %w", uint16(e.Tag), ErrInvalidEntry)
	}
	if c.Entry(e.Tag) != nil {
		return fmt.Errorf("tag 0x%04X: %w", uint16(e.Tag), ErrDuplicateTag)
	}
	c.entries = append(c.entries, e)
	return nil
}

// Add an entry, replacing any existing entry with the same tag in place.
func (c *Directory) Set(e Entry) error {
	if !e.valid() {
		return fmt.Errorf("tag 0x%04X: %w", uint16(e.Tag), ErrInvalidEntry)
	}
	if old := c.Entry(e.Tag); old != nil {
		c.parent.mem.Free(old.Data)
		*old = e
		return nil
	}
	c.entries = append(c.entries, e)
	return nil
}

// Encode a value in the tree's byte order and Set it.
func (c *Directory) SetValue(tag Tag, format Format, value interface{}) error {
	e, err := NewEntry(tag, format, value, c.parent.order)
	if err != nil {
		return err
	}
	return c.Set(e)
}

// Remove the entry with the given tag. Returns false if there was none.
func (c *Directory) Remove(tag Tag) bool {
	for i := range c.entries {
		if c.entries[i].Tag == tag {
			c.parent.mem.Free(c.entries[i].Data)
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Call fn for each entry in insertion order.
func (c *Directory) ForeachEntry(fn func(*Entry)) {
	for i := range c.entries {
		fn(&c.entries[i])
	}
}

func (c *Directory) clear() {
	for _, e := range c.entries {
		c.parent.mem.Free(e.Data)
	}
	c.entries = nil
}

// An entry read from an IFD table, with the position of its value in the
// buffer. Data points into the buffer.
type rawEntry struct {
	Entry
	pos uint32
}

// Read the IFD table at pos. Records that don't fit in buf are dropped,
// as are entries whose format is unknown or whose value lies outside buf;
// each is reported to lg. Returns the entries and the position of the
// next IFD, which is 0 if it couldn't be read. Only fails if the entry
// count itself is out of bounds.
func decodeIFD(buf []byte, pos uint32, order ByteOrder, lg Logger, domain string) ([]rawEntry, uint32, error) {
	size := uint64(len(buf))
	if uint64(pos)+2 > size {
		return nil, 0, fmt.Errorf("IFD at %d is beyond the end of the %d byte buffer", pos, size)
	}
	n := uint64(order.Uint16(buf[pos:]))
	complete := true
	if avail := (size - uint64(pos) - 2) / entrySize; n > avail {
		lg.Log(LogCorruptData, domain, "IFD at %d has %d entries but only %d fit in the buffer", pos, n, avail)
		n = avail
		complete = false
	}
	entries := make([]rawEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		rec := uint64(pos) + 2 + i*entrySize
		tag := Tag(order.Uint16(buf[rec:]))
		format := Format(order.Uint16(buf[rec+2:]))
		count := order.Uint32(buf[rec+4:])
		unit := uint64(format.Size())
		if unit == 0 {
			if tag == 0 && format == 0 {
				lg.Log(LogDebug, domain, "skipping empty entry %d in IFD at %d", i, pos)
			} else {
				lg.Log(LogCorruptData, domain, "tag 0x%04X has invalid format %d", uint16(tag), uint16(format))
			}
			continue
		}
		length := unit * uint64(count)
		valuePos := rec + 8
		if length > 4 {
			valuePos = uint64(order.Uint32(buf[rec+8:]))
		}
		if valuePos+length > size {
			lg.Log(LogCorruptData, domain, "value of tag 0x%04X (%d bytes at %d) is beyond the end of the buffer", uint16(tag), length, valuePos)
			continue
		}
		entries = append(entries, rawEntry{
			Entry: Entry{tag, format, count, buf[valuePos : valuePos+length]},
			pos:   uint32(valuePos),
		})
	}
	var next uint32
	if nextPos := uint64(pos) + 2 + n*entrySize; complete && nextPos+4 <= size {
		next = order.Uint32(buf[nextPos:])
	}
	return entries, next, nil
}

// An encoded IFD: the table followed by the external value area. Value
// offsets in the table are first written relative to the start of the
// value area and made absolute by relocate.
type encodedIFD struct {
	order   ByteOrder
	table   []byte
	values  []byte
	patches []uint32       // table positions holding value offsets
	offsets map[Tag]uint32 // position of each tag's value, relative to the start of the table
}

// Return entries sorted by ascending tag, keeping the original order of
// equal tags.
func sortEntries(entries []Entry) []Entry {
	sorted := append([]Entry(nil), entries...)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	return sorted
}

// Encode entries as an IFD table and value area in the given byte order.
// The next IFD pointer is 0 until set.
func encodeIFD(entries []Entry, order ByteOrder) *encodedIFD {
	sorted := sortEntries(entries)
	enc := &encodedIFD{
		order:   order,
		table:   make([]byte, tableSize(len(sorted))),
		offsets: make(map[Tag]uint32, len(sorted)),
	}
	order.PutUint16(enc.table, uint16(len(sorted)))
	for i, e := range sorted {
		recPos := 2 + uint32(i)*entrySize
		rec := enc.table[recPos:]
		order.PutUint16(rec, uint16(e.Tag))
		order.PutUint16(rec[2:], uint16(e.Format))
		order.PutUint32(rec[4:], e.Count)
		size := e.Size()
		if size <= 4 {
			copy(rec[8:12], e.Data[:size])
			enc.offsets[e.Tag] = recPos + 8
			continue
		}
		valuePos := uint32(len(enc.values))
		order.PutUint32(rec[8:], valuePos)
		enc.patches = append(enc.patches, recPos+8)
		enc.offsets[e.Tag] = uint32(len(enc.table)) + valuePos
		enc.values = append(enc.values, e.Data[:size]...)
		if size%2 == 1 {
			enc.values = append(enc.values, 0)
		}
	}
	return enc
}

// Return the encoded size of the table and value area.
func (enc *encodedIFD) size() uint32 {
	return uint32(len(enc.table) + len(enc.values))
}

// Make value offsets absolute, given the position of the table.
func (enc *encodedIFD) relocate(pos uint32) {
	base := pos + uint32(len(enc.table))
	for _, p := range enc.patches {
		enc.order.PutUint32(enc.table[p:], enc.order.Uint32(enc.table[p:])+base)
	}
}

// Overwrite the value of a tag, which must fit in 4 bytes, with a LONG.
func (enc *encodedIFD) setLong(tag Tag, val uint32) {
	if pos, ok := enc.offsets[tag]; ok {
		enc.order.PutUint32(enc.table[pos:], val)
	}
}

// Set the position of the next IFD.
func (enc *encodedIFD) setNext(next uint32) {
	enc.order.PutUint32(enc.table[len(enc.table)-4:], next)
}

// Overwrite the value of a tag with data of the same length.
func (enc *encodedIFD) setValue(tag Tag, data []byte) {
	pos, ok := enc.offsets[tag]
	if !ok {
		return
	}
	if pos < uint32(len(enc.table)) {
		copy(enc.table[pos:pos+4], data)
	} else {
		copy(enc.values[pos-uint32(len(enc.table)):], data)
	}
}

// Copy the encoded IFD into buf at pos.
func (enc *encodedIFD) put(buf []byte, pos uint32) {
	copy(buf[pos:], enc.table)
	copy(buf[pos+uint32(len(enc.table)):], enc.values)
}
