package exif66

import (
	"fmt"
)

type noteSlot struct {
	used bool
	Entry
}

// Maker note made of a single IFD, optionally preceded by a label and an
// embedded TIFF header. Offsets within the IFD are relative to the start
// of the TIFF block, the start of the maker note, or the embedded header.
// The vendor types embed it and supply Load and Save.
type ifdNote struct {
	maker      Manufacturer
	domain     string
	slots      []noteSlot
	order      ByteOrder
	fixedOrder bool   // vendor always uses order; SetByteOrder is ignored.
	offset     uint32 // position of the maker note in the TIFF block.
	label      []byte // bytes before the IFD or embedded header.
	tiffHeader bool   // an embedded TIFF header follows the label.
	relative   bool   // offsets are relative to the start of the maker note.
	names      map[Tag]string
	mem        Allocator
	log        Logger
}

func newIFDNote(maker Manufacturer, names map[Tag]string) *ifdNote {
	return &ifdNote{
		maker:  maker,
		domain: "makernote/" + maker.String(),
		order:  Motorola,
		names:  names,
		mem:    DefaultAllocator,
		log:    LogFunc(func(LogCode, string, string, ...interface{}) {}),
	}
}

// Set the allocator and logger used by the maker note.
func (n *ifdNote) setEnv(mem Allocator, log Logger) {
	n.mem = mem
	n.log = log
}

func (n *ifdNote) Manufacturer() Manufacturer {
	return n.maker
}

func (n *ifdNote) SetOffset(offset uint32) {
	n.offset = offset
}

func (n *ifdNote) ByteOrder() ByteOrder {
	return n.order
}

// Convert the entries to a new byte order unless the order is fixed.
func (n *ifdNote) SetByteOrder(order ByteOrder) {
	if n.fixedOrder || order == n.order {
		return
	}
	for i := range n.slots {
		if n.slots[i].used {
			e := &n.slots[i].Entry
			convertByteOrder(e.Data, e.Format, e.Count, n.order, order)
		}
	}
	n.order = order
}

// Return the used entries in slot order.
func (n *ifdNote) Entries() []Entry {
	entries := make([]Entry, 0, len(n.slots))
	for _, s := range n.slots {
		if s.used {
			entries = append(entries, s.Entry)
		}
	}
	return entries
}

func (n *ifdNote) Count() int {
	count := 0
	for _, s := range n.slots {
		if s.used {
			count++
		}
	}
	return count
}

// Return the tag of the ith entry.
func (n *ifdNote) Tag(i int) (Tag, bool) {
	for _, s := range n.slots {
		if !s.used {
			continue
		}
		if i == 0 {
			return s.Tag, true
		}
		i--
	}
	return 0, false
}

// Return the name of a tag, or "" if it's unknown.
func (n *ifdNote) Name(tag Tag) string {
	return n.names[tag]
}

func (n *ifdNote) tagNames() map[Tag]string {
	return n.names
}

func (n *ifdNote) entry(tag Tag) (*Entry, bool) {
	for i := range n.slots {
		if n.slots[i].used && n.slots[i].Tag == tag {
			return &n.slots[i].Entry, true
		}
	}
	return nil, false
}

// Return the formatted value of a tag.
func (n *ifdNote) Value(tag Tag) (string, bool) {
	e, found := n.entry(tag)
	if !found {
		return "", false
	}
	return e.ValueString(n.order, 0), true
}

// Read the IFD at ifdPos, relative to base, from buf. Entry values are
// copied.
func (n *ifdNote) loadIFD(buf []byte, base, ifdPos uint32) error {
	if uint64(base) > uint64(len(buf)) {
		return fmt.Errorf("%s: base %d beyond end of buffer", n.domain, base)
	}
	raws, _, err := decodeIFD(buf[base:], ifdPos, n.order, n.log, n.domain)
	if err != nil {
		return fmt.Errorf("%s: %w", n.domain, err)
	}
	n.freeSlots()
	for _, r := range raws {
		if _, dup := n.entry(r.Tag); dup {
			n.log.Log(LogCorruptData, n.domain, "duplicate tag 0x%04X", uint16(r.Tag))
			continue
		}
		data := n.mem.Alloc(uint32(len(r.Data)))
		if data == nil {
			n.log.Log(LogNoMemory, n.domain, "can't allocate %d bytes for tag 0x%04X", len(r.Data), uint16(r.Tag))
			continue
		}
		copy(data, r.Data)
		r.Data = data
		n.slots = append(n.slots, noteSlot{true, r.Entry})
	}
	return nil
}

// Return the maker note label, or nil. The slice may be shared.
func labelOf(buf []byte, pos, size, length uint32) []byte {
	if size < length || uint64(pos)+uint64(length) > uint64(len(buf)) {
		return nil
	}
	return buf[pos : pos+length]
}

// Return the end of a maker note of the given size at pos, limited to the
// end of buf.
func noteEnd(buf []byte, pos, size uint32) uint64 {
	end := uint64(pos) + uint64(size)
	if end > uint64(len(buf)) {
		return uint64(len(buf))
	}
	return end
}

// Encode the label, the embedded TIFF header if any, and the IFD.
func (n *ifdNote) saveIFD() ([]byte, error) {
	enc := encodeIFD(n.Entries(), n.order)
	lablen := uint32(len(n.label))
	ifdStart := lablen
	if n.tiffHeader {
		ifdStart += HeaderSize
	}
	out := n.mem.Alloc(ifdStart + enc.size())
	if out == nil {
		return nil, ErrNoMemory
	}
	copy(out, n.label)
	switch {
	case n.tiffHeader:
		PutHeader(out[lablen:], n.order, HeaderSize)
		enc.relocate(HeaderSize)
	case n.relative:
		enc.relocate(ifdStart)
	default:
		enc.relocate(n.offset + ifdStart)
	}
	enc.put(out, ifdStart)
	return out, nil
}

func (n *ifdNote) freeSlots() {
	for _, s := range n.slots {
		if s.used {
			n.mem.Free(s.Data)
		}
	}
	n.slots = nil
}

func (n *ifdNote) Reserve(count int) error {
	if count < 0 {
		return ErrSlotRange
	}
	n.slots = append(n.slots, make([]noteSlot, count)...)
	return nil
}

func (n *ifdNote) checkSlot(slot int) error {
	if slot < 0 || slot >= len(n.slots) {
		return fmt.Errorf("%s: slot %d of %d: %w", n.domain, slot, len(n.slots), ErrSlotRange)
	}
	return nil
}

// Allocate a zero-valued entry.
func (n *ifdNote) newEntry(tag Tag, format Format, components uint32) (Entry, error) {
	if format.Size() == 0 {
		return Entry{}, fmt.Errorf("%s: format %d: %w", n.domain, format, ErrInvalidFormat)
	}
	size := uint64(format.Size()) * uint64(components)
	if size > 0xFFFFFFFF {
		return Entry{}, fmt.Errorf("%s: %d %s components: %w", n.domain, components, format.Name(), ErrInvalidFormat)
	}
	data := n.mem.Alloc(uint32(size))
	if data == nil {
		return Entry{}, ErrNoMemory
	}
	return Entry{tag, format, components, data}, nil
}

func (n *ifdNote) putSlot(slot int, e Entry) {
	if n.slots[slot].used {
		n.mem.Free(n.slots[slot].Data)
	}
	n.slots[slot] = noteSlot{true, e}
}

func (n *ifdNote) AddEntry(tag Tag, format Format, components uint32, slot int) error {
	if err := n.checkSlot(slot); err != nil {
		return err
	}
	e, err := n.newEntry(tag, format, components)
	if err != nil {
		return err
	}
	n.putSlot(slot, e)
	return nil
}

func (n *ifdNote) AddSubtagEntry(tag Tag, format Format, components uint32, sub Subtag, value int64) error {
	if err := n.checkSlot(sub.Slot); err != nil {
		return err
	}
	if !format.IsIntegral() {
		return fmt.Errorf("%s: grouped entry needs an integer format: %w", n.domain, ErrInvalidFormat)
	}
	if uint32(sub.Tag) >= components {
		return fmt.Errorf("%s: subtag %d of %d: %w", n.domain, sub.Tag, components, ErrSubtagRange)
	}
	s := &n.slots[sub.Slot]
	if !s.used || s.Tag != tag || s.Format != format || s.Count != components {
		e, err := n.newEntry(tag, format, components)
		if err != nil {
			return err
		}
		n.putSlot(sub.Slot, e)
	}
	s.PutAnyInteger(value, uint32(sub.Tag), n.order)
	return nil
}

func (n *ifdNote) AddString(tag Tag, format Format, components uint32, str string) error {
	if format != ASCII && format != UNDEFINED && format != BYTE {
		return fmt.Errorf("%s: string entry with format %s: %w", n.domain, format.Name(), ErrInvalidFormat)
	}
	slot := -1
	for i := range n.slots {
		if !n.slots[i].used {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("%s: no free slot for string: %w", n.domain, ErrSlotRange)
	}
	if components == 0 {
		components = uint32(len(str)) + 1
	}
	e, err := n.newEntry(tag, format, components)
	if err != nil {
		return err
	}
	copy(e.Data[:components-1], str)
	n.putSlot(slot, e)
	return nil
}
