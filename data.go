package exif66

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Size of a TIFF header.
const HeaderSize = 8

// Header of the Exif APP1 segment in a JPEG file, preceding the TIFF
// block.
var ExifHeader = []byte("Exif\000\000")

var (
	ErrInvalidHeader = errors.New("not a valid TIFF header")
	ErrNoMemory      = errors.New("allocator exhausted")
)

// Check if a byte slice starts with a TIFF header. If so, return the
// byte order and the position of the 0th IFD.
func GetHeader(buf []byte) (bool, ByteOrder, uint32) {
	if len(buf) < HeaderSize {
		return false, Motorola, 0
	}
	order, found := markerOrder(buf)
	if !found {
		return false, order, 0
	}
	if order.Uint16(buf[2:]) != 42 {
		return false, order, 0
	}
	ifdPos := order.Uint32(buf[4:])
	if ifdPos == 0 {
		// TIFF must contain at least one IFD.
		return false, order, 0
	}
	return true, order, ifdPos
}

// Create a TIFF header at the beginning of a byte slice with given byte
// order and position of the 0th IFD. Eight bytes will be used.
func PutHeader(buf []byte, order ByteOrder, ifdPos uint32) {
	copy(buf, orderMarker(order))
	order.PutUint16(buf[2:], 42)
	order.PutUint32(buf[4:], ifdPos)
}

// Return the byte order of an Exif block, which may start with the Exif
// APP1 header, without decoding anything else.
func PeekByteOrder(buf []byte) (ByteOrder, bool) {
	buf = bytes.TrimPrefix(buf, ExifHeader)
	return markerOrder(buf)
}

// Options controlling decoding and encoding. They are bit flags.
type Option uint

const (
	// Drop tags that aren't recorded in the directory where they're found.
	IgnoreUnknownTags Option = 1 << iota
	// Run Fix after loading.
	FollowSpecification
	// Save the maker note's original bytes rather than re-encoding it.
	DontChangeMakerNote
)

var optionNames = map[Option][2]string{
	IgnoreUnknownTags:   {"Ignore unknown tags", "Ignore unknown tags when loading EXIF data."},
	FollowSpecification: {"Follow specification", "Add, correct and remove entries to get EXIF data that follows the specification."},
	DontChangeMakerNote: {"Do not change maker note", "When loading and resaving Exif data, save the maker note unmodified. Be aware that the maker note can get corrupted."},
}

// Return the short name of a single option.
func (o Option) Name() string {
	return optionNames[o][0]
}

// Return a sentence describing a single option.
func (o Option) Description() string {
	return optionNames[o][1]
}

func (o Option) String() string {
	var names []string
	for _, opt := range []Option{IgnoreUnknownTags, FollowSpecification, DontChangeMakerNote} {
		if o&opt != 0 {
			names = append(names, opt.Name())
		}
	}
	return fmt.Sprint(names)
}

// Data is a decoded Exif block: the five directories, an optional
// thumbnail and an optional maker note. It's reference counted: New
// returns it with one reference and it's released when the count drops to
// zero. Using it after release panics. It isn't safe for concurrent use.
type Data struct {
	ifd       [IFDCount]*Directory
	thumbnail []byte
	mnote     MakerNoteData
	order     ByteOrder
	options   Option
	dataType  DataType
	refs      int
	mem       Allocator
	log       Logger
}

// Return an empty tree with no options set, using the heap for memory.
func New() *Data {
	return NewWithAllocator(DefaultAllocator)
}

// Return an empty tree that obtains all buffers from mem.
func NewWithAllocator(mem Allocator) *Data {
	d := &Data{
		order:    Motorola,
		dataType: Compressed,
		refs:     1,
		mem:      mem,
		log:      defaultLogger,
	}
	for i := range d.ifd {
		d.ifd[i] = &Directory{ifd: IFD(i), parent: d}
	}
	return d
}

// Return a tree loaded from an Exif block.
func NewFromData(buf []byte) (*Data, error) {
	d := New()
	if err := d.Load(buf); err != nil {
		d.Free()
		return nil, err
	}
	return d, nil
}

func (d *Data) check() {
	if d.refs <= 0 {
		panic("exif66: use of released Data")
	}
}

// Take an additional reference.
func (d *Data) Ref() {
	d.check()
	d.refs++
}

// Drop a reference, releasing the tree when none remain.
func (d *Data) Unref() {
	d.check()
	d.refs--
	if d.refs == 0 {
		d.clear()
	}
}

// Release the tree regardless of the reference count.
func (d *Data) Free() {
	d.check()
	d.refs = 0
	d.clear()
}

// Empty every directory and drop the thumbnail and maker note.
func (d *Data) clear() {
	for _, dir := range d.ifd {
		dir.clear()
	}
	d.mem.Free(d.thumbnail)
	d.thumbnail = nil
	d.dropMakerNote()
}

func (d *Data) dropMakerNote() {
	if n, ok := d.mnote.(interface{ freeSlots() }); ok {
		n.freeSlots()
	}
	d.mnote = nil
}

// Make md the tree's maker note, sharing the tree's allocator and logger.
func (d *Data) attachMakerNote(md MakerNoteData) {
	d.dropMakerNote()
	if env, ok := md.(interface{ setEnv(Allocator, Logger) }); ok {
		env.setEnv(d.mem, d.log)
	}
	d.mnote = md
}

// Return the directory of the given kind.
func (d *Data) Directory(ifd IFD) *Directory {
	d.check()
	return d.ifd[ifd]
}

// Call fn for each directory in order: 0th, 1st, Exif, GPS,
// Interoperability.
func (d *Data) ForeachContent(fn func(*Directory)) {
	d.check()
	for _, dir := range d.ifd {
		fn(dir)
	}
}

// Return the first entry with the given tag, searching the directories
// in the order of ForeachContent, and the kind of directory where it was
// found. Returns nil and IFDCount if there is none.
func (d *Data) Entry(tag Tag) (*Entry, IFD) {
	d.check()
	for _, dir := range d.ifd {
		if e := dir.Entry(tag); e != nil {
			return e, dir.ifd
		}
	}
	return nil, IFDCount
}

func (d *Data) ByteOrder() ByteOrder {
	d.check()
	return d.order
}

// Change the byte order of the tree, converting every value and the
// maker note unless its vendor fixes the order.
func (d *Data) SetByteOrder(order ByteOrder) {
	d.check()
	if order == d.order {
		return
	}
	for _, dir := range d.ifd {
		for i := range dir.entries {
			e := &dir.entries[i]
			convertByteOrder(e.Data, e.Format, e.Count, d.order, order)
		}
	}
	if d.mnote != nil {
		d.mnote.SetByteOrder(order)
	}
	d.order = order
}

// Return the thumbnail image, or nil.
func (d *Data) Thumbnail() []byte {
	d.check()
	return d.thumbnail
}

// Replace the thumbnail with a copy of thumb, or remove it if thumb is
// empty.
func (d *Data) SetThumbnail(thumb []byte) error {
	d.check()
	var buf []byte
	if len(thumb) > 0 {
		if buf = d.mem.Alloc(uint32(len(thumb))); buf == nil {
			return ErrNoMemory
		}
		copy(buf, thumb)
	}
	d.mem.Free(d.thumbnail)
	d.thumbnail = buf
	return nil
}

// Return the decoded maker note, or nil if there's none or its
// manufacturer wasn't recognized.
func (d *Data) MakerNote() MakerNoteData {
	d.check()
	return d.mnote
}

func (d *Data) SetOption(o Option) {
	d.check()
	d.options |= o
}

func (d *Data) UnsetOption(o Option) {
	d.check()
	d.options &^= o
}

func (d *Data) Options() Option {
	d.check()
	return d.options
}

// Set the kind of image data the block describes, used by Fix.
func (d *Data) SetDataType(dt DataType) {
	d.check()
	d.dataType = dt
}

func (d *Data) DataType() DataType {
	d.check()
	return d.dataType
}

// Set the sink for decoding and encoding anomalies.
func (d *Data) SetLog(lg Logger) {
	d.check()
	d.log = lg
	if env, ok := d.mnote.(interface{ setEnv(Allocator, Logger) }); ok {
		env.setEnv(d.mem, lg)
	}
}

// State of a single Load.
type loader struct {
	d            *Data
	buf          []byte
	seen         map[uint32]bool // positions of IFDs already read.
	loaded       [IFDCount]bool
	thumbPos     *uint32
	thumbLen     *uint32
	makerNotePos uint32
}

// Decode an Exif block, which may start with the Exif APP1 header,
// replacing the tree's contents. Fails only if the TIFF header isn't
// valid, in which case the tree is unchanged. Anything else that can't be
// decoded is reported to the logger and skipped.
func (d *Data) Load(buf []byte) error {
	d.check()
	buf = bytes.TrimPrefix(buf, ExifHeader)
	valid, order, ifdPos := GetHeader(buf)
	if !valid {
		return ErrInvalidHeader
	}
	d.clear()
	d.order = order
	l := &loader{d: d, buf: buf, seen: make(map[uint32]bool)}
	if next := l.loadIFD(IFD0, ifdPos); next != 0 {
		l.loadIFD(IFD1, next)
	}
	l.loadThumbnail()
	l.interpretMakerNote()
	if d.options&FollowSpecification != 0 {
		d.Fix()
	}
	return nil
}

// Decode the IFD at pos into the directory of the given kind, following
// pointers to sub-IFDs. Returns the position of the next IFD.
func (l *loader) loadIFD(ifd IFD, pos uint32) uint32 {
	d := l.d
	domain := "ifd/" + ifd.Name()
	if l.loaded[ifd] {
		d.log.Log(LogCorruptData, domain, "IFD is referenced more than once")
		return 0
	}
	if l.seen[pos] {
		d.log.Log(LogCorruptData, domain, "IFD at %d has already been read", pos)
		return 0
	}
	l.seen[pos] = true
	l.loaded[ifd] = true
	raws, next, err := decodeIFD(l.buf, pos, d.order, d.log, domain)
	if err != nil {
		d.log.Log(LogCorruptData, domain, "%v", err)
		return 0
	}
	dir := d.ifd[ifd]
	for _, r := range raws {
		if target, isPointer := pointerTarget(r.Tag); isPointer {
			if !r.Format.IsIntegral() || r.Count == 0 {
				d.log.Log(LogCorruptData, domain, "pointer tag 0x%04X has format %d", uint16(r.Tag), uint16(r.Format))
				continue
			}
			if sub := uint32(r.AnyInteger(0, d.order)); sub >= HeaderSize {
				l.loadIFD(target, sub)
			} else {
				d.log.Log(LogCorruptData, domain, "pointer tag 0x%04X points into the header", uint16(r.Tag))
			}
			continue
		}
		if isStructural(r.Tag, ifd) {
			if r.Format.IsIntegral() && r.Count > 0 {
				val := uint32(r.AnyInteger(0, d.order))
				if r.Tag == JPEGInterchangeFormat {
					l.thumbPos = &val
				} else {
					l.thumbLen = &val
				}
			}
			continue
		}
		if d.options&IgnoreUnknownTags != 0 && !IsRecorded(r.Tag, ifd) {
			d.log.Log(LogDebug, domain, "ignoring unknown tag 0x%04X", uint16(r.Tag))
			continue
		}
		if dir.Entry(r.Tag) != nil {
			d.log.Log(LogCorruptData, domain, "duplicate tag 0x%04X", uint16(r.Tag))
			continue
		}
		data := d.mem.Alloc(uint32(len(r.Data)))
		if data == nil {
			d.log.Log(LogNoMemory, domain, "can't allocate %d bytes for tag 0x%04X", len(r.Data), uint16(r.Tag))
			continue
		}
		copy(data, r.Data)
		dir.entries = append(dir.entries, Entry{r.Tag, r.Format, r.Count, data})
		if ifd == IFDExif && r.Tag == MakerNote {
			l.makerNotePos = r.pos
		}
	}
	return next
}

// Copy the thumbnail referenced by the 1st IFD.
func (l *loader) loadThumbnail() {
	if l.thumbPos == nil || l.thumbLen == nil || *l.thumbLen == 0 {
		return
	}
	d := l.d
	pos, length := uint64(*l.thumbPos), uint64(*l.thumbLen)
	if pos+length > uint64(len(l.buf)) {
		d.log.Log(LogCorruptData, "thumbnail", "%d bytes at %d are beyond the end of the buffer", length, pos)
		return
	}
	thumb := d.mem.Alloc(uint32(length))
	if thumb == nil {
		d.log.Log(LogNoMemory, "thumbnail", "can't allocate %d bytes", length)
		return
	}
	copy(thumb, l.buf[pos:pos+length])
	d.thumbnail = thumb
}

// Identify and decode the maker note, if any. The entry itself is kept
// in the Exif directory.
func (l *loader) interpretMakerNote() {
	d := l.d
	e := d.ifd[IFDExif].Entry(MakerNote)
	if e == nil {
		return
	}
	var camMake, model string
	if m := d.ifd[IFD0].Entry(Make); m != nil {
		camMake = m.ASCII()
	}
	if m := d.ifd[IFD0].Entry(Model); m != nil {
		model = m.ASCII()
	}
	m, found := IdentifyMakerNote(e.Data, camMake, model)
	if !found {
		d.log.Log(LogDebug, "makernote", "maker note of %q %q not recognized", camMake, model)
		return
	}
	md, _ := NewMakerNoteData(m)
	d.attachMakerNote(md)
	if err := md.Load(l.buf, l.makerNotePos, e.Size(), d.order); err != nil {
		d.log.Log(LogCorruptData, "makernote/"+m.String(), "%v", err)
		d.dropMakerNote()
		return
	}
	md.SetOffset(l.makerNotePos)
}

// Write a description of every directory, the maker note and the
// thumbnail to w. Values are printed up to a given limit (or 0 for no
// limit).
func (d *Data) Dump(w io.Writer, limit uint32) error {
	d.check()
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("Byte order: %s\n", d.order)
	d.ForeachContent(func(dir *Directory) {
		if dir.Len() == 0 {
			return
		}
		printf("\n%s IFD with %d entries:\n", dir.ifd.Name(), dir.Len())
		dir.ForeachEntry(func(e *Entry) {
			name := TagName(e.Tag, dir.ifd)
			if name == "" {
				name = fmt.Sprintf("Unknown 0x%04X", uint16(e.Tag))
			}
			printf("%s %s(%d) %s\n", name, e.Format.Name(), e.Count, e.ValueString(d.order, limit))
		})
	})
	if md := d.mnote; md != nil {
		printf("\n%s maker note with %d entries (%s):\n", md.Manufacturer(), md.Count(), md.ByteOrder())
		for i := 0; i < md.Count(); i++ {
			tag, _ := md.Tag(i)
			name := md.Name(tag)
			if name == "" {
				name = fmt.Sprintf("Unknown 0x%04X", uint16(tag))
			}
			value, _ := md.Value(tag)
			printf("%s %s\n", name, value)
		}
	}
	if len(d.thumbnail) > 0 {
		printf("\nThumbnail: %d bytes\n", len(d.thumbnail))
	} else {
		printf("\nNo thumbnail\n")
	}
	return err
}
