package exif66

import (
	"bytes"
)

// Bring the tree in line with the Exif specification for its data type:
// each directory is fixed, and the 1st IFD is emptied if there's no
// thumbnail. The maker note is never changed. Running it twice has the
// same effect as running it once.
func (d *Data) Fix() {
	d.check()
	d.ForeachContent(func(dir *Directory) {
		dir.Fix()
	})
	if len(d.thumbnail) == 0 && d.ifd[IFD1].Len() > 0 {
		d.log.Log(LogDebug, "fix", "removing %d entries from the 1st IFD, which has no thumbnail", d.ifd[IFD1].Len())
		d.ifd[IFD1].clear()
	}
}

// Fix a directory: repair entry values, remove tags that aren't recorded
// in this kind of directory, and add mandatory tags that are missing with
// default values. Sub-IFD pointers and thumbnail tags are removed since
// they're generated when saving.
func (c *Directory) Fix() {
	d := c.parent
	domain := "fix/" + c.ifd.Name()
	for i := 0; i < len(c.entries); {
		e := &c.entries[i]
		if isStructural(e.Tag, c.ifd) || SupportLevel(e.Tag, c.ifd, d.dataType) == SupportNotRecorded {
			d.log.Log(LogDebug, domain, "removing tag 0x%04X", uint16(e.Tag))
			c.Remove(e.Tag)
			continue
		}
		c.fixEntry(e, domain)
		i++
	}
	for _, info := range tagTable {
		if isStructural(info.tag, c.ifd) || c.Entry(info.tag) != nil {
			continue
		}
		if info.level(c.ifd, d.dataType) != SupportMandatory {
			continue
		}
		e, ok := defaultEntry(info.tag, c.ifd, d.dataType, d.order)
		if !ok {
			d.log.Log(LogDebug, domain, "no default for mandatory tag %s", info.name)
			continue
		}
		data := d.mem.Alloc(uint32(len(e.Data)))
		if data == nil {
			d.log.Log(LogNoMemory, domain, "can't allocate %s", info.name)
			continue
		}
		copy(data, e.Data)
		e.Data = data
		d.log.Log(LogDebug, domain, "adding mandatory tag %s", info.name)
		c.entries = append(c.entries, e)
	}
}

// Replace an entry's data with a copy of val from the allocator.
func (c *Directory) setData(e *Entry, format Format, count uint32, val []byte) bool {
	data := c.parent.mem.Alloc(uint32(len(val)))
	if data == nil {
		c.parent.log.Log(LogNoMemory, "fix/"+c.ifd.Name(), "can't allocate %d bytes", len(val))
		return false
	}
	copy(data, val)
	c.parent.mem.Free(e.Data)
	e.Format = format
	e.Count = count
	e.Data = data
	return true
}

// Repair a single entry's value.
func (c *Directory) fixEntry(e *Entry, domain string) {
	d := c.parent
	if e.Tag == UserComment && c.ifd == IFDExif {
		c.fixUserComment(e, domain)
		return
	}
	switch {
	case e.Format == ASCII:
		if len(e.Data) == 0 || e.Data[len(e.Data)-1] != 0 {
			d.log.Log(LogDebug, domain, "terminating tag 0x%04X with NUL", uint16(e.Tag))
			data := d.mem.Realloc(e.Data, uint32(len(e.Data))+1)
			if data == nil {
				d.log.Log(LogNoMemory, domain, "can't allocate %d bytes", len(e.Data)+1)
				return
			}
			data[len(data)-1] = 0
			e.Data = data
			e.Count = uint32(len(data))
		}
	case e.Format.IsIntegral() && e.Format != SHORT && canonicalFormat(e.Tag, c.ifd) == SHORT:
		for i := uint32(0); i < e.Count; i++ {
			if v := e.AnyInteger(i, d.order); v < 0 || v > 0xFFFF {
				return
			}
		}
		d.log.Log(LogDebug, domain, "converting tag 0x%04X from %s to SHORT", uint16(e.Tag), e.Format.Name())
		val := make([]byte, 2*e.Count)
		for i := uint32(0); i < e.Count; i++ {
			d.order.PutUint16(val[2*i:], uint16(e.AnyInteger(i, d.order)))
		}
		c.setData(e, SHORT, e.Count, val)
	}
}

// A UserComment must be UNDEFINED and start with a character code.
func (c *Directory) fixUserComment(e *Entry, domain string) {
	d := c.parent
	if e.Format == ASCII {
		d.log.Log(LogDebug, domain, "converting ASCII UserComment to UNDEFINED")
		val := append(append([]byte{}, asciiCode...), e.ASCII()...)
		c.setData(e, UNDEFINED, uint32(len(val)), val)
		return
	}
	if e.Format != UNDEFINED {
		return
	}
	if len(e.Data) >= 8 {
		code := e.Data[:8]
		for _, known := range [][]byte{asciiCode, jisCode, unicodeCode, undefinedCode} {
			if bytes.Equal(code, known) {
				return
			}
		}
	}
	d.log.Log(LogDebug, domain, "adding ASCII character code to UserComment")
	val := append(append([]byte{}, asciiCode...), e.Data...)
	c.setData(e, UNDEFINED, uint32(len(val)), val)
}

// Return an entry with the default value of a mandatory tag.
func defaultEntry(tag Tag, ifd IFD, dt DataType, order ByteOrder) (Entry, bool) {
	var format Format
	var value interface{}
	switch tag {
	case XResolution, YResolution:
		format, value = RATIONAL, Rational{72, 1}
	case ResolutionUnit:
		format, value = SHORT, uint16(2)
	case YCbCrPositioning:
		format, value = SHORT, uint16(1)
	case Compression:
		format, value = SHORT, uint16(1)
		if dt == Compressed || ifd == IFD1 {
			value = uint16(6)
		}
	case PlanarConfiguration:
		format, value = SHORT, uint16(1)
		if dt == UncompressedPlanar {
			value = uint16(2)
		}
	case YCbCrSubSampling:
		format, value = SHORT, []uint16{2, 1}
	case BitsPerSample:
		format, value = SHORT, []uint16{8, 8, 8}
	case SamplesPerPixel:
		format, value = SHORT, uint16(3)
	case PhotometricInterpretation:
		format, value = SHORT, uint16(2)
		if dt == UncompressedYCC {
			value = uint16(6)
		}
	case ImageWidth, ImageLength, StripOffsets, RowsPerStrip, StripByteCounts, PixelXDimension, PixelYDimension:
		format, value = LONG, uint32(0)
	case ExifVersion:
		format, value = UNDEFINED, []byte("0220")
	case FlashpixVersion:
		format, value = UNDEFINED, []byte("0100")
	case ColorSpace:
		format, value = SHORT, uint16(1)
	case ComponentsConfiguration:
		format, value = UNDEFINED, []byte{1, 2, 3, 0}
	default:
		return Entry{}, false
	}
	e, err := NewEntry(tag, format, value, order)
	return e, err == nil
}
