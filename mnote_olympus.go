package exif66

import (
	"bytes"
	"errors"
)

// Olympus maker note tags.
const (
	OlympusSpecialMode      Tag = 0x0200
	OlympusQuality          Tag = 0x0201
	OlympusMacro            Tag = 0x0202
	OlympusBWMode           Tag = 0x0203
	OlympusDigitalZoom      Tag = 0x0204
	OlympusFocalPlaneDiag   Tag = 0x0205
	OlympusLensDistortion   Tag = 0x0206
	OlympusCameraType       Tag = 0x0207
	OlympusPictureInfo      Tag = 0x0208
	OlympusCameraID         Tag = 0x0209
	OlympusPrintIM          Tag = 0x0E00
	OlympusDataDump         Tag = 0x0F00
	OlympusShutterSpeed     Tag = 0x1000
	OlympusISO              Tag = 0x1001
	OlympusAperture         Tag = 0x1002
	OlympusBrightness       Tag = 0x1003
	OlympusFlashMode        Tag = 0x1004
	OlympusExposureBias     Tag = 0x1006
	OlympusFocusMode        Tag = 0x100B
	OlympusFocusDistance    Tag = 0x100C
	OlympusWhiteBalance     Tag = 0x1015
	OlympusSharpness        Tag = 0x100F
	OlympusContrast         Tag = 0x1029
	OlympusCameraSettings   Tag = 0x2020 // IFD in newer models, kept as data.
	OlympusEquipmentSection Tag = 0x2010 // IFD in newer models, kept as data.
)

var olympusTagNames = map[Tag]string{
	OlympusSpecialMode:      "SpecialMode",
	OlympusQuality:          "Quality",
	OlympusMacro:            "Macro",
	OlympusBWMode:           "BWMode",
	OlympusDigitalZoom:      "DigitalZoom",
	OlympusFocalPlaneDiag:   "FocalPlaneDiagonal",
	OlympusLensDistortion:   "LensDistortionParams",
	OlympusCameraType:       "CameraType",
	OlympusPictureInfo:      "PictureInfo",
	OlympusCameraID:         "CameraID",
	OlympusPrintIM:          "PrintIM",
	OlympusDataDump:         "DataDump",
	OlympusShutterSpeed:     "ShutterSpeedValue",
	OlympusISO:              "ISOValue",
	OlympusAperture:         "ApertureValue",
	OlympusBrightness:       "BrightnessValue",
	OlympusFlashMode:        "FlashMode",
	OlympusExposureBias:     "ExposureCompensation",
	OlympusFocusMode:        "FocusMode",
	OlympusFocusDistance:    "FocusDistance",
	OlympusWhiteBalance:     "WhiteBalance",
	OlympusSharpness:        "Sharpness",
	OlympusContrast:         "Contrast",
	OlympusCameraSettings:   "CameraSettings",
	OlympusEquipmentSection: "Equipment",
}

// Olympus maker notes come in two types that are otherwise compatible.
// The older type starts with "OLYMP\0" or another vendor's label and uses
// offsets relative to the TIFF block; the newer type starts with
// "OLYMPUS\0II" or "OLYMPUS\0MM" and uses offsets relative to the start
// of the maker note.
var olympusLabels = []struct {
	prefix   []byte // Identifying prefix of maker note label.
	length   uint32 // Full length of maker note label.
	relative bool   // Offsets relative to the start of the maker note.
}{
	{[]byte("OLYMPUS\000"), 12, true},
	{[]byte("OLYMP\000"), 8, false},
	{[]byte("SANYO\000"), 8, false},
	{[]byte("EPSON\000"), 8, false},
}

func isOlympusNote(data []byte) bool {
	for i := range olympusLabels {
		if bytes.HasPrefix(data, olympusLabels[i].prefix) {
			return true
		}
	}
	return false
}

type olympusNote struct {
	*ifdNote
}

func newOlympusNote() MakerNoteData {
	n := &olympusNote{newIFDNote(Olympus, olympusTagNames)}
	n.label = []byte("OLYMPUS\000MM\003\000")
	n.relative = true
	return n
}

func (n *olympusNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	for _, l := range olympusLabels {
		label := labelOf(buf, pos, size, l.length)
		if label == nil || !bytes.HasPrefix(label, l.prefix) {
			continue
		}
		n.label = append([]byte{}, label...)
		n.relative = l.relative
		if l.relative {
			// The newer type declares its order after the prefix.
			n.order, _ = markerOrder(label[len(l.prefix):])
			return n.loadIFD(buf[:noteEnd(buf, pos, size)], pos, l.length)
		}
		// Byte order varies by camera model, and may differ from Exif order.
		n.order = detectByteOrder(buf[pos+l.length:], order)
		return n.loadIFD(buf, 0, pos+l.length)
	}
	return errors.New("Invalid label for Olympus maker note")
}

func (n *olympusNote) Save() ([]byte, error) {
	return n.saveIFD()
}

func (n *olympusNote) SetByteOrder(order ByteOrder) {
	n.ifdNote.SetByteOrder(order)
	if n.relative && len(n.label) >= 10 {
		copy(n.label[8:10], orderMarker(n.order))
	}
}
