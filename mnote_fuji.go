package exif66

import (
	"bytes"
	"errors"
)

// Fuji maker note tags.
const (
	FujiVersion          Tag = 0x0000
	FujiSerialNumber     Tag = 0x0010
	FujiQuality          Tag = 0x1000
	FujiSharpness        Tag = 0x1001
	FujiWhiteBalance     Tag = 0x1002
	FujiSaturation       Tag = 0x1003
	FujiContrast         Tag = 0x1004
	FujiColorTemperature Tag = 0x1005
	FujiFlashMode        Tag = 0x1010
	FujiFlashStrength    Tag = 0x1011
	FujiMacro            Tag = 0x1020
	FujiFocusMode        Tag = 0x1021
	FujiSlowSync         Tag = 0x1030
	FujiPictureMode      Tag = 0x1031
	FujiContTake         Tag = 0x1100
	FujiSequenceNumber   Tag = 0x1101
	FujiBlurWarning      Tag = 0x1300
	FujiFocusWarning     Tag = 0x1301
	FujiExposureWarning  Tag = 0x1302
	FujiDynamicRange     Tag = 0x1400
	FujiFilmMode         Tag = 0x1401
	FujiDynamicRangeSet  Tag = 0x1402
)

var fujiTagNames = map[Tag]string{
	FujiVersion:          "Version",
	FujiSerialNumber:     "InternalSerialNumber",
	FujiQuality:          "Quality",
	FujiSharpness:        "Sharpness",
	FujiWhiteBalance:     "WhiteBalance",
	FujiSaturation:       "Saturation",
	FujiContrast:         "Contrast",
	FujiColorTemperature: "ColorTemperature",
	FujiFlashMode:        "FlashMode",
	FujiFlashStrength:    "FlashExposureComp",
	FujiMacro:            "Macro",
	FujiFocusMode:        "FocusMode",
	FujiSlowSync:         "SlowSync",
	FujiPictureMode:      "PictureMode",
	FujiContTake:         "ContinuousBracketing",
	FujiSequenceNumber:   "SequenceNumber",
	FujiBlurWarning:      "BlurWarning",
	FujiFocusWarning:     "FocusWarning",
	FujiExposureWarning:  "ExposureWarning",
	FujiDynamicRange:     "DynamicRange",
	FujiFilmMode:         "FilmMode",
	FujiDynamicRangeSet:  "DynamicRangeSetting",
}

// Fuji maker notes start with "FUJIFILM" (or "GENERALE" for some GE
// cameras) and a little-endian offset of the IFD from the start of the
// maker note. They are always little endian and offsets in the IFD are
// relative to the start of the maker note.
var fujiLabels = [][]byte{[]byte("FUJIFILM"), []byte("GENERALE")}

const fujiLabelLength = 12

func isFujiNote(data []byte) bool {
	for _, l := range fujiLabels {
		if bytes.HasPrefix(data, l) {
			return true
		}
	}
	return false
}

type fujiNote struct {
	*ifdNote
}

func newFujiNote() MakerNoteData {
	n := &fujiNote{newIFDNote(Fuji, fujiTagNames)}
	n.order = Intel
	n.fixedOrder = true
	n.relative = true
	n.label = make([]byte, fujiLabelLength)
	copy(n.label, fujiLabels[0])
	Intel.PutUint32(n.label[8:], fujiLabelLength)
	return n
}

func (n *fujiNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	label := labelOf(buf, pos, size, fujiLabelLength)
	if label == nil || !isFujiNote(label) {
		return errors.New("Invalid label for Fuji maker note")
	}
	ifdPos := Intel.Uint32(label[8:])
	if ifdPos < fujiLabelLength || ifdPos >= size {
		return errors.New("Fuji maker note IFD offset is out of range")
	}
	// Anything between the label and the IFD is dropped; Save writes the
	// IFD straight after the label.
	n.label = append([]byte{}, label...)
	Intel.PutUint32(n.label[8:], fujiLabelLength)
	return n.loadIFD(buf[:noteEnd(buf, pos, size)], pos, ifdPos)
}

func (n *fujiNote) Save() ([]byte, error) {
	return n.saveIFD()
}
