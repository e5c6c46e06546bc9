package exif66

import (
	"bytes"
)

// Casio type 1 maker note tags.
const (
	CasioRecordingMode  Tag = 0x0001
	CasioQuality        Tag = 0x0002
	CasioFocusingMode   Tag = 0x0003
	CasioFlashMode      Tag = 0x0004
	CasioFlashIntensity Tag = 0x0005
	CasioObjectDistance Tag = 0x0006
	CasioWhiteBalance   Tag = 0x0007
	CasioDigitalZoom    Tag = 0x000A
	CasioSharpness      Tag = 0x000B
	CasioContrast       Tag = 0x000C
	CasioSaturation     Tag = 0x000D
	CasioCCDSensitivity Tag = 0x0014
)

// Casio type 2 maker note tags.
const (
	Casio2PreviewSize       Tag = 0x0002
	Casio2PreviewLength     Tag = 0x0003
	Casio2PreviewStart      Tag = 0x0004
	Casio2Quality           Tag = 0x0008
	Casio2ImageSize         Tag = 0x0009
	Casio2FocusMode         Tag = 0x000D
	Casio2ISO               Tag = 0x0014
	Casio2WhiteBalance      Tag = 0x0019
	Casio2FocalLength       Tag = 0x001D
	Casio2Saturation        Tag = 0x001F
	Casio2Contrast          Tag = 0x0020
	Casio2Sharpness         Tag = 0x0021
	Casio2PrintIM           Tag = 0x0E00
	Casio2FirmwareDate      Tag = 0x2001
	Casio2WhiteBalanceBias  Tag = 0x2011
	Casio2ObjectDistance    Tag = 0x2022
	Casio2FlashDistance     Tag = 0x2034
	Casio2RecordMode        Tag = 0x3000
	Casio2SelfTimer         Tag = 0x3001
	Casio2Quality2          Tag = 0x3002
	Casio2FocusMode2        Tag = 0x3003
	Casio2TimeZone          Tag = 0x3006
	Casio2BestShotMode      Tag = 0x3007
	Casio2CCDISOSensitivity Tag = 0x3014
	Casio2ColorMode         Tag = 0x3015
	Casio2Enhancement       Tag = 0x3016
	Casio2Filter            Tag = 0x3017
)

var casioTagNames = map[Tag]string{
	CasioRecordingMode:  "RecordingMode",
	CasioQuality:        "Quality",
	CasioFocusingMode:   "FocusingMode",
	CasioFlashMode:      "FlashMode",
	CasioFlashIntensity: "FlashIntensity",
	CasioObjectDistance: "ObjectDistance",
	CasioWhiteBalance:   "WhiteBalance",
	CasioDigitalZoom:    "DigitalZoom",
	CasioSharpness:      "Sharpness",
	CasioContrast:       "Contrast",
	CasioSaturation:     "Saturation",
	CasioCCDSensitivity: "CCDSensitivity",
}

var casio2TagNames = map[Tag]string{
	Casio2PreviewSize:       "PreviewImageSize",
	Casio2PreviewLength:     "PreviewImageLength",
	Casio2PreviewStart:      "PreviewImageStart",
	Casio2Quality:           "QualityMode",
	Casio2ImageSize:         "ImageSize",
	Casio2FocusMode:         "FocusMode",
	Casio2ISO:               "ISO",
	Casio2WhiteBalance:      "WhiteBalance",
	Casio2FocalLength:       "FocalLength",
	Casio2Saturation:        "Saturation",
	Casio2Contrast:          "Contrast",
	Casio2Sharpness:         "Sharpness",
	Casio2PrintIM:           "PrintIM",
	Casio2FirmwareDate:      "FirmwareDate",
	Casio2WhiteBalanceBias:  "WhiteBalanceBias",
	Casio2ObjectDistance:    "ObjectDistance",
	Casio2FlashDistance:     "FlashDistance",
	Casio2RecordMode:        "RecordMode",
	Casio2SelfTimer:         "SelfTimer",
	Casio2Quality2:          "Quality",
	Casio2FocusMode2:        "FocusMode2",
	Casio2TimeZone:          "TimeZone",
	Casio2BestShotMode:      "BestShotMode",
	Casio2CCDISOSensitivity: "CCDISOSensitivity",
	Casio2ColorMode:         "ColorMode",
	Casio2Enhancement:       "Enhancement",
	Casio2Filter:            "Filter",
}

// Type 2 Casio maker notes start with "QVC\0\0\0" and are always big
// endian. Type 1 notes have no label and use the Exif block's order.
// Offsets are relative to the TIFF block in both.
var casioLabel = []byte("QVC\000\000\000")

func isCasioNote(data []byte) bool {
	return bytes.HasPrefix(data, casioLabel)
}

type casioNote struct {
	*ifdNote
}

func newCasioNote() MakerNoteData {
	n := &casioNote{newIFDNote(Casio, casio2TagNames)}
	n.label = append([]byte{}, casioLabel...)
	n.fixedOrder = true
	return n
}

func (n *casioNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	label := labelOf(buf, pos, size, uint32(len(casioLabel)))
	if label != nil && bytes.Equal(label, casioLabel) {
		n.label = append([]byte{}, label...)
		n.names = casio2TagNames
		n.order = Motorola
		n.fixedOrder = true
		return n.loadIFD(buf, 0, pos+uint32(len(casioLabel)))
	}
	n.label = nil
	n.names = casioTagNames
	n.order = order
	n.fixedOrder = false
	return n.loadIFD(buf, 0, pos)
}

func (n *casioNote) Save() ([]byte, error) {
	return n.saveIFD()
}
