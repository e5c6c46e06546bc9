package exif66

import (
	"bytes"
	"errors"
)

// Nikon maker note tags, type 3 numbering. Type 1 notes use a smaller
// set with different meanings and are decoded with the same names.
const (
	NikonVersion         Tag = 0x0001
	NikonISOSpeed        Tag = 0x0002
	NikonColorMode       Tag = 0x0003
	NikonQuality         Tag = 0x0004
	NikonWhiteBalance    Tag = 0x0005
	NikonSharpening      Tag = 0x0006
	NikonFocusMode       Tag = 0x0007
	NikonFlashSetting    Tag = 0x0008
	NikonFlashType       Tag = 0x0009
	NikonWBFineTune      Tag = 0x000B
	NikonISOSelection    Tag = 0x000F
	NikonPreviewIFD      Tag = 0x0011 // Kept as data.
	NikonExposureDiff    Tag = 0x000E
	NikonImageBoundary   Tag = 0x0016
	NikonImageAdjustment Tag = 0x0080
	NikonToneComp        Tag = 0x0081
	NikonAuxiliaryLens   Tag = 0x0082
	NikonLensType        Tag = 0x0083
	NikonLens            Tag = 0x0084
	NikonFocusDistance   Tag = 0x0085
	NikonDigitalZoom     Tag = 0x0086
	NikonFlashMode       Tag = 0x0087
	NikonAFInfo          Tag = 0x0088
	NikonShootingMode    Tag = 0x0089
	NikonLensFStops      Tag = 0x008B
	NikonContrastCurve   Tag = 0x008C
	NikonColorHue        Tag = 0x008D
	NikonSceneMode       Tag = 0x008F
	NikonLightSource     Tag = 0x0090
	NikonShotInfo        Tag = 0x0091
	NikonHueAdjustment   Tag = 0x0092
	NikonNoiseReduction  Tag = 0x0095
	NikonColorBalance    Tag = 0x0097
	NikonLensData        Tag = 0x0098
	NikonSerialNumber    Tag = 0x00A0
	NikonShutterCount    Tag = 0x00A7
	NikonImageOptimize   Tag = 0x00A9
	NikonSaturation      Tag = 0x00AA
	NikonVariProgram     Tag = 0x00AB
	NikonPrintIM         Tag = 0x0E00
	NikonCaptureData     Tag = 0x0E01
	NikonCaptureVersion  Tag = 0x0E09
	NikonCaptureOffsets  Tag = 0x0E0E
)

var nikonTagNames = map[Tag]string{
	NikonVersion:         "MakerNoteVersion",
	NikonISOSpeed:        "ISO",
	NikonColorMode:       "ColorMode",
	NikonQuality:         "Quality",
	NikonWhiteBalance:    "WhiteBalance",
	NikonSharpening:      "Sharpness",
	NikonFocusMode:       "FocusMode",
	NikonFlashSetting:    "FlashSetting",
	NikonFlashType:       "FlashType",
	NikonWBFineTune:      "WhiteBalanceFineTune",
	NikonISOSelection:    "ISOSelection",
	NikonPreviewIFD:      "PreviewIFD",
	NikonExposureDiff:    "ExposureDifference",
	NikonImageBoundary:   "ImageBoundary",
	NikonImageAdjustment: "ImageAdjustment",
	NikonToneComp:        "ToneComp",
	NikonAuxiliaryLens:   "AuxiliaryLens",
	NikonLensType:        "LensType",
	NikonLens:            "Lens",
	NikonFocusDistance:   "ManualFocusDistance",
	NikonDigitalZoom:     "DigitalZoom",
	NikonFlashMode:       "FlashMode",
	NikonAFInfo:          "AFInfo",
	NikonShootingMode:    "ShootingMode",
	NikonLensFStops:      "LensFStops",
	NikonContrastCurve:   "ContrastCurve",
	NikonColorHue:        "ColorHue",
	NikonSceneMode:       "SceneMode",
	NikonLightSource:     "LightSource",
	NikonShotInfo:        "ShotInfo",
	NikonHueAdjustment:   "HueAdjustment",
	NikonNoiseReduction:  "NoiseReduction",
	NikonColorBalance:    "ColorBalance",
	NikonLensData:        "LensData",
	NikonSerialNumber:    "SerialNumber",
	NikonShutterCount:    "ShutterCount",
	NikonImageOptimize:   "ImageOptimization",
	NikonSaturation:      "Saturation",
	NikonVariProgram:     "VariProgram",
	NikonPrintIM:         "PrintIM",
	NikonCaptureData:     "NikonCaptureData",
	NikonCaptureVersion:  "NikonCaptureVersion",
	NikonCaptureOffsets:  "NikonCaptureOffsets",
}

// Nikon maker notes have three layouts:
//   - type 1 starts with "Nikon\0\1\0" and has an IFD with offsets
//     relative to the TIFF block.
//   - type 3 starts with "Nikon\0\2" padded to 10 bytes, followed by a
//     TIFF header; offsets are relative to that header, which also gives
//     the byte order.
//   - older cameras write an IFD with no label, recognized by the Make
//     tag, with offsets relative to the TIFF block.
var (
	nikonPrefix   = []byte("Nikon\000")
	nikonV1Prefix = []byte("Nikon\000\001")
	nikonV1Length = uint32(8)
	nikonV2Length = uint32(10)
)

func isNikonNote(data []byte) bool {
	return bytes.HasPrefix(data, nikonPrefix)
}

type nikonNote struct {
	*ifdNote
}

func newNikonNote() MakerNoteData {
	n := &nikonNote{newIFDNote(Nikon, nikonTagNames)}
	n.label = []byte("Nikon\000\002\020\000\000")
	n.tiffHeader = true
	return n
}

func (n *nikonNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	end := uint64(pos) + uint64(size)
	if end > uint64(len(buf)) {
		return errors.New("Nikon maker note extends beyond the end of the buffer")
	}
	note := buf[pos:end]
	switch {
	case bytes.HasPrefix(note, nikonV1Prefix) && size >= nikonV1Length:
		n.label = append([]byte{}, note[:nikonV1Length]...)
		n.tiffHeader = false
		n.order = order
		return n.loadIFD(buf, 0, pos+nikonV1Length)
	case bytes.HasPrefix(note, nikonPrefix):
		if size < nikonV2Length {
			return errors.New("Nikon maker note label is truncated")
		}
		embedded := note[nikonV2Length:]
		valid, embeddedOrder, ifdPos := GetHeader(embedded)
		if !valid {
			return errors.New("Nikon maker note has no valid TIFF header")
		}
		n.label = append([]byte{}, note[:nikonV2Length]...)
		n.tiffHeader = true
		n.order = embeddedOrder
		return n.loadIFD(embedded, 0, ifdPos)
	}
	n.label = nil
	n.tiffHeader = false
	n.order = detectByteOrder(note, order)
	return n.loadIFD(buf, 0, pos)
}

func (n *nikonNote) Save() ([]byte, error) {
	return n.saveIFD()
}
