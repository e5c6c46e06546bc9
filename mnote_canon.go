package exif66

import (
	"fmt"
	"strings"
)

// Canon maker note tags.
const (
	CanonCameraSettings Tag = 0x0001
	CanonFocalLength    Tag = 0x0002
	CanonShotInfo       Tag = 0x0004
	CanonPanorama       Tag = 0x0005
	CanonImageType      Tag = 0x0006
	CanonFirmware       Tag = 0x0007
	CanonImageNumber    Tag = 0x0008
	CanonOwnerName      Tag = 0x0009
	CanonSerialNumber   Tag = 0x000C
	CanonCustomFuncs    Tag = 0x000F
	CanonModelID        Tag = 0x0010
	CanonColorInfo      Tag = 0x00A0
)

var canonTagNames = map[Tag]string{
	CanonCameraSettings: "CameraSettings",
	CanonFocalLength:    "FocalLength",
	CanonShotInfo:       "ShotInfo",
	CanonPanorama:       "Panorama",
	CanonImageType:      "ImageType",
	CanonFirmware:       "FirmwareVersion",
	CanonImageNumber:    "ImageNumber",
	CanonOwnerName:      "OwnerName",
	CanonSerialNumber:   "SerialNumber",
	CanonCustomFuncs:    "CustomFunctions",
	CanonModelID:        "ModelID",
	CanonColorInfo:      "ColorInformation",
}

// Names of the components of Canon's grouped entries. Component 0 holds
// the size of the array in bytes.
var canonSubtagNames = map[Tag]map[Tag]string{
	CanonCameraSettings: {
		1:  "MacroMode",
		2:  "SelfTimer",
		3:  "Quality",
		4:  "FlashMode",
		5:  "DriveMode",
		7:  "FocusMode",
		10: "ImageSize",
		11: "EasyShootingMode",
		12: "DigitalZoom",
		13: "Contrast",
		14: "Saturation",
		15: "Sharpness",
		16: "ISO",
		17: "MeteringMode",
		18: "FocusRange",
		19: "AFPoint",
		20: "ExposureMode",
		22: "LensType",
		23: "LongFocalLength",
		24: "ShortFocalLength",
		25: "FocalUnits",
	},
	CanonShotInfo: {
		2:  "ISOSpeed",
		4:  "TargetAperture",
		5:  "TargetExposureTime",
		6:  "ExposureCompensation",
		7:  "WhiteBalance",
		9:  "SequenceNumber",
		14: "AFPointUsed",
		15: "FlashBias",
		19: "SubjectDistance",
	},
}

// Canon maker notes have no label. Offsets are relative to the TIFF
// block and the byte order is that of the Exif block.
type canonNote struct {
	*ifdNote
}

func newCanonNote() MakerNoteData {
	return &canonNote{newIFDNote(Canon, canonTagNames)}
}

func (n *canonNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	n.order = order
	n.label = nil
	return n.loadIFD(buf, 0, pos)
}

func (n *canonNote) Save() ([]byte, error) {
	return n.saveIFD()
}

// Grouped entries are formatted with the names of their components.
func (n *canonNote) Value(tag Tag) (string, bool) {
	subtags, grouped := canonSubtagNames[tag]
	e, found := n.entry(tag)
	if !found || !grouped || !e.Format.IsIntegral() || !e.valid() {
		return n.ifdNote.Value(tag)
	}
	var parts []string
	for i := uint32(1); i < e.Count; i++ {
		if name, named := subtags[Tag(i)]; named {
			parts = append(parts, fmt.Sprintf("%s=%d", name, e.AnyInteger(i, n.order)))
		}
	}
	return strings.Join(parts, ", "), true
}
