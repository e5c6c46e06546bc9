package exif66

import (
	"bytes"
)

// Pentax maker note tags. Casio's type 2 maker notes share some of them.
const (
	PentaxMode            Tag = 0x0001
	PentaxPreviewSize     Tag = 0x0002
	PentaxPreviewLength   Tag = 0x0003
	PentaxPreviewStart    Tag = 0x0004
	PentaxModelID         Tag = 0x0005
	PentaxDate            Tag = 0x0006
	PentaxTime            Tag = 0x0007
	PentaxQuality         Tag = 0x0008
	PentaxImageSize       Tag = 0x0009
	PentaxPictureMode     Tag = 0x000B
	PentaxFlashMode       Tag = 0x000C
	PentaxFocusMode       Tag = 0x000D
	PentaxAFPoint         Tag = 0x000E
	PentaxExposureTime    Tag = 0x0012
	PentaxFNumber         Tag = 0x0013
	PentaxISO             Tag = 0x0014
	PentaxExposureComp    Tag = 0x0016
	PentaxMeteringMode    Tag = 0x0017
	PentaxWhiteBalance    Tag = 0x0019
	PentaxFocalLength     Tag = 0x001D
	PentaxDigitalZoom     Tag = 0x001E
	PentaxSaturation      Tag = 0x001F
	PentaxContrast        Tag = 0x0020
	PentaxSharpness       Tag = 0x0021
	PentaxWorldTimeLoc    Tag = 0x0022
	PentaxHomeTownCity    Tag = 0x0023
	PentaxDestinationCity Tag = 0x0024
	PentaxFrameNumber     Tag = 0x0029
	PentaxImageProcessing Tag = 0x0032
	PentaxPictureMode2    Tag = 0x0033
	PentaxDriveMode       Tag = 0x0034
	PentaxColorSpace      Tag = 0x0037
	PentaxLensType        Tag = 0x003F
	PentaxPrintIM         Tag = 0x0E00
	PentaxCameraInfo      Tag = 0x0215
	PentaxBatteryInfo     Tag = 0x0216
	PentaxHometownDST     Tag = 0x1000
	PentaxDestinationDST  Tag = 0x1001
)

var pentaxTagNames = map[Tag]string{
	PentaxMode:            "Mode",
	PentaxPreviewSize:     "PreviewImageSize",
	PentaxPreviewLength:   "PreviewImageLength",
	PentaxPreviewStart:    "PreviewImageStart",
	PentaxModelID:         "ModelID",
	PentaxDate:            "Date",
	PentaxTime:            "Time",
	PentaxQuality:         "Quality",
	PentaxImageSize:       "ImageSize",
	PentaxPictureMode:     "PictureMode",
	PentaxFlashMode:       "FlashMode",
	PentaxFocusMode:       "FocusMode",
	PentaxAFPoint:         "AFPointSelected",
	PentaxExposureTime:    "ExposureTime",
	PentaxFNumber:         "FNumber",
	PentaxISO:             "ISO",
	PentaxExposureComp:    "ExposureCompensation",
	PentaxMeteringMode:    "MeteringMode",
	PentaxWhiteBalance:    "WhiteBalance",
	PentaxFocalLength:     "FocalLength",
	PentaxDigitalZoom:     "DigitalZoom",
	PentaxSaturation:      "Saturation",
	PentaxContrast:        "Contrast",
	PentaxSharpness:       "Sharpness",
	PentaxWorldTimeLoc:    "WorldTimeLocation",
	PentaxHomeTownCity:    "HometownCity",
	PentaxDestinationCity: "DestinationCity",
	PentaxFrameNumber:     "FrameNumber",
	PentaxImageProcessing: "ImageProcessing",
	PentaxPictureMode2:    "PictureMode2",
	PentaxDriveMode:       "DriveMode",
	PentaxColorSpace:      "ColorSpace",
	PentaxLensType:        "LensType",
	PentaxPrintIM:         "PrintIM",
	PentaxCameraInfo:      "CameraInfo",
	PentaxBatteryInfo:     "BatteryInfo",
	PentaxHometownDST:     "HometownDST",
	PentaxDestinationDST:  "DestinationDST",
}

var pentaxLabel = []byte("AOC\000")

// Pentax maker notes of newer cameras start with "AOC\0" and a two byte
// byte order marker, which is "II", "MM" or two spaces or NULs if the
// Exif block's order applies. Older cameras have no label; they are
// recognized by the Make tag. Offsets are relative to the TIFF block.
func isPentaxNote(data []byte) bool {
	return bytes.HasPrefix(data, pentaxLabel)
}

type pentaxNote struct {
	*ifdNote
	marker bool // The label's order marker names the byte order.
}

func newPentaxNote() MakerNoteData {
	n := &pentaxNote{ifdNote: newIFDNote(Pentax, pentaxTagNames), marker: true}
	n.label = []byte("AOC\000MM")
	return n
}

func (n *pentaxNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	label := labelOf(buf, pos, size, 6)
	if label == nil || !bytes.HasPrefix(label, pentaxLabel) {
		n.label = nil
		n.marker = false
		n.order = detectByteOrder(buf[pos:], order)
		return n.loadIFD(buf, 0, pos)
	}
	n.label = append([]byte{}, label...)
	n.order, n.marker = markerOrder(label[4:])
	if !n.marker {
		n.order = order
	}
	return n.loadIFD(buf, 0, pos+6)
}

func (n *pentaxNote) Save() ([]byte, error) {
	return n.saveIFD()
}

func (n *pentaxNote) SetByteOrder(order ByteOrder) {
	n.ifdNote.SetByteOrder(order)
	if n.marker && len(n.label) == 6 {
		copy(n.label[4:], orderMarker(n.order))
	}
}
