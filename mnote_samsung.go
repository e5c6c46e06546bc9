package exif66

// Samsung type 2 maker note tags.
const (
	SamsungVersion         Tag = 0x0001
	SamsungDeviceType      Tag = 0x0002
	SamsungModelID         Tag = 0x0003
	SamsungPictureWizard   Tag = 0x0021
	SamsungLocalLocation   Tag = 0x0030
	SamsungPreviewIFD      Tag = 0x0035 // Kept as data.
	SamsungSerialNumber    Tag = 0x0043
	SamsungLensType        Tag = 0xA003
	SamsungLensFirmware    Tag = 0xA004
	SamsungSensorAreas     Tag = 0xA010
	SamsungColorSpace      Tag = 0xA011
	SamsungSmartRange      Tag = 0xA012
	SamsungExposureComp    Tag = 0xA013
	SamsungISO             Tag = 0xA014
	SamsungExposureTime    Tag = 0xA018
	SamsungFNumber         Tag = 0xA019
	SamsungFocalLength35mm Tag = 0xA01A
	SamsungEncryptionKey   Tag = 0xA020
	SamsungWBRGGBLevels    Tag = 0xA021
)

var samsungTagNames = map[Tag]string{
	SamsungVersion:         "MakerNoteVersion",
	SamsungDeviceType:      "DeviceType",
	SamsungModelID:         "SamsungModelID",
	SamsungPictureWizard:   "PictureWizard",
	SamsungLocalLocation:   "LocalLocationName",
	SamsungPreviewIFD:      "PreviewIFD",
	SamsungSerialNumber:    "SerialNumber",
	SamsungLensType:        "LensType",
	SamsungLensFirmware:    "LensFirmware",
	SamsungSensorAreas:     "SensorAreas",
	SamsungColorSpace:      "ColorSpace",
	SamsungSmartRange:      "SmartRange",
	SamsungExposureComp:    "ExposureCompensation",
	SamsungISO:             "ISO",
	SamsungExposureTime:    "ExposureTime",
	SamsungFNumber:         "FNumber",
	SamsungFocalLength35mm: "FocalLengthIn35mmFormat",
	SamsungEncryptionKey:   "EncryptionKey",
	SamsungWBRGGBLevels:    "WB_RGGBLevelsUncorrected",
}

// Samsung maker notes have no label and are recognized by the Make tag.
// They use the Exif block's byte order, with offsets relative to the
// start of the maker note.
type samsungNote struct {
	*ifdNote
}

func newSamsungNote() MakerNoteData {
	n := &samsungNote{newIFDNote(Samsung, samsungTagNames)}
	n.relative = true
	return n
}

func (n *samsungNote) Load(buf []byte, pos, size uint32, order ByteOrder) error {
	n.order = order
	n.label = nil
	return n.loadIFD(buf[:noteEnd(buf, pos, size)], pos, 0)
}

func (n *samsungNote) Save() ([]byte, error) {
	return n.saveIFD()
}
