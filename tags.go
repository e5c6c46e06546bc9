package exif66

type Tag uint16

// Tags that may be found in the 0th and 1st IFDs. Tags are from TIFF 6.0
// and Exif 2.3 if not otherwise specified.
const (
	NewSubfileType              Tag = 0x00FE
	ImageWidth                  Tag = 0x0100
	ImageLength                 Tag = 0x0101
	BitsPerSample               Tag = 0x0102
	Compression                 Tag = 0x0103
	PhotometricInterpretation   Tag = 0x0106
	ImageDescription            Tag = 0x010E
	Make                        Tag = 0x010F
	Model                       Tag = 0x0110
	StripOffsets                Tag = 0x0111
	Orientation                 Tag = 0x0112
	SamplesPerPixel             Tag = 0x0115
	RowsPerStrip                Tag = 0x0116
	StripByteCounts             Tag = 0x0117
	XResolution                 Tag = 0x011A
	YResolution                 Tag = 0x011B
	PlanarConfiguration         Tag = 0x011C
	ResolutionUnit              Tag = 0x0128
	TransferFunction            Tag = 0x012D
	Software                    Tag = 0x0131
	DateTime                    Tag = 0x0132
	Artist                      Tag = 0x013B
	WhitePoint                  Tag = 0x013E
	PrimaryChromaticities       Tag = 0x013F
	JPEGInterchangeFormat       Tag = 0x0201
	JPEGInterchangeFormatLength Tag = 0x0202
	YCbCrCoefficients           Tag = 0x0211
	YCbCrSubSampling            Tag = 0x0212
	YCbCrPositioning            Tag = 0x0213
	ReferenceBlackWhite         Tag = 0x0214
	XMP                         Tag = 0x02BC // XMP part 3
	Rating                      Tag = 0x4746 // Microsoft
	Copyright                   Tag = 0x8298
	ExifIFDPointer              Tag = 0x8769
	GPSInfoIFDPointer           Tag = 0x8825
	XPTitle                     Tag = 0x9C9B // Microsoft
	XPComment                   Tag = 0x9C9C // Microsoft
	XPAuthor                    Tag = 0x9C9D // Microsoft
	XPKeywords                  Tag = 0x9C9E // Microsoft
	XPSubject                   Tag = 0x9C9F // Microsoft
	PrintImageMatching          Tag = 0xC4A5 // Epson PIM
	Padding                     Tag = 0xEA1C // Microsoft
)

// Tags that may be found in the Exif IFD.
const (
	ExposureTime             Tag = 0x829A
	FNumber                  Tag = 0x829D
	ExposureProgram          Tag = 0x8822
	SpectralSensitivity      Tag = 0x8824
	ISOSpeedRatings          Tag = 0x8827
	OECF                     Tag = 0x8828
	SensitivityType          Tag = 0x8830
	ExifVersion              Tag = 0x9000
	DateTimeOriginal         Tag = 0x9003
	DateTimeDigitized        Tag = 0x9004
	OffsetTime               Tag = 0x9010 // Exif 2.31
	OffsetTimeOriginal       Tag = 0x9011 // Exif 2.31
	OffsetTimeDigitized      Tag = 0x9012 // Exif 2.31
	ComponentsConfiguration  Tag = 0x9101
	CompressedBitsPerPixel   Tag = 0x9102
	ShutterSpeedValue        Tag = 0x9201
	ApertureValue            Tag = 0x9202
	BrightnessValue          Tag = 0x9203
	ExposureBiasValue        Tag = 0x9204
	MaxApertureValue         Tag = 0x9205
	SubjectDistance          Tag = 0x9206
	MeteringMode             Tag = 0x9207
	LightSource              Tag = 0x9208
	Flash                    Tag = 0x9209
	FocalLength              Tag = 0x920A
	SubjectArea              Tag = 0x9214
	MakerNote                Tag = 0x927C
	UserComment              Tag = 0x9286
	SubSecTime               Tag = 0x9290
	SubSecTimeOriginal       Tag = 0x9291
	SubSecTimeDigitized      Tag = 0x9292
	FlashpixVersion          Tag = 0xA000
	ColorSpace               Tag = 0xA001
	PixelXDimension          Tag = 0xA002
	PixelYDimension          Tag = 0xA003
	RelatedSoundFile         Tag = 0xA004
	InteropIFDPointer        Tag = 0xA005
	FlashEnergy              Tag = 0xA20B
	SpatialFrequencyResponse Tag = 0xA20C
	FocalPlaneXResolution    Tag = 0xA20E
	FocalPlaneYResolution    Tag = 0xA20F
	FocalPlaneResolutionUnit Tag = 0xA210
	SubjectLocation          Tag = 0xA214
	ExposureIndex            Tag = 0xA215
	SensingMethod            Tag = 0xA217
	FileSource               Tag = 0xA300
	SceneType                Tag = 0xA301
	CFAPattern               Tag = 0xA302
	CustomRendered           Tag = 0xA401
	ExposureMode             Tag = 0xA402
	WhiteBalance             Tag = 0xA403
	DigitalZoomRatio         Tag = 0xA404
	FocalLengthIn35mmFilm    Tag = 0xA405
	SceneCaptureType         Tag = 0xA406
	GainControl              Tag = 0xA407
	Contrast                 Tag = 0xA408
	Saturation               Tag = 0xA409
	Sharpness                Tag = 0xA40A
	DeviceSettingDescription Tag = 0xA40B
	SubjectDistanceRange     Tag = 0xA40C
	ImageUniqueID            Tag = 0xA420
	CameraOwnerName          Tag = 0xA430
	BodySerialNumber         Tag = 0xA431
	LensSpecification        Tag = 0xA432
	LensMake                 Tag = 0xA433
	LensModel                Tag = 0xA434
	LensSerialNumber         Tag = 0xA435
	Gamma                    Tag = 0xA500
)

// Tags that may be found in the GPS IFD.
const (
	GPSVersionID         Tag = 0x0000
	GPSLatitudeRef       Tag = 0x0001
	GPSLatitude          Tag = 0x0002
	GPSLongitudeRef      Tag = 0x0003
	GPSLongitude         Tag = 0x0004
	GPSAltitudeRef       Tag = 0x0005
	GPSAltitude          Tag = 0x0006
	GPSTimeStamp         Tag = 0x0007
	GPSSatellites        Tag = 0x0008
	GPSStatus            Tag = 0x0009
	GPSMeasureMode       Tag = 0x000A
	GPSDOP               Tag = 0x000B
	GPSSpeedRef          Tag = 0x000C
	GPSSpeed             Tag = 0x000D
	GPSTrackRef          Tag = 0x000E
	GPSTrack             Tag = 0x000F
	GPSImgDirectionRef   Tag = 0x0010
	GPSImgDirection      Tag = 0x0011
	GPSMapDatum          Tag = 0x0012
	GPSDestLatitudeRef   Tag = 0x0013
	GPSDestLatitude      Tag = 0x0014
	GPSDestLongitudeRef  Tag = 0x0015
	GPSDestLongitude     Tag = 0x0016
	GPSDestBearingRef    Tag = 0x0017
	GPSDestBearing       Tag = 0x0018
	GPSDestDistanceRef   Tag = 0x0019
	GPSDestDistance      Tag = 0x001A
	GPSProcessingMethod  Tag = 0x001B
	GPSAreaInformation   Tag = 0x001C
	GPSDateStamp         Tag = 0x001D
	GPSDifferential      Tag = 0x001E
	GPSHPositioningError Tag = 0x001F
)

// Tags that may be found in the Interoperability IFD. The first two share
// their numbers with GPS tags.
const (
	InteroperabilityIndex   Tag = 0x0001
	InteroperabilityVersion Tag = 0x0002
	RelatedImageFileFormat  Tag = 0x1000
	RelatedImageWidth       Tag = 0x1001
	RelatedImageLength      Tag = 0x1002
)

// Kind of IFD within an Exif block.
type IFD int

const (
	IFD0 IFD = iota
	IFD1
	IFDExif
	IFDGPS
	IFDInterop
	IFDCount
)

var ifdNames = [IFDCount]string{"0", "1", "EXIF", "GPS", "Interoperability"}

// Return the name of an IFD kind.
func (ifd IFD) Name() string {
	if ifd >= 0 && ifd < IFDCount {
		return ifdNames[ifd]
	}
	return "Unknown"
}

// Hint about the kind of image data described by the block. Mandatory
// and permitted tags depend on it.
type DataType int

const (
	UncompressedChunky DataType = iota
	UncompressedPlanar
	UncompressedYCC
	Compressed
	DataTypeUnknown
)

const dataTypeCount = 4

// How a tag is supported in an IFD.
type Support uint8

const (
	SupportUnknown Support = iota
	SupportNotRecorded
	SupportMandatory
	SupportOptional
)

func (s Support) String() string {
	switch s {
	case SupportNotRecorded:
		return "not recorded"
	case SupportMandatory:
		return "mandatory"
	case SupportOptional:
		return "optional"
	}
	return "unknown"
}

// Support levels of a tag, one string per IFD kind with one character
// per data type: N (not recorded), M (mandatory), O (optional).
type supportTable [IFDCount]string

const nnnn = "NNNN"

func esl(ifd0, ifd1, exif, gps, interop string) supportTable {
	return supportTable{ifd0, ifd1, exif, gps, interop}
}

var (
	eslIFD01   = esl("OOOO", "OOOO", nnnn, nnnn, nnnn)
	eslIFD0    = esl("OOOO", nnnn, nnnn, nnnn, nnnn)
	eslExif    = esl(nnnn, nnnn, "OOOO", nnnn, nnnn)
	eslGPS     = esl(nnnn, nnnn, nnnn, "OOOO", nnnn)
	eslInterop = esl(nnnn, nnnn, nnnn, nnnn, "OOOO")
	eslUncomp  = esl("MMMN", "MMMN", nnnn, nnnn, nnnn)
)

type tagInfo struct {
	tag     Tag
	name    string
	format  Format // Canonical format, or 0 if it varies.
	support supportTable
}

func (info *tagInfo) level(ifd IFD, dt DataType) Support {
	levels := info.support[ifd]
	if levels == "" {
		levels = nnnn
	}
	if dt >= 0 && dt < dataTypeCount {
		return supportOf(levels[dt])
	}
	s := supportOf(levels[0])
	for i := 1; i < dataTypeCount; i++ {
		if supportOf(levels[i]) != s {
			return SupportUnknown
		}
	}
	return s
}

func supportOf(c byte) Support {
	switch c {
	case 'N':
		return SupportNotRecorded
	case 'M':
		return SupportMandatory
	case 'O':
		return SupportOptional
	}
	return SupportUnknown
}

var tagTable = []tagInfo{
	{GPSVersionID, "GPSVersionID", BYTE, eslGPS},
	{InteroperabilityIndex, "InteroperabilityIndex", ASCII, eslInterop},
	{GPSLatitudeRef, "GPSLatitudeRef", ASCII, eslGPS},
	{InteroperabilityVersion, "InteroperabilityVersion", UNDEFINED, eslInterop},
	{GPSLatitude, "GPSLatitude", RATIONAL, eslGPS},
	{GPSLongitudeRef, "GPSLongitudeRef", ASCII, eslGPS},
	{GPSLongitude, "GPSLongitude", RATIONAL, eslGPS},
	{GPSAltitudeRef, "GPSAltitudeRef", BYTE, eslGPS},
	{GPSAltitude, "GPSAltitude", RATIONAL, eslGPS},
	{GPSTimeStamp, "GPSTimeStamp", RATIONAL, eslGPS},
	{GPSSatellites, "GPSSatellites", ASCII, eslGPS},
	{GPSStatus, "GPSStatus", ASCII, eslGPS},
	{GPSMeasureMode, "GPSMeasureMode", ASCII, eslGPS},
	{GPSDOP, "GPSDOP", RATIONAL, eslGPS},
	{GPSSpeedRef, "GPSSpeedRef", ASCII, eslGPS},
	{GPSSpeed, "GPSSpeed", RATIONAL, eslGPS},
	{GPSTrackRef, "GPSTrackRef", ASCII, eslGPS},
	{GPSTrack, "GPSTrack", RATIONAL, eslGPS},
	{GPSImgDirectionRef, "GPSImgDirectionRef", ASCII, eslGPS},
	{GPSImgDirection, "GPSImgDirection", RATIONAL, eslGPS},
	{GPSMapDatum, "GPSMapDatum", ASCII, eslGPS},
	{GPSDestLatitudeRef, "GPSDestLatitudeRef", ASCII, eslGPS},
	{GPSDestLatitude, "GPSDestLatitude", RATIONAL, eslGPS},
	{GPSDestLongitudeRef, "GPSDestLongitudeRef", ASCII, eslGPS},
	{GPSDestLongitude, "GPSDestLongitude", RATIONAL, eslGPS},
	{GPSDestBearingRef, "GPSDestBearingRef", ASCII, eslGPS},
	{GPSDestBearing, "GPSDestBearing", RATIONAL, eslGPS},
	{GPSDestDistanceRef, "GPSDestDistanceRef", ASCII, eslGPS},
	{GPSDestDistance, "GPSDestDistance", RATIONAL, eslGPS},
	{GPSProcessingMethod, "GPSProcessingMethod", UNDEFINED, eslGPS},
	{GPSAreaInformation, "GPSAreaInformation", UNDEFINED, eslGPS},
	{GPSDateStamp, "GPSDateStamp", ASCII, eslGPS},
	{GPSDifferential, "GPSDifferential", SHORT, eslGPS},
	{GPSHPositioningError, "GPSHPositioningError", RATIONAL, eslGPS},
	{NewSubfileType, "NewSubfileType", LONG, eslIFD01},
	{ImageWidth, "ImageWidth", 0, eslUncomp},
	{ImageLength, "ImageLength", 0, eslUncomp},
	{BitsPerSample, "BitsPerSample", SHORT, eslUncomp},
	{Compression, "Compression", SHORT, esl("MMMN", "MMMM", nnnn, nnnn, nnnn)},
	{PhotometricInterpretation, "PhotometricInterpretation", SHORT, eslUncomp},
	{ImageDescription, "ImageDescription", ASCII, eslIFD01},
	{Make, "Make", ASCII, eslIFD01},
	{Model, "Model", ASCII, eslIFD01},
	{StripOffsets, "StripOffsets", 0, eslUncomp},
	{Orientation, "Orientation", SHORT, eslIFD01},
	{SamplesPerPixel, "SamplesPerPixel", SHORT, eslUncomp},
	{RowsPerStrip, "RowsPerStrip", 0, eslUncomp},
	{StripByteCounts, "StripByteCounts", 0, eslUncomp},
	{XResolution, "XResolution", RATIONAL, esl("MMMM", "MMMM", nnnn, nnnn, nnnn)},
	{YResolution, "YResolution", RATIONAL, esl("MMMM", "MMMM", nnnn, nnnn, nnnn)},
	{PlanarConfiguration, "PlanarConfiguration", SHORT, esl("OMON", "OMON", nnnn, nnnn, nnnn)},
	{ResolutionUnit, "ResolutionUnit", SHORT, esl("MMMM", "MMMM", nnnn, nnnn, nnnn)},
	{TransferFunction, "TransferFunction", SHORT, eslIFD01},
	{Software, "Software", ASCII, eslIFD01},
	{DateTime, "DateTime", ASCII, eslIFD01},
	{Artist, "Artist", ASCII, eslIFD01},
	{WhitePoint, "WhitePoint", RATIONAL, eslIFD01},
	{PrimaryChromaticities, "PrimaryChromaticities", RATIONAL, eslIFD01},
	{JPEGInterchangeFormat, "JPEGInterchangeFormat", LONG, esl(nnnn, "NNNM", nnnn, nnnn, nnnn)},
	{JPEGInterchangeFormatLength, "JPEGInterchangeFormatLength", LONG, esl(nnnn, "NNNM", nnnn, nnnn, nnnn)},
	{YCbCrCoefficients, "YCbCrCoefficients", RATIONAL, esl("NNOO", "NNOO", nnnn, nnnn, nnnn)},
	{YCbCrSubSampling, "YCbCrSubSampling", SHORT, esl("NNMN", "NNMN", nnnn, nnnn, nnnn)},
	{YCbCrPositioning, "YCbCrPositioning", SHORT, esl("NNMM", "NNOO", nnnn, nnnn, nnnn)},
	{ReferenceBlackWhite, "ReferenceBlackWhite", RATIONAL, eslIFD01},
	{XMP, "XMP", BYTE, eslIFD0},
	{RelatedImageFileFormat, "RelatedImageFileFormat", ASCII, eslInterop},
	{RelatedImageWidth, "RelatedImageWidth", 0, eslInterop},
	{RelatedImageLength, "RelatedImageLength", 0, eslInterop},
	{Rating, "Rating", SHORT, eslIFD0},
	{Copyright, "Copyright", ASCII, eslIFD01},
	{ExposureTime, "ExposureTime", RATIONAL, eslExif},
	{FNumber, "FNumber", RATIONAL, eslExif},
	{ExifIFDPointer, "ExifIFDPointer", LONG, eslIFD01},
	{ExposureProgram, "ExposureProgram", SHORT, eslExif},
	{SpectralSensitivity, "SpectralSensitivity", ASCII, eslExif},
	{GPSInfoIFDPointer, "GPSInfoIFDPointer", LONG, eslIFD01},
	{ISOSpeedRatings, "ISOSpeedRatings", SHORT, eslExif},
	{OECF, "OECF", UNDEFINED, eslExif},
	{SensitivityType, "SensitivityType", SHORT, eslExif},
	{ExifVersion, "ExifVersion", UNDEFINED, esl(nnnn, nnnn, "MMMM", nnnn, nnnn)},
	{DateTimeOriginal, "DateTimeOriginal", ASCII, eslExif},
	{DateTimeDigitized, "DateTimeDigitized", ASCII, eslExif},
	{OffsetTime, "OffsetTime", ASCII, eslExif},
	{OffsetTimeOriginal, "OffsetTimeOriginal", ASCII, eslExif},
	{OffsetTimeDigitized, "OffsetTimeDigitized", ASCII, eslExif},
	{ComponentsConfiguration, "ComponentsConfiguration", UNDEFINED, esl(nnnn, nnnn, "NNNM", nnnn, nnnn)},
	{CompressedBitsPerPixel, "CompressedBitsPerPixel", RATIONAL, esl(nnnn, nnnn, "NNNO", nnnn, nnnn)},
	{ShutterSpeedValue, "ShutterSpeedValue", SRATIONAL, eslExif},
	{ApertureValue, "ApertureValue", RATIONAL, eslExif},
	{BrightnessValue, "BrightnessValue", SRATIONAL, eslExif},
	{ExposureBiasValue, "ExposureBiasValue", SRATIONAL, eslExif},
	{MaxApertureValue, "MaxApertureValue", RATIONAL, eslExif},
	{SubjectDistance, "SubjectDistance", RATIONAL, eslExif},
	{MeteringMode, "MeteringMode", SHORT, eslExif},
	{LightSource, "LightSource", SHORT, eslExif},
	{Flash, "Flash", SHORT, eslExif},
	{FocalLength, "FocalLength", RATIONAL, eslExif},
	{SubjectArea, "SubjectArea", SHORT, eslExif},
	{MakerNote, "MakerNote", UNDEFINED, eslExif},
	{UserComment, "UserComment", UNDEFINED, eslExif},
	{SubSecTime, "SubSecTime", ASCII, eslExif},
	{SubSecTimeOriginal, "SubSecTimeOriginal", ASCII, eslExif},
	{SubSecTimeDigitized, "SubSecTimeDigitized", ASCII, eslExif},
	{XPTitle, "XPTitle", BYTE, eslIFD0},
	{XPComment, "XPComment", BYTE, eslIFD0},
	{XPAuthor, "XPAuthor", BYTE, eslIFD0},
	{XPKeywords, "XPKeywords", BYTE, eslIFD0},
	{XPSubject, "XPSubject", BYTE, eslIFD0},
	{FlashpixVersion, "FlashpixVersion", UNDEFINED, esl(nnnn, nnnn, "MMMM", nnnn, nnnn)},
	{ColorSpace, "ColorSpace", SHORT, esl(nnnn, nnnn, "MMMM", nnnn, nnnn)},
	{PixelXDimension, "PixelXDimension", 0, esl(nnnn, nnnn, "NNNM", nnnn, nnnn)},
	{PixelYDimension, "PixelYDimension", 0, esl(nnnn, nnnn, "NNNM", nnnn, nnnn)},
	{RelatedSoundFile, "RelatedSoundFile", ASCII, eslExif},
	{InteropIFDPointer, "InteropIFDPointer", LONG, eslExif},
	{FlashEnergy, "FlashEnergy", RATIONAL, eslExif},
	{SpatialFrequencyResponse, "SpatialFrequencyResponse", UNDEFINED, eslExif},
	{FocalPlaneXResolution, "FocalPlaneXResolution", RATIONAL, eslExif},
	{FocalPlaneYResolution, "FocalPlaneYResolution", RATIONAL, eslExif},
	{FocalPlaneResolutionUnit, "FocalPlaneResolutionUnit", SHORT, eslExif},
	{SubjectLocation, "SubjectLocation", SHORT, eslExif},
	{ExposureIndex, "ExposureIndex", RATIONAL, eslExif},
	{SensingMethod, "SensingMethod", SHORT, eslExif},
	{FileSource, "FileSource", UNDEFINED, eslExif},
	{SceneType, "SceneType", UNDEFINED, eslExif},
	{CFAPattern, "CFAPattern", UNDEFINED, eslExif},
	{CustomRendered, "CustomRendered", SHORT, eslExif},
	{ExposureMode, "ExposureMode", SHORT, eslExif},
	{WhiteBalance, "WhiteBalance", SHORT, eslExif},
	{DigitalZoomRatio, "DigitalZoomRatio", RATIONAL, eslExif},
	{FocalLengthIn35mmFilm, "FocalLengthIn35mmFilm", SHORT, eslExif},
	{SceneCaptureType, "SceneCaptureType", SHORT, eslExif},
	{GainControl, "GainControl", SHORT, eslExif},
	{Contrast, "Contrast", SHORT, eslExif},
	{Saturation, "Saturation", SHORT, eslExif},
	{Sharpness, "Sharpness", SHORT, eslExif},
	{DeviceSettingDescription, "DeviceSettingDescription", UNDEFINED, eslExif},
	{SubjectDistanceRange, "SubjectDistanceRange", SHORT, eslExif},
	{ImageUniqueID, "ImageUniqueID", ASCII, eslExif},
	{CameraOwnerName, "CameraOwnerName", ASCII, eslExif},
	{BodySerialNumber, "BodySerialNumber", ASCII, eslExif},
	{LensSpecification, "LensSpecification", RATIONAL, eslExif},
	{LensMake, "LensMake", ASCII, eslExif},
	{LensModel, "LensModel", ASCII, eslExif},
	{LensSerialNumber, "LensSerialNumber", ASCII, eslExif},
	{Gamma, "Gamma", RATIONAL, eslExif},
	{PrintImageMatching, "PrintImageMatching", UNDEFINED, eslIFD0},
	{Padding, "Padding", UNDEFINED, esl("OOOO", "OOOO", "OOOO", nnnn, nnnn)},
}

// Indices into tagTable by tag number; a number may have several records.
var tagIndex = func() map[Tag][]int {
	index := make(map[Tag][]int, len(tagTable))
	for i := range tagTable {
		index[tagTable[i].tag] = append(index[tagTable[i].tag], i)
	}
	return index
}()

// Return the record for a tag that is recorded in an IFD, or nil.
func lookupTag(tag Tag, ifd IFD) *tagInfo {
	for _, i := range tagIndex[tag] {
		if tagTable[i].support[ifd] != nnnn {
			return &tagTable[i]
		}
	}
	return nil
}

// Return the name of a tag in an IFD. Tags not recorded in the IFD take
// the name of any record with the same number. Returns "" if the tag is
// unknown.
func TagName(tag Tag, ifd IFD) string {
	if ifd >= 0 && ifd < IFDCount {
		if info := lookupTag(tag, ifd); info != nil {
			return info.name
		}
	}
	if records := tagIndex[tag]; len(records) > 0 {
		return tagTable[records[0]].name
	}
	return ""
}

// Indicate if a tag is recorded in an IFD for some data type. Entries
// that aren't are treated as unknown tags when decoding.
func IsRecorded(tag Tag, ifd IFD) bool {
	return ifd >= 0 && ifd < IFDCount && lookupTag(tag, ifd) != nil
}

// Return the support level of a tag in an IFD for a data type. With
// DataTypeUnknown, a level is only reported if it's the same for all
// data types. Tags that aren't in the table have SupportUnknown.
func SupportLevel(tag Tag, ifd IFD, dt DataType) Support {
	records := tagIndex[tag]
	if len(records) == 0 || ifd < 0 || ifd >= IFDCount {
		return SupportUnknown
	}
	result := SupportNotRecorded
	for _, i := range records {
		switch s := tagTable[i].level(ifd, dt); s {
		case SupportMandatory:
			return s
		case SupportOptional, SupportUnknown:
			if result == SupportNotRecorded || s == SupportOptional {
				result = s
			}
		}
	}
	return result
}

// Return the canonical format of a tag in an IFD, or 0 if it may vary.
func canonicalFormat(tag Tag, ifd IFD) Format {
	if info := lookupTag(tag, ifd); info != nil {
		return info.format
	}
	return 0
}

// Indicate if a tag describes the structure of the block rather than
// data: sub-IFD pointers and, in IFD1, the thumbnail position.
func isStructural(tag Tag, ifd IFD) bool {
	switch tag {
	case ExifIFDPointer, GPSInfoIFDPointer, InteropIFDPointer:
		return true
	case JPEGInterchangeFormat, JPEGInterchangeFormatLength:
		return ifd == IFD1
	}
	return false
}

// Return the IFD a pointer tag refers to.
func pointerTarget(tag Tag) (IFD, bool) {
	switch tag {
	case ExifIFDPointer:
		return IFDExif, true
	case GPSInfoIFDPointer:
		return IFDGPS, true
	case InteropIFDPointer:
		return IFDInterop, true
	}
	return IFDCount, false
}
