package models

import "github.com/phambaophuc/dpi-converter/pkg/utils"

type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
)

const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
)

func (f ImageFormat) MimeType() string {
	if f == FormatJPEG {
		return MimeTypeJPEG
	}
	return MimeTypePNG
}

// FormatForFilename picks the output format from the extension alone:
// .jpg/.jpeg are JPEG, everything else is PNG.
func FormatForFilename(filename string) ImageFormat {
	if utils.IsJPEGFilename(filename) {
		return FormatJPEG
	}
	return FormatPNG
}

// InputImage is one uploaded file as received.
type InputImage struct {
	Filename string
	Data     []byte
}

// ConvertedImage is an InputImage re-encoded with the requested resolution.
type ConvertedImage struct {
	Filename string
	Data     []byte
	Format   ImageFormat
	MimeType string
	// Quality is the JPEG quality used, zero for PNG.
	Quality int
}
