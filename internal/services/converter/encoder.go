package converter

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/dpi-converter/internal/models"
)

func (c *Converter) encodeImage(w io.Writer, img image.Image, format models.ImageFormat, quality int) error {
	switch format {
	case models.FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	default:
		// lossless, quality has no meaning here
		return imaging.Encode(w, img, imaging.PNG)
	}
}
