package converter

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/pkg/dpi"
)

const (
	QualityOptimized = 85
	QualityFull      = 100
)

// Converter re-encodes images with a new resolution tag. It holds no state
// and is safe for concurrent use.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// Convert decodes img and re-encodes it in the format implied by its
// filename extension, with the resolution tag set to settings.TargetDPI on
// both axes. Pixels are never resampled.
func (c *Converter) Convert(img models.InputImage, settings models.ConversionSettings) (*models.ConvertedImage, error) {
	if settings.TargetDPI <= 0 || settings.TargetDPI > dpi.MaxDensity {
		return nil, &models.RangeError{Value: settings.TargetDPI, Min: 1, Max: dpi.MaxDensity}
	}

	decoded, err := c.decode(img)
	if err != nil {
		return nil, err
	}

	format := models.FormatForFilename(img.Filename)
	quality := 0
	if format == models.FormatJPEG {
		quality = JPEGQuality(settings.Optimize)
	}

	buffer := &bytes.Buffer{}
	if err := c.encodeImage(buffer, decoded, format, quality); err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", img.Filename, err)
	}

	data, err := dpi.Set(buffer.Bytes(), dpi.Uniform(settings.TargetDPI))
	if err != nil {
		return nil, fmt.Errorf("failed to write resolution for %q: %w", img.Filename, err)
	}

	return &models.ConvertedImage{
		Filename: img.Filename,
		Data:     data,
		Format:   format,
		MimeType: format.MimeType(),
		Quality:  quality,
	}, nil
}

// JPEGQuality is the encoder quality used for JPEG output.
func JPEGQuality(optimize bool) int {
	if optimize {
		return QualityOptimized
	}
	return QualityFull
}

func (c *Converter) decode(img models.InputImage) (image.Image, error) {
	if len(img.Data) == 0 {
		return nil, &models.DecodeError{Filename: img.Filename, Err: fmt.Errorf("empty file")}
	}

	// no AutoOrientation: the pixel grid must stay as stored
	decoded, err := imaging.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &models.DecodeError{Filename: img.Filename, Err: err}
	}
	return decoded, nil
}
