package inspector

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/pkg/dpi"
)

// Inspector reports the resolution tag and dimensions of an encoded image
// without decoding its pixels.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) Inspect(img models.InputImage) (*models.ResolutionInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &models.DecodeError{Filename: img.Filename, Err: err}
	}

	info := &models.ResolutionInfo{
		Filename: img.Filename,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Source:   models.ResolutionSourceNone,
	}

	res, source, err := i.resolution(img.Data)
	if err != nil {
		if errors.Is(err, dpi.ErrNoResolution) {
			return info, nil
		}
		return nil, &models.DecodeError{Filename: img.Filename, Err: err}
	}

	info.XDPI = res.X
	info.YDPI = res.Y
	info.Source = source
	return info, nil
}

func (i *Inspector) resolution(data []byte) (dpi.Resolution, string, error) {
	switch {
	case dpi.IsPNG(data):
		res, err := dpi.ReadPNG(data)
		return res, models.ResolutionSourcePHYs, err

	case dpi.IsJPEG(data):
		res, err := dpi.ReadJPEG(data)
		if err == nil {
			return res, models.ResolutionSourceJFIF, nil
		}
		if !errors.Is(err, dpi.ErrNoResolution) {
			return dpi.Resolution{}, "", err
		}
		if res, ok := exifResolution(data); ok {
			return res, models.ResolutionSourceEXIF, nil
		}
		return dpi.Resolution{}, "", dpi.ErrNoResolution

	default:
		// decodable but neither container, e.g. GIF
		return dpi.Resolution{}, "", dpi.ErrNoResolution
	}
}
