package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/phambaophuc/dpi-converter/internal/models"
	"go.uber.org/zap"
)

const healthCheckDPI = 300

// HealthCheck converts a generated image to each output format and reads
// the tag back.
func (s *DPIService) HealthCheck() map[string]string {
	status := make(map[string]string)

	sample, err := healthSample()
	if err != nil {
		status["converter"] = "unhealthy: " + err.Error()
		return status
	}

	for _, name := range []string{"probe.jpg", "probe.png"} {
		key := "converter_" + string(models.FormatForFilename(name))
		if err := s.probe(models.InputImage{Filename: name, Data: sample}); err != nil {
			s.logger.Error("Health probe failed", zap.String("probe", name), zap.Error(err))
			status[key] = "unhealthy: " + err.Error()
		} else {
			status[key] = "healthy"
		}
	}

	return status
}

func (s *DPIService) probe(input models.InputImage) error {
	out, err := s.converter.Convert(input, models.ConversionSettings{TargetDPI: healthCheckDPI})
	if err != nil {
		return err
	}

	info, err := s.inspector.Inspect(models.InputImage{Filename: out.Filename, Data: out.Data})
	if err != nil {
		return err
	}
	if info.XDPI != healthCheckDPI || info.YDPI != healthCheckDPI {
		return fmt.Errorf("resolution mismatch: got %dx%d", info.XDPI, info.YDPI)
	}
	return nil
}

func healthSample() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})

	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, img); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
