package services

import (
	"fmt"

	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/internal/services/converter"
	"github.com/phambaophuc/dpi-converter/internal/services/inspector"
	"github.com/phambaophuc/dpi-converter/internal/services/packager"
	"go.uber.org/zap"
)

// DPIService runs a whole upload through conversion and packaging.
type DPIService struct {
	converter *converter.Converter
	packager  *packager.Packager
	inspector *inspector.Inspector
	logger    *zap.Logger
}

func NewDPIService(logger *zap.Logger) *DPIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DPIService{
		converter: converter.NewConverter(),
		packager:  packager.NewPackager(),
		inspector: inspector.NewInspector(),
		logger:    logger,
	}
}

// ConvertBatch converts every input in order and packages the results.
// The first failure aborts the batch; no partial result is returned.
func (s *DPIService) ConvertBatch(inputs []models.InputImage, settings models.ConversionSettings) (*models.BatchResult, error) {
	if len(inputs) == 0 {
		return nil, models.ErrEmptyBatch
	}

	converted := make([]*models.ConvertedImage, 0, len(inputs))
	for i, input := range inputs {
		out, err := s.converter.Convert(input, settings)
		if err != nil {
			s.logger.Warn("Conversion aborted",
				zap.String("filename", input.Filename),
				zap.Int("index", i),
				zap.Int("batch_size", len(inputs)),
				zap.Error(err))
			return nil, err
		}

		s.logger.Debug("Image converted",
			zap.String("filename", out.Filename),
			zap.String("format", string(out.Format)),
			zap.Int("quality", out.Quality),
			zap.Int("input_bytes", len(input.Data)),
			zap.Int("output_bytes", len(out.Data)))

		converted = append(converted, out)
	}

	delivery, err := s.packager.Package(converted)
	if err != nil {
		return nil, fmt.Errorf("failed to package images: %w", err)
	}

	result := &models.BatchResult{
		Delivery:  delivery,
		FileCount: len(inputs),
		TargetDPI: settings.TargetDPI,
	}

	s.logger.Info("Batch converted",
		zap.Int("files", result.FileCount),
		zap.Int("dpi", settings.TargetDPI),
		zap.Bool("optimize", settings.Optimize),
		zap.Bool("archived", delivery.Archived),
		zap.String("filename", delivery.Filename),
		zap.Int("bytes", len(delivery.Data)))

	return result, nil
}

// InspectBatch reports the current resolution tag of each input.
func (s *DPIService) InspectBatch(inputs []models.InputImage) ([]models.ResolutionInfo, error) {
	if len(inputs) == 0 {
		return nil, models.ErrEmptyBatch
	}

	infos := make([]models.ResolutionInfo, 0, len(inputs))
	for _, input := range inputs {
		info, err := s.inspector.Inspect(input)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}
