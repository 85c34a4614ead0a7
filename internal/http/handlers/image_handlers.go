package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/dpi-converter/internal/config"
	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/internal/services"
	"go.uber.org/zap"
)

const (
	imagesParamKey   = "images"
	presetParamKey   = "preset"
	dpiParamKey      = "dpi"
	optimizeParamKey = "optimize"

	statusHeader = "X-Conversion-Status"
	countHeader  = "X-Converted-Files"
)

type ImageHandler struct {
	service *services.DPIService
	logger  *zap.Logger
	config  *config.Config
}

func NewImageHandler(
	service *services.DPIService,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// === MAIN API ENDPOINTS ===

// ConvertImages rewrites the resolution tag of every uploaded image and
// returns either the single converted file or a zip of all of them.
func (h *ImageHandler) ConvertImages(c *gin.Context) {
	files, err := h.parseMultipartFiles(c)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	settings, err := h.parseSettings(c)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	inputs, err := h.readInputs(files)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	result, err := h.service.ConvertBatch(inputs, settings)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	h.respondWithDelivery(c, result)
}

// InspectImages reports the current resolution tag of each upload.
func (h *ImageHandler) InspectImages(c *gin.Context) {
	files, err := h.parseMultipartFiles(c)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	inputs, err := h.readInputs(files)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	infos, err := h.service.InspectBatch(inputs)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    models.InspectResponse{Images: infos},
	})
}

func (h *ImageHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    models.AvailablePresets(),
	})
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	checks := h.service.HealthCheck()
	overall := h.calculateOverallHealth(checks)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Checks:    checks,
		},
	})
}
