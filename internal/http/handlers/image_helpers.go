package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/dpi-converter/internal/http/middleware"
	"github.com/phambaophuc/dpi-converter/internal/models"
	"github.com/phambaophuc/dpi-converter/pkg/utils"
	"go.uber.org/zap"
)

var errInvalidParam = errors.New("invalid parameter")

// multipartOverhead covers boundaries, part headers and form fields on top
// of the file payloads.
const multipartOverhead = 1 << 20

// === REQUEST PARSING ===

func (h *ImageHandler) parseSettings(c *gin.Context) (models.ConversionSettings, error) {
	preset := models.Preset(strings.ToLower(strings.TrimSpace(c.PostForm(presetParamKey))))

	customDPI := 0
	if preset == models.PresetCustom {
		value := strings.TrimSpace(c.PostForm(dpiParamKey))
		if value != "" {
			dpi, err := strconv.Atoi(value)
			if err != nil {
				return models.ConversionSettings{}, fmt.Errorf("%w: dpi must be a number", errInvalidParam)
			}
			if dpi == 0 {
				// zero is a value, not "missing"
				return models.ConversionSettings{}, &models.RangeError{Value: 0, Min: models.MinDPI, Max: models.MaxDPI}
			}
			customDPI = dpi
		}
	}

	optimize, err := h.parseBool(c.PostForm(optimizeParamKey))
	if err != nil {
		return models.ConversionSettings{}, fmt.Errorf("%w: optimize must be true or false", errInvalidParam)
	}

	return models.NewConversionSettings(preset, customDPI, optimize)
}

func (h *ImageHandler) parseBool(value string) (bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return false, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(value)
}

func (h *ImageHandler) parseMultipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	maxBody := h.maxRequestBody()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	maxMemory := h.config.Conversion.MaxFileSize * 2
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, models.ErrEmptyBatch
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", models.ErrFileTooLarge, maxBody)
		}
		return nil, fmt.Errorf("%w: failed to parse form data: %v", errInvalidParam, err)
	}

	files := c.Request.MultipartForm.File[imagesParamKey]
	if len(files) == 0 {
		return nil, models.ErrEmptyBatch
	}
	if len(files) > h.config.Conversion.MaxFiles {
		return nil, fmt.Errorf("%w: %d uploaded, at most %d allowed",
			models.ErrTooManyFiles, len(files), h.config.Conversion.MaxFiles)
	}

	for _, fh := range files {
		if !utils.IsAllowedExtension(fh.Filename, h.config.Conversion.AllowedExtensions) {
			return nil, fmt.Errorf("%w: %q (allowed: %s)", models.ErrUnsupportedExtension,
				fh.Filename, strings.Join(h.config.Conversion.AllowedExtensions, ", "))
		}
	}

	return files, nil
}

// === FILE OPERATIONS ===

func (h *ImageHandler) readInputs(files []*multipart.FileHeader) ([]models.InputImage, error) {
	inputs := make([]models.InputImage, 0, len(files))

	for _, fh := range files {
		data, err := h.readFile(fh)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, models.InputImage{Filename: fh.Filename, Data: data})
	}

	return inputs, nil
}

func (h *ImageHandler) readFile(fh *multipart.FileHeader) ([]byte, error) {
	maxSize := h.config.Conversion.MaxFileSize
	if fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit %d", models.ErrFileTooLarge, fh.Filename, fh.Size, maxSize)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", fh.Filename, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %q exceeds %d bytes", models.ErrFileTooLarge, fh.Filename, maxSize)
	}

	return data, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *ImageHandler) respondConversionError(c *gin.Context, err error) {
	var (
		decodeErr *models.DecodeError
		rangeErr  *models.RangeError
	)

	switch {
	case errors.As(err, &decodeErr):
		h.respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &rangeErr):
		h.respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrFileTooLarge):
		h.respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, models.ErrEmptyBatch),
		errors.Is(err, models.ErrInvalidPreset),
		errors.Is(err, models.ErrUnsupportedExtension),
		errors.Is(err, models.ErrTooManyFiles),
		errors.Is(err, errInvalidParam):
		h.respondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Conversion failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to convert images")
		return
	}

	_ = c.Error(err)
}

func (h *ImageHandler) respondWithDelivery(c *gin.Context, result *models.BatchResult) {
	d := result.Delivery

	c.Header("Content-Disposition", utils.AttachmentDisposition(d.Filename))
	c.Header(statusHeader, result.Message())
	c.Header(countHeader, strconv.Itoa(result.FileCount))
	c.Data(http.StatusOK, d.MimeType, d.Data)
}

// === UTILITY METHODS ===

// maxRequestBody bounds a whole upload: every allowed file at its size
// limit plus the multipart framing.
func (h *ImageHandler) maxRequestBody() int64 {
	conv := h.config.Conversion
	return conv.MaxFileSize*int64(conv.MaxFiles) + multipartOverhead
}

func (h *ImageHandler) calculateOverallHealth(checks map[string]string) string {
	if len(checks) == 0 {
		return "unhealthy"
	}
	for _, status := range checks {
		if status != "healthy" {
			return "unhealthy"
		}
	}
	return "healthy"
}
