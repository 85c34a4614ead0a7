package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/dpi-converter/internal/models"
)

// ValidateContentType rejects uploads that are not multipart/form-data
// before any body is read.
func ValidateContentType() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		mediaType, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, models.APIResponse{
				Success: false,
				Error:   "Content-Type must be multipart/form-data",
			})
			return
		}

		ctx.Next()
	}
}
