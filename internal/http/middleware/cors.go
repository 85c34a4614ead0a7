package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets browser front-ends post uploads and read the download headers.
func CORS() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+RequestIDHeader)
		ctx.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Conversion-Status, X-Converted-Files, "+RequestIDHeader)
		ctx.Header("Access-Control-Max-Age", "86400")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
