package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"archive-backend/internal/shared/server/respond"
	"archive-backend/internal/shared/telemetry"
)

// Recovery converts handler panics into a standardized 500 response.
// The enrichment pipeline absorbs its own panics, so anything caught
// here is a genuine handler bug worth a stack trace.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"error":      rec,
				"stack":      string(debug.Stack()),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}
