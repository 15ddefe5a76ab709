package middleware

import (
	"net/http"

	"filevault/internal/transport/httpdto"
	"filevault/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors handlers attach via c.Error. Handlers write
// their own response bodies; this only supplies a generic 500 envelope if
// one of them attached an error and bailed without writing anything.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if l != nil {
			for _, ginErr := range c.Errors {
				l.ErrorfCtx(c.Request.Context(), "request failed: %s", ginErr.Err)
			}
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
		}
	}
}
