package handler

import (
	"filevault/internal/services"
	"filevault/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP status and machine
// category for the response envelope. 5xx causes are not echoed back to
// the caller; they are attached to the gin context so the error middleware
// logs them with the request's context fields.
func respondError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	msg := err.Error()
	if status >= 500 {
		msg = "internal error"
		c.Error(err)
	}
	c.JSON(status, httpdto.NewErrorResponse(msg, services.ErrorCode(err)))
}
