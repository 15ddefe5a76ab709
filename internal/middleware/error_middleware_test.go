package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"filevault/internal/transport/httpdto"
	"filevault/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func TestErrorHandlerLogsAttachedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, logs := observedLogger()

	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.Use(ErrorHandler(l))
	engine.GET("/", func(c *gin.Context) {
		c.Error(errors.New("store unreachable"))
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// The handler's own body stands; the middleware only logs.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
	assert.NotContains(t, rec.Body.String(), "store unreachable")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Contains(t, entry.Message, "store unreachable")
	assert.NotEmpty(t, entry.ContextMap()[string(logger.RequestIdKey)])
}

func TestErrorHandlerWritesFallbackBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, logs := observedLogger()

	engine := gin.New()
	engine.Use(ErrorHandler(l))
	engine.GET("/", func(c *gin.Context) {
		c.Error(errors.New("no response written"))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.Len())
}

func TestErrorHandlerIgnoresCleanRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, logs := observedLogger()

	engine := gin.New()
	engine.Use(ErrorHandler(l))
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"ok": true}))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, logs.Len())
}
