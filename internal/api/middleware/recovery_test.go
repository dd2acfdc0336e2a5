package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("RecoversFromPanicAndLogs", func(t *testing.T) {
		logger, logBuffer := newBufferLogger(slog.LevelError)

		router := gin.New()
		router.Use(Recovery(logger))
		router.Use(CorrelationID())
		router.GET("/panic", func(c *gin.Context) {
			panic("ledger exploded")
		})

		req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
		req.Header.Set(CorrelationIDHeader, "corr-panic")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
			CorrelationID string `json:"correlation_id"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
		assert.Equal(t, "An internal server error occurred", body.Error.Message)
		assert.Equal(t, "corr-panic", body.CorrelationID)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"level":"ERROR"`)
		assert.Contains(t, logOutput, `"msg":"Panic recovered"`)
		assert.Contains(t, logOutput, `"error":"ledger exploded"`)
		assert.Contains(t, logOutput, `"stack":`)
		assert.Contains(t, logOutput, `"path":"/panic"`)
	})

	t.Run("BrokenPipeIsNotAnError", func(t *testing.T) {
		logger, logBuffer := newBufferLogger(slog.LevelInfo)

		router := gin.New()
		router.Use(Recovery(logger))
		router.GET("/gone", func(c *gin.Context) {
			panic(fmt.Errorf("write response: %w", syscall.EPIPE))
		})

		req, _ := http.NewRequest(http.MethodGet, "/gone", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Empty(t, rr.Body.String())
		assert.Contains(t, logBuffer.String(), `"msg":"Client connection lost"`)
		assert.NotContains(t, logBuffer.String(), `"stack"`)
	})

	t.Run("NoPanicNoEffect", func(t *testing.T) {
		logger, logBuffer := newBufferLogger(slog.LevelInfo)

		router := gin.New()
		router.Use(Recovery(logger))
		router.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, logBuffer.String())
	})
}
