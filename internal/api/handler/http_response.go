package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-finance-tracker/internal/api/middleware"
	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// Error codes carried in ErrorInfo.Code
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	response := NewErrorResponse(code, message)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondInvalidInput sends a 400 response naming the offending field
func RespondInvalidInput(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, CodeNotFound, message)
}

// RespondInternalError sends a 500 response without leaking the cause
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, CodeInternalError, "An internal server error occurred")
}

// RespondError maps a store or domain error onto its HTTP status.
// Anything that is not a validation or lookup failure is logged and reported as a 500.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	var invalid ledger.ErrInvalidInput
	var notFound ledger.ErrEntryNotFound

	switch {
	case errors.As(err, &invalid):
		RespondInvalidInput(c, invalid.Error())
	case errors.As(err, &notFound):
		RespondNotFound(c, notFound.Error())
	default:
		logger.Error("Request failed",
			"error", err,
			"path", c.Request.URL.Path,
			"correlation_id", middleware.GetCorrelationID(c),
		)
		_ = c.Error(err)
		RespondInternalError(c)
	}
}
