package handlers

import (
	"net/http"

	"expense-tracker-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers surface failures through exactly two helpers:
//
//   SendError       - client and business errors, e.g.
//                     SendError(c, errors.ExpenseNotFound) or
//                     SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//   SendSystemError - store and internal failures; the cause is hidden
//                     behind the generic SYSTEM_001 envelope
//
// echo.NewHTTPError and raw c.JSON error bodies bypass the envelope and
// the trace ID, so they are not used in handlers.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
// Used for successful API responses with data, messages, and metadata
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty" swaggertype:"object"`
}

// ErrorResponse aliases the shared envelope so handler tests can
// unmarshal responses without importing internal/errors directly
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
