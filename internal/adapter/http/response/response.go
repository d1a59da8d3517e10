// Package response provides standardized HTTP response builders for the flight registry API.
// It centralizes response formatting to ensure consistency across all endpoints.
package response

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/timeutil"
)

// Response is the envelope for successful responses.
type Response struct {
	// Success is always true
	Success bool `json:"success"`

	// Data contains the response payload; null for deletions
	Data interface{} `json:"data"`

	// Message is a short human-readable summary
	Message string `json:"message"`

	// Timestamp is the RFC3339 UTC time the response was built
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Error     *ErrorDetail `json:"error"`
	Timestamp string       `json:"timestamp"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for validation errors)
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInternalError   = "internal_error"

	// CodeMethodNotAllowed is only produced by the router for known paths
	// requested with an unsupported method.
	CodeMethodNotAllowed = "method_not_allowed"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgInternalError      = "An unexpected error occurred"
)

var (
	clockMu sync.RWMutex
	clock   timeutil.Clock = timeutil.NewRealClock()
)

// SetClock replaces the clock used for envelope timestamps and returns a
// function that restores the previous one.
func SetClock(c timeutil.Clock) (restore func()) {
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := clock
	clock = c
	return func() {
		clockMu.Lock()
		defer clockMu.Unlock()
		clock = prev
	}
}

// Now returns the envelope timestamp for the current instant.
func Now() string {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return timeutil.FormatTimestamp(clock.Now())
}

// Success creates a successful response envelope.
func Success(data interface{}, message string) *Response {
	return &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Now(),
	}
}

// Failure creates a failed response envelope.
func Failure(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: Now(),
	}
}

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Success(data, message))
}

// Created writes a 201 Created response with the given data.
func Created(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, Success(data, message))
}

// CodeForStatus maps an HTTP status raised outside the handlers (router,
// body limits, echo binders) onto an envelope error code.
func CodeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case status == http.StatusConflict:
		return CodeConflict
	case status >= http.StatusInternalServerError:
		return CodeInternalError
	default:
		return CodeInvalidRequest
	}
}
