package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice/internal/delivery/http/validator"
	"backoffice/internal/upstream"
)

// Response unified API response structure
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string                `json:"code"`              // Business error code, e.g., "INVALID_CREDENTIALS"
	Details string                `json:"details,omitempty"` // Detailed error description
	Fields  validator.FieldErrors `json:"fields,omitempty"`  // Field-keyed validation messages
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// ValidationFailed renders field-keyed validation messages. These never
// reach the upstream: the form is redisplayed with per-field errors.
func ValidationFailed(c echo.Context, fields validator.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Code:    http.StatusBadRequest,
		Message: "Input validation failed",
		Error: &ErrorInfo{
			Code:   "VALIDATION_FAILED",
			Fields: fields,
		},
	})
}

// Relay forwards an upstream result verbatim, preserving status and
// content type. The backend owns the payload shapes.
func Relay(c echo.Context, result *upstream.Result) error {
	contentType := result.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}

	return c.Blob(result.Status, contentType, result.Body)
}

// BindingError binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, "")
}

// NotFound 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, "")
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
