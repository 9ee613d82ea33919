// Package response provides standardized HTTP response formatting and error handling utilities.
//
// Every endpoint answers with the same envelope:
//
//	{"success": bool, "data": T|null, "message": string, "error": string|null}
//
// On failures data is null and error carries a machine-readable code;
// validation failures additionally carry field-level details in data.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/store"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, data any, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: status < 400,
		Data:    data,
		Message: message,
	}

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, message string, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, message, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, message string, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, message, logger)
}

// Error writes an error response with the given status code and error code.
func Error(w http.ResponseWriter, status int, message string, code string, logger *slog.Logger) {
	ErrorWithDetails(w, status, message, code, nil, logger)
}

// ErrorWithDetails writes an error response carrying extra detail in data
// (used for field-level validation errors).
func ErrorWithDetails(w http.ResponseWriter, status int, message string, code string, details any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: false,
		Data:    details,
		Message: message,
		Error:   code,
	}

	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode error response", "error", err)
		}
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, string(domainerrors.CodeValidation), logger)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusUnauthorized, message, string(domainerrors.CodeUnauthorized), logger)
}

// Forbidden writes a 403 Forbidden response.
func Forbidden(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusForbidden, message, string(domainerrors.CodeForbidden), logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, string(domainerrors.CodeNotFound), logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, message, "RATE_LIMIT", logger)
}

// InternalError writes a 500 Internal Server Error response.
// The message sent to the caller is always generic; callers must log the
// real failure server-side before invoking this.
func InternalError(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, "internal server error", string(domainerrors.CodeInternal), logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain and store errors are mapped to their HTTP codes; validation and
// auth errors surface their message verbatim. Anything else is logged with
// full context and reported to the caller as a generic 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			// Dependency/internal failures: generic message, real cause logged.
			if logger != nil {
				logger.Error("Internal error", "code", domainErr.Code, "error", err)
			}
			InternalError(w, logger)
			return
		}
		ErrorWithDetails(w, status, domainErr.Message, string(domainErr.Code), domainErr.Details, logger)
		return
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		if storeErr.HTTPCode() >= http.StatusInternalServerError {
			if logger != nil {
				logger.Error("Store error", "error", err)
			}
			InternalError(w, logger)
			return
		}
		Error(w, storeErr.HTTPCode(), storeErr.Message, storeErr.Code(), logger)
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, logger)
}
