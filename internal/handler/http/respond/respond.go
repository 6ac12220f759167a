// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/domain/entity"
)

// safeErrors are message fragments that mark an error as fit for clients.
var safeErrors = []string{
	"required",
	"invalid",
	"not found",
	"unauthorized",
	"must",
	"cannot be",
	"too long",
	"too short",
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError sanitizes error messages before returning them to users.
// Internal errors (e.g., storage errors) are returned as "internal server error",
// with details logged after masking secrets. Safe errors (validation errors) are
// returned as-is. Codes of 500 and above are never considered safe.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(err) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// Success writes the {"success": true} acknowledgement used by mutations
// that have no resource to return.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// isSafe reports whether err may be shown to clients verbatim.
// Validation errors always are; others are judged by their message.
func isSafe(err error) bool {
	if errors.Is(err, entity.ErrValidationFailed) {
		return true
	}
	lowerMsg := strings.ToLower(err.Error())
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			return true
		}
	}
	return false
}
