package handler

// RESPONSE HELPERS:
// Every handler writes through writeJSON / writeError so the wire format
// stays uniform:
//
//	success:  the resource, or {"message": "..."}
//	failure:  {"error": "...", "field": "...", "reason": "..."}
//
// field and reason are only present for validation failures.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/itembox/internal/apperror"
)

// ErrorResponse is the error body returned by every API endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// MessageResponse confirms an update or delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends data as JSON with the given status code.
// Headers and status must go out before the body; after Encode starts
// writing, nothing about the response can change.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status.
//
//	apperror.ErrValidation   → 400
//	apperror.ErrNotFound     → 404
//	anything else            → 500
//
// A 500 echoes the raw error text. There is no separate error reporting
// path, so the message is the only diagnostic a client gets.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		writeJSON(w, status, ErrorResponse{
			Error:  appErr.Message,
			Field:  appErr.Field,
			Reason: appErr.Reason,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
