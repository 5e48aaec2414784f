// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/registration"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps engine and store failures onto HTTP statuses.
// Anything unrecognised is treated as a validation rejection.
func writeDomainError(w http.ResponseWriter, err error) {
	var dup *registration.DuplicateError
	switch {
	case errors.As(err, &dup):
		writeError(w, http.StatusConflict, dup.Error())
	case errors.Is(err, registration.ErrEventFull):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrConflictingID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, registration.ErrEventNotFound),
		errors.Is(err, registration.ErrUserNotFound),
		errors.Is(err, registration.ErrNotRegistered):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// ─── Service info and health ──────────────────────────────────────────────────

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Events API",
		"version": "1.0.0",
	})
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
