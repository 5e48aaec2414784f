package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/service"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// EventHandler holds the HTTP handlers for events and registrations.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /events with an optional ?status= filter.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /events/{id}/registrations
// The engine decides between registered and waitlisted.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	outcome, err := h.svc.Register(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

// Unregister handles DELETE /events/{id}/registrations/{userId}
func (h *EventHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Unregister(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRegistrations handles GET /events/{id}/registrations
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.ListRegistrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
