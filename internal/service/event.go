package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/registration"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// EventService orchestrates event CRUD and the registration workflow.
type EventService struct {
	events        EventStore
	users         UserStore
	registrations RegistrationStore
	registrar     Registrar
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, users UserStore, registrations RegistrationStore, registrar Registrar) *EventService {
	return &EventService{
		events:        events,
		users:         users,
		registrations: registrations,
		registrar:     registrar,
	}
}

// CreateEvent validates the request and delegates to the store. Counters
// always start at zero; a missing status defaults to draft.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateEventFields(req.Title, req.Description, req.Date, req.Location, req.Organizer); err != nil {
		return nil, err
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be a positive integer")
	}
	if req.Capacity > 100_000 {
		return nil, fmt.Errorf("capacity cannot exceed 100,000")
	}
	if req.Status == "" {
		req.Status = "draft"
	}
	if !validStatus(req.Status) {
		return nil, fmt.Errorf("status must be one of draft, published, cancelled, completed, active")
	}
	return s.events.Create(ctx, req)
}

// ListEvents returns all events, optionally filtered by status.
func (s *EventService) ListEvents(ctx context.Context, status string) ([]model.Event, error) {
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("status must be one of draft, published, cancelled, completed, active")
	}
	return s.events.List(ctx, status)
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// UpdateEvent validates and applies a partial update.
func (s *EventService) UpdateEvent(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if req == (model.UpdateEventRequest{}) {
		return nil, fmt.Errorf("no fields to update")
	}
	if req.Title != nil {
		if err := requireText("title", *req.Title, 200); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := requireText("description", *req.Description, 1000); err != nil {
			return nil, err
		}
	}
	if req.Location != nil {
		if err := requireText("location", *req.Location, 200); err != nil {
			return nil, err
		}
	}
	if req.Organizer != nil {
		if err := requireText("organizer", *req.Organizer, 100); err != nil {
			return nil, err
		}
	}
	if req.Capacity != nil && (*req.Capacity <= 0 || *req.Capacity > 100_000) {
		return nil, fmt.Errorf("capacity must be between 1 and 100,000")
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, fmt.Errorf("status must be one of draft, published, cancelled, completed, active")
	}
	// Shrinking capacity below the registered count would leave the event
	// over capacity with no way for the engine to recover.
	if req.Capacity != nil {
		event, err := s.events.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if *req.Capacity < event.CurrentRegistrations {
			return nil, fmt.Errorf("capacity cannot be reduced below the current %d registrations", event.CurrentRegistrations)
		}
	}
	return s.events.Update(ctx, id, req)
}

// DeleteEvent removes an event. Registration entries are left to the
// surrounding tooling; the engine never reads entries for a missing event.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("event id is required")
	}
	return s.events.Delete(ctx, id)
}

// Register delegates the admit-vs-waitlist decision to the engine.
func (s *EventService) Register(ctx context.Context, eventID, userID string) (*model.RegistrationOutcome, error) {
	if eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("userId is required")
	}
	outcome, err := s.registrar.Register(ctx, eventID, userID)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		return nil, err
	}
	return outcome, nil
}

// Unregister removes a registration through the engine, triggering
// promotion or compaction as needed.
func (s *EventService) Unregister(ctx context.Context, eventID, userID string) error {
	if eventID == "" {
		return fmt.Errorf("event id is required")
	}
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	return s.registrar.Unregister(ctx, eventID, userID)
}

// ListRegistrations returns an event's entries grouped by status and
// enriched with user details, the waitlist ordered by position.
func (s *EventService) ListRegistrations(ctx context.Context, eventID string) (*model.EventRegistrations, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID, "")
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := &model.EventRegistrations{
		EventID:    eventID,
		Registered: []model.EventRegistrationDetail{},
		Waitlisted: []model.EventRegistrationDetail{},
	}
	for _, reg := range regs {
		user, err := s.users.GetByID(ctx, reg.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		detail := model.EventRegistrationDetail{Registration: reg, User: user}
		switch reg.Status {
		case model.StatusRegistered:
			out.Registered = append(out.Registered, detail)
		case model.StatusWaitlisted:
			out.Waitlisted = append(out.Waitlisted, detail)
		}
	}
	out.Counts = model.RegistrationCounts{
		Registered: len(out.Registered),
		Waitlisted: len(out.Waitlisted),
		Capacity:   event.Capacity,
	}
	return out, nil
}

var _ Registrar = (*registration.Engine)(nil)
