// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
)

// EventStore is the event persistence surface the services consume.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context, status string) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

// UserStore is the user persistence surface the services consume.
type UserStore interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationStore is the read surface over registration entries used for
// the enriched listings. All writes go through the Registrar.
type RegistrationStore interface {
	ListByEvent(ctx context.Context, eventID, status string) ([]model.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]model.Registration, error)
}

// Registrar is the registration engine's public surface.
type Registrar interface {
	Register(ctx context.Context, eventID, userID string) (*model.RegistrationOutcome, error)
	Unregister(ctx context.Context, eventID, userID string) error
}

var eventStatuses = map[string]struct{}{
	"draft":     {},
	"published": {},
	"cancelled": {},
	"completed": {},
	"active":    {},
}

func validStatus(status string) bool {
	_, ok := eventStatuses[status]
	return ok
}

func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > max {
		return fmt.Errorf("%s cannot exceed %d characters", field, max)
	}
	return nil
}

func validateEventFields(title, description, date, location, organizer string) error {
	if err := requireText("title", title, 200); err != nil {
		return err
	}
	if err := requireText("description", description, 1000); err != nil {
		return err
	}
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("date is required")
	}
	if err := requireText("location", location, 200); err != nil {
		return err
	}
	return requireText("organizer", organizer, 100)
}
