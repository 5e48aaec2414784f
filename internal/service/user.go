package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// UserService orchestrates user CRUD and the user-side registration views.
type UserService struct {
	users         UserStore
	events        EventStore
	registrations RegistrationStore
	registrar     Registrar
}

// NewUserService constructs a UserService with its dependencies.
func NewUserService(users UserStore, events EventStore, registrations RegistrationStore, registrar Registrar) *UserService {
	return &UserService{
		users:         users,
		events:        events,
		registrations: registrations,
		registrar:     registrar,
	}
}

// CreateUser validates the request and delegates to the store.
func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := requireText("name", req.Name, 200); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, req)
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetUser returns a single user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUser validates and applies a partial update.
func (s *UserService) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if req.Name == nil {
		return nil, fmt.Errorf("no fields to update")
	}
	if err := requireText("name", *req.Name, 200); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, req)
}

// DeleteUser removes a user, first unregistering them from every event
// through the engine so counters and waitlist positions stay consistent.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("user id is required")
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	regs, err := s.registrations.ListByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}
	for _, reg := range regs {
		if err := s.registrar.Unregister(ctx, reg.EventID, id); err != nil {
			return fmt.Errorf("unregister from event %s: %w", reg.EventID, err)
		}
	}
	return s.users.Delete(ctx, id)
}

// ListRegistrations returns everything the user is registered or waitlisted
// for, enriched with event details. Entries whose event has since vanished
// are skipped.
func (s *UserService) ListRegistrations(ctx context.Context, userID string) (*model.UserRegistrations, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	out := &model.UserRegistrations{
		UserID:        userID,
		Registrations: []model.UserRegistrationDetail{},
	}
	for _, reg := range regs {
		event, err := s.events.GetByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		out.Registrations = append(out.Registrations, model.UserRegistrationDetail{
			Registration: reg,
			Event:        event,
		})
	}
	return out, nil
}
