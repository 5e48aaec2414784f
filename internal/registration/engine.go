// Package registration implements the registration engine: the
// admit-vs-waitlist decision, the event counter updates that mirror it, and
// the waitlist promotion and position renumbering that run on removal.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
	"github.com/Shivanand-hulikatti/event-registration-service/internal/store"
)

// ErrEventNotFound is returned when the target event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when the registering user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrNotRegistered is returned by Unregister when no entry exists for the
// (event, user) pair.
var ErrNotRegistered = errors.New("user is not registered for this event")

// ErrEventFull is returned when an event is at capacity and has no waitlist.
var ErrEventFull = errors.New("event is at capacity and has no waitlist")

// DuplicateError reports that the user already holds an entry for the event,
// carrying the entry's current status.
type DuplicateError struct {
	Status string
}

func (e *DuplicateError) Error() string {
	return "user already " + e.Status + " for this event"
}

// EventStore is the engine's view of event persistence.
type EventStore interface {
	GetByID(ctx context.Context, id string) (*model.Event, error)
	IncrementRegistrations(ctx context.Context, id string, delta int) error
	IncrementWaitlist(ctx context.Context, id string, delta int) error
}

// UserStore is the engine's view of user persistence.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// RegistrationStore is the engine's view of registration persistence.
type RegistrationStore interface {
	Get(ctx context.Context, eventID, userID string) (*model.Registration, error)
	Put(ctx context.Context, reg *model.Registration) error
	Delete(ctx context.Context, eventID, userID string) error
	UpdateStatus(ctx context.Context, eventID, userID, status string, position *int) error
	ListByEvent(ctx context.Context, eventID, status string) ([]model.Registration, error)
	ShiftPositions(ctx context.Context, eventID string, pivot int) error
}

// Engine is the sole writer of registration entries and of the event
// counters. Every operation for an event runs under that event's mutex, so
// concurrent register/unregister calls for the same event serialize their
// read-decide-write sequences while different events proceed in parallel.
type Engine struct {
	events        EventStore
	users         UserStore
	registrations RegistrationStore
	locks         *lockTable
}

// NewEngine constructs an Engine over the given stores.
func NewEngine(events EventStore, users UserStore, registrations RegistrationStore) *Engine {
	return &Engine{
		events:        events,
		users:         users,
		registrations: registrations,
		locks:         newLockTable(),
	}
}

// Register resolves a registration request into registered or waitlisted.
//
// The entry write and the matching counter increment are not one
// transaction in the granular store contract: if the increment fails after
// the entry was created, the engine deletes the entry again (best effort)
// and surfaces the fault instead of leaving the counter behind the rows.
func (e *Engine) Register(ctx context.Context, eventID, userID string) (*model.RegistrationOutcome, error) {
	mu := e.locks.get(eventID)
	mu.Lock()
	defer mu.Unlock()

	event, err := e.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := e.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	existing, err := e.registrations.Get(ctx, eventID, userID)
	if err == nil {
		return nil, &DuplicateError{Status: existing.Status}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	reg := &model.Registration{
		ID:           model.RegistrationID(eventID, userID),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now().UTC(),
	}

	switch {
	case event.CurrentRegistrations < event.Capacity:
		reg.Status = model.StatusRegistered
		if err := e.registrations.Put(ctx, reg); err != nil {
			return nil, fmt.Errorf("create registration: %w", err)
		}
		if err := e.events.IncrementRegistrations(ctx, eventID, 1); err != nil {
			_ = e.registrations.Delete(ctx, eventID, userID)
			return nil, fmt.Errorf("increment registrations: %w", err)
		}
		return &model.RegistrationOutcome{
			Registration: *reg,
			Message:      "Successfully registered for event",
		}, nil

	case event.WaitlistEnabled:
		position := event.CurrentWaitlist + 1
		reg.Status = model.StatusWaitlisted
		reg.Position = &position
		if err := e.registrations.Put(ctx, reg); err != nil {
			return nil, fmt.Errorf("create registration: %w", err)
		}
		if err := e.events.IncrementWaitlist(ctx, eventID, 1); err != nil {
			_ = e.registrations.Delete(ctx, eventID, userID)
			return nil, fmt.Errorf("increment waitlist: %w", err)
		}
		return &model.RegistrationOutcome{
			Registration: *reg,
			Message:      fmt.Sprintf("Event is full. Added to waitlist at position %d", position),
		}, nil

	default:
		return nil, ErrEventFull
	}
}

// Unregister removes the (event, user) entry. Removing a registered entry
// frees a seat and promotes the earliest waitlisted entry; removing a
// waitlisted entry compacts the positions behind it. A second call on the
// same key fails with ErrNotRegistered rather than silently succeeding.
//
// As in Register, the entry delete and the counter decrement are separate
// store writes: if the decrement fails the engine re-creates the entry
// (best effort) so the counter does not drift ahead of the rows.
func (e *Engine) Unregister(ctx context.Context, eventID, userID string) error {
	mu := e.locks.get(eventID)
	mu.Lock()
	defer mu.Unlock()

	reg, err := e.registrations.Get(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotRegistered
		}
		return fmt.Errorf("get registration: %w", err)
	}

	if err := e.registrations.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	switch reg.Status {
	case model.StatusRegistered:
		if err := e.events.IncrementRegistrations(ctx, eventID, -1); err != nil {
			_ = e.registrations.Put(ctx, reg)
			return fmt.Errorf("decrement registrations: %w", err)
		}
		return e.promote(ctx, eventID)

	case model.StatusWaitlisted:
		if err := e.events.IncrementWaitlist(ctx, eventID, -1); err != nil {
			_ = e.registrations.Put(ctx, reg)
			return fmt.Errorf("decrement waitlist: %w", err)
		}
		pivot := 0
		if reg.Position != nil {
			pivot = *reg.Position
		}
		return e.compact(ctx, eventID, pivot)
	}
	return nil
}

// promote moves the minimum-position waitlisted entry to registered. A
// no-op when the waitlist is empty. Callers must hold the event's lock.
func (e *Engine) promote(ctx context.Context, eventID string) error {
	waiting, err := e.registrations.ListByEvent(ctx, eventID, model.StatusWaitlisted)
	if err != nil {
		return fmt.Errorf("list waitlist: %w", err)
	}
	if len(waiting) == 0 {
		return nil
	}

	first := waiting[0]
	for _, r := range waiting[1:] {
		if r.Position != nil && (first.Position == nil || *r.Position < *first.Position) {
			first = r
		}
	}

	if err := e.registrations.UpdateStatus(ctx, eventID, first.UserID, model.StatusRegistered, nil); err != nil {
		return fmt.Errorf("promote registration: %w", err)
	}
	if err := e.events.IncrementRegistrations(ctx, eventID, 1); err != nil {
		return fmt.Errorf("increment registrations: %w", err)
	}
	if err := e.events.IncrementWaitlist(ctx, eventID, -1); err != nil {
		return fmt.Errorf("decrement waitlist: %w", err)
	}

	pivot := 1
	if first.Position != nil {
		pivot = *first.Position
	}
	return e.compact(ctx, eventID, pivot)
}

// compact renumbers the event's waitlist after a removal at pivot: every
// entry with position > pivot shifts down by one, keeping the positions a
// dense 1..currentWaitlist range. Callers must hold the event's lock.
func (e *Engine) compact(ctx context.Context, eventID string, pivot int) error {
	if err := e.registrations.ShiftPositions(ctx, eventID, pivot); err != nil {
		return fmt.Errorf("compact waitlist: %w", err)
	}
	return nil
}
