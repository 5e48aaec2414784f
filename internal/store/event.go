package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
)

const eventColumns = `id, title, description, date, location, organizer, status,
	capacity, waitlist_enabled, current_registrations, current_waitlist, created_at`

// EventStore handles persistence for events.
type EventStore struct {
	db *pgxpool.Pool
}

// NewEventStore constructs an EventStore.
func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.Organizer, &e.Status, &e.Capacity, &e.WaitlistEnabled,
		&e.CurrentRegistrations, &e.CurrentWaitlist, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event with counters initialised to zero. A missing
// event ID gets a generated UUID; inserting an existing ID fails with
// ErrConflictingID.
func (s *EventStore) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		ID:              req.EventID,
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Location:        req.Location,
		Organizer:       req.Organizer,
		Status:          req.Status,
		Capacity:        req.Capacity,
		WaitlistEnabled: req.WaitlistEnabled,
		CreatedAt:       time.Now().UTC(),
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO events (id, title, description, date, location, organizer, status,
			capacity, waitlist_enabled, current_registrations, current_waitlist, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, $10)
		 ON CONFLICT (id) DO NOTHING`,
		event.ID, event.Title, event.Description, event.Date, event.Location,
		event.Organizer, event.Status, event.Capacity, event.WaitlistEnabled, event.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr("insert event", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrConflictingID
	}
	return event, nil
}

// List returns all events ordered by creation time descending, optionally
// filtered by status.
func (s *EventStore) List(ctx context.Context, status string) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list events", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrapErr("scan event", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list events", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (s *EventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(s.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get event", err)
	}
	return e, nil
}

// Update applies the non-nil fields of req and returns the updated event.
// The registration counters are never touched here; they belong to the
// registration engine.
func (s *EventStore) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	sets := make([]string, 0, 7)
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Organizer != nil {
		add("organizer", *req.Organizer)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.Capacity != nil {
		add("capacity", *req.Capacity)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}

	query := `UPDATE events SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + eventColumns
	e, err := scanEvent(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapErr("update event", err)
	}
	return e, nil
}

// Delete removes an event or returns ErrNotFound.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementRegistrations atomically adjusts current_registrations by delta
// (+1 or -1).
func (s *EventStore) IncrementRegistrations(ctx context.Context, id string, delta int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE events SET current_registrations = current_registrations + $2 WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return wrapErr("increment registrations", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementWaitlist atomically adjusts current_waitlist by delta (+1 or -1).
func (s *EventStore) IncrementWaitlist(ctx context.Context, id string, delta int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE events SET current_waitlist = current_waitlist + $2 WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return wrapErr("increment waitlist", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
