package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
)

// RegistrationStore handles persistence for registration entries, keyed by
// (event_id, user_id) with a secondary index on user_id.
type RegistrationStore struct {
	db *pgxpool.Pool
}

// NewRegistrationStore constructs a RegistrationStore.
func NewRegistrationStore(db *pgxpool.Pool) *RegistrationStore {
	return &RegistrationStore{db: db}
}

// Get returns the entry for (eventID, userID) or ErrNotFound.
func (s *RegistrationStore) Get(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	var r model.Registration
	err := s.db.QueryRow(ctx,
		`SELECT event_id, user_id, status, position, registered_at
		 FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&r.EventID, &r.UserID, &r.Status, &r.Position, &r.RegisteredAt)
	if err != nil {
		return nil, wrapErr("get registration", err)
	}
	r.ID = model.RegistrationID(r.EventID, r.UserID)
	return &r, nil
}

// Put inserts a new registration entry.
func (s *RegistrationStore) Put(ctx context.Context, reg *model.Registration) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO registrations (event_id, user_id, status, position, registered_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		reg.EventID, reg.UserID, reg.Status, reg.Position, reg.RegisteredAt,
	)
	if err != nil {
		return wrapErr("insert registration", err)
	}
	return nil
}

// Delete removes the entry for (eventID, userID) or returns ErrNotFound.
func (s *RegistrationStore) Delete(ctx context.Context, eventID, userID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return wrapErr("delete registration", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus rewrites an entry's status and position. Position must be nil
// for registered entries.
func (s *RegistrationStore) UpdateStatus(ctx context.Context, eventID, userID, status string, position *int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE registrations SET status = $3, position = $4
		 WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, status, position,
	)
	if err != nil {
		return wrapErr("update registration", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEvent returns an event's entries, optionally filtered by status.
// Waitlisted entries sort by position; registered ones by admission time.
func (s *RegistrationStore) ListByEvent(ctx context.Context, eventID, status string) ([]model.Registration, error) {
	query := `SELECT event_id, user_id, status, position, registered_at
		 FROM registrations WHERE event_id = $1`
	args := []any{eventID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY position ASC NULLS FIRST, registered_at ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list registrations by event", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ListByUser returns every entry a user holds, via the user_id index.
func (s *RegistrationStore) ListByUser(ctx context.Context, userID string) ([]model.Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT event_id, user_id, status, position, registered_at
		 FROM registrations WHERE user_id = $1 ORDER BY registered_at ASC`,
		userID,
	)
	if err != nil {
		return nil, wrapErr("list registrations by user", err)
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ShiftPositions decrements the position of every waitlisted entry for the
// event with position > pivot, in one batch statement. This is the
// compaction primitive; it is O(waitlist size) on the store side.
func (s *RegistrationStore) ShiftPositions(ctx context.Context, eventID string, pivot int) error {
	_, err := s.db.Exec(ctx,
		`UPDATE registrations SET position = position - 1
		 WHERE event_id = $1 AND status = $2 AND position > $3`,
		eventID, model.StatusWaitlisted, pivot,
	)
	if err != nil {
		return wrapErr("shift waitlist positions", err)
	}
	return nil
}

func scanRegistrations(rows pgx.Rows) ([]model.Registration, error) {
	var regs []model.Registration
	for rows.Next() {
		var r model.Registration
		if err := rows.Scan(&r.EventID, &r.UserID, &r.Status, &r.Position, &r.RegisteredAt); err != nil {
			return nil, wrapErr("scan registration", err)
		}
		r.ID = model.RegistrationID(r.EventID, r.UserID)
		regs = append(regs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list registrations", err)
	}
	return regs, nil
}
