// Package store implements all database access for the event registration
// service. It uses pgx directly (no ORM) for transparency and performance.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflictingID is returned when a caller-supplied identifier is already
// taken.
var ErrConflictingID = errors.New("identifier already exists")

// ErrUnavailable is returned for infrastructure faults (timeouts, lost
// connections). Callers may retry with backoff; business logic must not
// confuse it with a domain rejection.
var ErrUnavailable = errors.New("store unavailable")

// wrapErr maps driver errors onto the store's two failure kinds. The
// underlying cause stays in the message for logs, but the only sentinels
// reachable through errors.Is are ErrNotFound and ErrUnavailable.
func wrapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}
