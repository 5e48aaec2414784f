package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/event-registration-service/internal/model"
)

// UserStore handles persistence for users.
type UserStore struct {
	db *pgxpool.Pool
}

// NewUserStore constructs a UserStore.
func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. A missing user ID gets a generated UUID;
// inserting an existing ID fails with ErrConflictingID.
func (s *UserStore) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	now := time.Now().UTC()
	user := &model.User{
		ID:        req.UserID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		user.ID, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, wrapErr("insert user", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrConflictingID
	}
	return user, nil
}

// List returns all users ordered by creation time descending.
func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, wrapErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list users", err)
	}
	return users, nil
}

// GetByID returns a single user or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	return &u, nil
}

// Update applies the non-nil fields of req and returns the updated user.
func (s *UserStore) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if req.Name == nil {
		return s.GetByID(ctx, id)
	}
	var u model.User
	err := s.db.QueryRow(ctx,
		`UPDATE users SET name = $2, updated_at = $3 WHERE id = $1
		 RETURNING id, name, created_at, updated_at`,
		id, *req.Name, time.Now().UTC(),
	).Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrapErr("update user", err)
	}
	return &u, nil
}

// Delete removes a user or returns ErrNotFound. Callers must unregister the
// user from all events first so event counters stay consistent.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
