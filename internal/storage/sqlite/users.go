package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/models"
)

// CreateUser inserts a new user row. Email uniqueness is enforced by the
// schema.
func (s *Store) CreateUser(ctx context.Context, email, name string) (models.User, error) {
	u := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO users(id, email, name, created_at) VALUES(?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		return models.User{}, &domain.StoreError{Op: "insert user", Err: err}
	}
	return u, nil
}

// UpsertUser inserts a user with a caller-chosen id, leaving an existing
// row untouched. Used by the demo seeder.
func (s *Store) UpsertUser(ctx context.Context, u models.User) (models.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO users(id, email, name, created_at) VALUES(?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		return models.User{}, &domain.StoreError{Op: "upsert user", Err: err}
	}
	return s.GetUser(ctx, u.ID)
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, email, name, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, &domain.NotFoundError{Kind: "user", ID: id}
	}
	if err != nil {
		return models.User{}, &domain.StoreError{Op: "get user", Err: err}
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, email, name, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, &domain.NotFoundError{Kind: "user", ID: email}
	}
	if err != nil {
		return models.User{}, &domain.StoreError{Op: "get user by email", Err: err}
	}
	return u, nil
}
