package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/models"
)

// CreateSession issues a new session token for a user.
func (s *Store) CreateSession(ctx context.Context, userID string, ttl time.Duration) (models.Session, error) {
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now().Add(ttl),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO sessions(token, user_id, expires_at) VALUES(?, ?, ?)`,
		sess.Token, sess.UserID, sess.ExpiresAt)
	if err != nil {
		return models.Session{}, &domain.StoreError{Op: "insert session", Err: err}
	}
	return sess, nil
}

// GetSession resolves a token to its session row.
func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRowContext(ctx, `SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token).
		Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, &domain.NotFoundError{Kind: "session", ID: token}
	}
	if err != nil {
		return models.Session{}, &domain.StoreError{Op: "get session", Err: err}
	}
	return sess, nil
}

// DeleteSession revokes a token. Revoking an unknown token is not an
// error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return &domain.StoreError{Op: "delete session", Err: err}
	}
	return nil
}
