// Package auth is the session provider: it issues, resolves and revokes
// opaque session tokens. The access gate only checks token presence;
// full validation happens here, lazily, when a handler needs the caller's
// identity. Credential storage and password hashing are out of scope.
package auth

import (
	"context"
	"time"

	"taskify/internal/domain"
	"taskify/internal/models"
	"taskify/internal/storage/sqlite"
)

// Provider is the session collaborator consumed by the server: it signs
// users in and out and resolves session evidence to an authenticated
// session.
type Provider interface {
	SignIn(ctx context.Context, email string) (models.Session, error)
	SignUp(ctx context.Context, email, name string) (models.Session, error)
	Resolve(ctx context.Context, token string) (models.Session, error)
	Revoke(ctx context.Context, token string) error
}

// SessionProvider is the sqlite-backed Provider used by the server.
type SessionProvider struct {
	store *sqlite.Store
	ttl   time.Duration
}

var _ Provider = (*SessionProvider)(nil)

// NewSessionProvider constructs a provider issuing tokens valid for ttl.
func NewSessionProvider(store *sqlite.Store, ttl time.Duration) *SessionProvider {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &SessionProvider{store: store, ttl: ttl}
}

// SignIn issues a session for the user registered under email.
func (p *SessionProvider) SignIn(ctx context.Context, email string) (models.Session, error) {
	user, err := p.store.GetUserByEmail(ctx, email)
	if err != nil {
		return models.Session{}, err
	}
	return p.store.CreateSession(ctx, user.ID, p.ttl)
}

// SignUp registers a new user and signs them in.
func (p *SessionProvider) SignUp(ctx context.Context, email, name string) (models.Session, error) {
	if email == "" {
		return models.Session{}, &domain.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	user, err := p.store.CreateUser(ctx, email, name)
	if err != nil {
		return models.Session{}, err
	}
	return p.store.CreateSession(ctx, user.ID, p.ttl)
}

// Resolve validates a token and returns its session. Expired tokens are
// revoked on sight and reported as not found.
func (p *SessionProvider) Resolve(ctx context.Context, token string) (models.Session, error) {
	sess, err := p.store.GetSession(ctx, token)
	if err != nil {
		return models.Session{}, err
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = p.store.DeleteSession(ctx, token)
		return models.Session{}, &domain.NotFoundError{Kind: "session", ID: token}
	}
	return sess, nil
}

// Revoke drops a session token.
func (p *SessionProvider) Revoke(ctx context.Context, token string) error {
	return p.store.DeleteSession(ctx, token)
}
