// Package auth issues, validates, extends, and revokes the bearer tokens
// that gate every domain operation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/recordstore"
)

const (
	usersCollection  = "users"
	tokensCollection = "tokens"
)

var (
	// ErrUserNotFound indicates no account exists for the email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the password hash did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates an operation on a token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Manager is the session layer over the record store.
type Manager struct {
	store  *recordstore.Store
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a session manager hashing with secret and issuing tokens
// valid for ttl.
func NewManager(store *recordstore.Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// HashPassword hashes a plaintext password under the manager's secret.
func (m *Manager) HashPassword(password string) string {
	return HashPassword(m.secret, password)
}

// IssueToken authenticates the email/password pair and persists a fresh
// token valid for the configured TTL.
func (m *Manager) IssueToken(ctx context.Context, email, password string) (models.Token, error) {
	var user models.User
	if err := m.store.Read(ctx, usersCollection, email, &user); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return models.Token{}, ErrUserNotFound
		}
		return models.Token{}, fmt.Errorf("read user: %w", err)
	}
	if user.HashedPassword == "" || user.HashedPassword != m.HashPassword(password) {
		return models.Token{}, ErrInvalidCredentials
	}

	token := models.Token{
		ID:        NewTokenID(),
		Email:     email,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.store.Create(ctx, tokensCollection, token.ID, token); err != nil {
		return models.Token{}, fmt.Errorf("persist token: %w", err)
	}
	return token, nil
}

// Lookup returns the stored token record regardless of its expiry.
func (m *Manager) Lookup(ctx context.Context, id string) (models.Token, error) {
	var token models.Token
	if err := m.store.Read(ctx, tokensCollection, id, &token); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

// VerifyOwnership reports whether the token exists, belongs to email, and is
// unexpired. This is the strict check used where a caller claims a specific
// identity.
func (m *Manager) VerifyOwnership(ctx context.Context, id, email string) bool {
	token, err := m.Lookup(ctx, id)
	if err != nil {
		return false
	}
	return token.Email == email && token.Live(m.now())
}

// VerifyLive returns the token iff it exists and is unexpired. Identity is
// derived from the token itself; this is the primitive behind every
// "logged in" operation.
func (m *Manager) VerifyLive(ctx context.Context, id string) (models.Token, bool) {
	token, err := m.Lookup(ctx, id)
	if err != nil || !token.Live(m.now()) {
		return models.Token{}, false
	}
	return token, true
}

// Extend renews a live token for another TTL from now. Extending an expired
// token fails with ErrTokenExpired; it is not silently revived.
func (m *Manager) Extend(ctx context.Context, id string) (models.Token, error) {
	token, err := m.Lookup(ctx, id)
	if err != nil {
		return models.Token{}, err
	}
	if !token.Live(m.now()) {
		return models.Token{}, ErrTokenExpired
	}
	token.ExpiresAt = m.now().Add(m.ttl)
	if err := m.store.Update(ctx, tokensCollection, id, token); err != nil {
		return models.Token{}, fmt.Errorf("update token: %w", err)
	}
	return token, nil
}

// Revoke deletes the token record.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	return m.store.Delete(ctx, tokensCollection, id)
}
