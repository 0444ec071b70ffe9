package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/recordstore"
)

const testSecret = "test-secret"

func newTestManager(t *testing.T) (*Manager, *recordstore.Store) {
	t.Helper()
	store := recordstore.New(t.TempDir())
	return NewManager(store, testSecret, time.Hour), store
}

func seedUser(t *testing.T, m *Manager, store *recordstore.Store, email, password string) {
	t.Helper()
	user := models.User{
		Name:           "Jo",
		Email:          email,
		HashedPassword: m.HashPassword(password),
		StreetAddress:  "1 Rd",
	}
	require.NoError(t, store.Create(context.Background(), "users", email, user))
}

func TestHashPasswordDeterministic(t *testing.T) {
	a := HashPassword("secret", "pw")
	b := HashPassword("secret", "pw")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashPassword("other", "pw"))
	assert.NotEqual(t, a, HashPassword("secret", "pw2"))
}

func TestNewTokenIDShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]{20}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, NewTokenID())
	}
}

func TestIssueToken(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)
	assert.Len(t, token.ID, 20)
	assert.Equal(t, "jo@x.com", token.Email)
	assert.True(t, token.Live(time.Now()))

	stored, err := m.Lookup(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, token.ID, stored.ID)
}

func TestIssueTokenWrongPassword(t *testing.T) {
	m, store := newTestManager(t)
	seedUser(t, m, store, "jo@x.com", "pw")

	_, err := m.IssueToken(context.Background(), "jo@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.IssueToken(context.Background(), "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyOwnership(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)

	assert.True(t, m.VerifyOwnership(ctx, token.ID, "jo@x.com"))
	assert.False(t, m.VerifyOwnership(ctx, token.ID, "mallory@x.com"))
	assert.False(t, m.VerifyOwnership(ctx, "nosuchtoken0000000000", "jo@x.com"))
}

func TestVerifyLive(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)

	got, ok := m.VerifyLive(ctx, token.ID)
	require.True(t, ok)
	assert.Equal(t, "jo@x.com", got.Email)

	// Advance past expiry: the record still exists but the token is dead.
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, ok = m.VerifyLive(ctx, token.ID)
	assert.False(t, ok)
	_, err = m.Lookup(ctx, token.ID)
	assert.NoError(t, err, "expired tokens are not purged eagerly")
}

func TestExtend(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(30 * time.Minute) }
	extended, err := m.Extend(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, extended.ExpiresAt.After(token.ExpiresAt))
	assert.Equal(t, token.Email, extended.Email)
}

func TestExtendExpiredFails(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)

	m.now = func() time.Time { return token.ExpiresAt }
	_, err = m.Extend(ctx, token.ID)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevoke(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()
	seedUser(t, m, store, "jo@x.com", "pw")

	token, err := m.IssueToken(ctx, "jo@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, token.ID))
	_, err = m.Lookup(ctx, token.ID)
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
	assert.ErrorIs(t, m.Revoke(ctx, token.ID), recordstore.ErrNotFound)
}
