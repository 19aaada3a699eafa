// Package auth implements server-side sessions keyed by opaque tokens.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driveeasy/booking-service/internal/models"
)

// DefaultTTL is the absolute session lifetime.
const DefaultTTL = 24 * time.Hour

// SessionData is the identity snapshot bound to a token at login. Role is
// the value captured at login time; a later role change in the credential
// store is not reflected until the user logs in again.
type SessionData struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
}

// Store persists session state against opaque tokens.
type Store interface {
	Set(ctx context.Context, token string, data SessionData, ttl time.Duration) error
	Get(ctx context.Context, token string) (SessionData, bool, error)
	Delete(ctx context.Context, token string) error
}

// Manager issues, validates and destroys sessions.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl}
}

// Create persists data under a freshly generated token. The token is only
// returned once the store write has succeeded; callers must not report a
// successful login before that.
func (m *Manager) Create(ctx context.Context, data SessionData) (string, error) {
	token := uuid.NewString()
	if err := m.store.Set(ctx, token, data, m.ttl); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	return token, nil
}

// Regenerate destroys the previously presented token (if any) and creates a
// fresh session, blocking session fixation across logins.
func (m *Manager) Regenerate(ctx context.Context, oldToken string, data SessionData) (string, error) {
	if oldToken != "" {
		if err := m.store.Delete(ctx, oldToken); err != nil {
			return "", fmt.Errorf("failed to invalidate previous session: %w", err)
		}
	}
	return m.Create(ctx, data)
}

// Get resolves a token to its session data; ok is false when the token is
// unknown or expired.
func (m *Manager) Get(ctx context.Context, token string) (SessionData, bool, error) {
	if token == "" {
		return SessionData{}, false, nil
	}
	return m.store.Get(ctx, token)
}

// Destroy removes all state for a token. The caller is responsible for
// clearing the client-held cookie.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// TTL exposes the configured session lifetime for cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
