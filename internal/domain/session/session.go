package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind the session cookie. It never holds credentials.
type Session struct {
	ID         string    `json:"id"`
	UserID     uint64    `json:"userId"`
	Role       string    `json:"role"`
	LastAccess time.Time `json:"lastAccess"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns ErrNotFound for unknown and expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	// Touch records an access and, when ttl > 0, pushes the expiry to now+ttl.
	Touch(ctx context.Context, s *Session, now time.Time, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	// Prune drops expired records and reports how many were removed.
	Prune(ctx context.Context, now time.Time) (int, error)
}
