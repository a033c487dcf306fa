package storage

import (
	"context"
	"errors"

	"github.com/xaenox/agenda-bot/internal/models"
)

var ErrStoreClosed = errors.New("session store is closed")

// SessionStore keeps the per-user event lists. Mutations for one user are
// serialized by WithLock; different users never block each other.
type SessionStore interface {
	// Get returns a snapshot of the user's session. An unknown user gets an
	// empty session, not an error.
	Get(ctx context.Context, userID string) (*models.UserSession, error)

	// WithLock runs fn with exclusive access to the user's session. Changes
	// fn makes to the session are committed only when fn returns nil.
	WithLock(ctx context.Context, userID string, fn func(*models.UserSession) error) error

	Close() error
}
