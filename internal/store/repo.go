package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/rosary/internal/devotion"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures session listings.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// SessionRepo persists devotion sessions.
type SessionRepo interface {
	// List returns sessions, most recent first.
	List(ctx context.Context, opts QueryOpts) ([]devotion.Session, error)

	// ListFinished returns sessions with a stop time, most recent first.
	ListFinished(ctx context.Context, opts QueryOpts) ([]devotion.Session, error)

	// Get returns the session with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (devotion.Session, error)

	// Create inserts a new session and returns its id. Rows beyond the
	// retention bound are evicted oldest-first in the same transaction.
	Create(ctx context.Context, s devotion.Session) (int64, error)

	// Finish records the stop time of a session.
	Finish(ctx context.Context, id int64, stop time.Time) error

	// Delete removes one session, or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// DeleteUnfinished removes every session without a stop time and
	// reports how many were removed.
	DeleteUnfinished(ctx context.Context) (int64, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int, error)
}

// SettingsRepo is a small string key-value store.
type SettingsRepo interface {
	// Get returns the value and whether the key was set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
