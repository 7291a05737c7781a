package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/rosary/internal/devotion"
	"github.com/abhisek/rosary/internal/store"
)

// History reads and prunes finished sessions.
type History struct {
	sessions store.SessionRepo
	logger   *slog.Logger
}

// NewHistory returns a History backed by sessions.
func NewHistory(sessions store.SessionRepo, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &History{sessions: sessions, logger: logger}
}

// ListFinished returns finished sessions, most recent first. A limit of 0
// returns all of them.
func (h *History) ListFinished(ctx context.Context, limit int) ([]devotion.Session, error) {
	out, err := h.sessions.ListFinished(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return out, nil
}

// Remove deletes a session and reports success.
func (h *History) Remove(ctx context.Context, id int64) bool {
	if err := h.sessions.Delete(ctx, id); err != nil {
		h.logger.Warn("delete session failed", "session_id", id, "error", err)
		return false
	}
	return true
}
