package ports

import (
	"context"

	"parley/pkg/domain"
)

// SessionStore persists session state between turns. Session state is
// memory-only currency: it never survives a process restart unless the
// deployment wires a shared backend (e.g. Redis) behind this interface.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}
