package ports

import (
	"context"

	"github.com/aretw0/vine/pkg/domain"
)

// SessionStore defines the interface for persisting quiz runs. Every
// mutation in the engine persists synchronously through this interface
// before the response is returned, so the stored and in-memory views never
// diverge across a crash.
type SessionStore interface {
	// Save persists the session under its quiz id.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session for a quiz id.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, quizID string) (*domain.Session, error)

	// Delete removes the session for a quiz id.
	Delete(ctx context.Context, quizID string) error

	// List returns the quiz ids of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
