package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager orchestrates session access, serializing all operations on one
// quiz id. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides the distributed lock TTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Session Manager over the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(quizID) after unlocking.
func (m *Manager) acquire(quizID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[quizID]
	if !exists {
		entry = &lockEntry{}
		m.locks[quizID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(quizID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[quizID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, quizID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, quizID string) (*domain.Session, error) {
	var session *domain.Session
	err := m.WithLock(ctx, quizID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, quizID)
		return err
	})
	return session, err
}

// LoadOrStart tries to load a session. If not found, it seeds a fresh run at
// the given start question and persists it immediately to reserve the id.
func (m *Manager) LoadOrStart(ctx context.Context, quizID, startQuestionID string) (*domain.Session, error) {
	var session *domain.Session
	err := m.WithLock(ctx, quizID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, quizID)
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		session = domain.NewSession(quizID, startQuestionID)
		if err := m.store.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return session, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, session *domain.Session) error {
	return m.WithLock(ctx, session.QuizID, func(ctx context.Context) error {
		return m.store.Save(ctx, session)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, quizID string) error {
	return m.WithLock(ctx, quizID, func(ctx context.Context) error {
		return m.store.Delete(ctx, quizID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes fn while holding the per-quiz lock, so the whole
// read-decide-persist sequence of an advance or rewind is single-writer.
// The lock is released on every exit path.
func (m *Manager) WithLock(ctx context.Context, quizID string, fn func(context.Context) error) error {
	entry := m.acquire(quizID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(quizID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, quizID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"quiz_id", quizID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
