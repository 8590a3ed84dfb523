package vine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/internal/metrics"
	"github.com/aretw0/vine/internal/runtime"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
	"github.com/aretw0/vine/pkg/session"
)

// Version is the vine release version.
var Version = "0.3.0"

// View is the caller-facing state of a run after any operation.
type View = runtime.View

// Quiz is the high-level entry point for the vine library. It wires the
// traversal engine to a session manager so every operation is a locked
// load-decide-persist sequence keyed by quiz id.
type Quiz struct {
	engine   *runtime.Engine
	sessions *session.Manager
	catalog  ports.Catalog
	start    string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option defines a functional option for configuring the Quiz.
type Option func(*Quiz)

// WithLogger sets the logger used by the engine and session manager.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Quiz) {
		q.logger = logger
	}
}

// WithStartQuestion pins the question a fresh session starts at. Without it,
// the first published question in catalog order wins.
func WithStartQuestion(questionID string) Option {
	return func(q *Quiz) {
		q.start = questionID
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(q *Quiz) {
		q.metrics = m
	}
}

// New creates a Quiz over the given collaborators. locker may be nil for
// single-replica deployments; the in-process per-quiz mutex still applies.
func New(catalog ports.Catalog, rules ports.RuleTable, restrictions ports.RestrictionTable,
	store ports.SessionStore, locker ports.DistributedLocker, opts ...Option) *Quiz {

	q := &Quiz{
		catalog: catalog,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}

	q.engine = runtime.NewEngine(catalog, rules, restrictions, runtime.WithLogger(q.logger))

	managerOpts := []session.Option{session.WithLogger(q.logger)}
	if locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(locker))
	}
	q.sessions = session.NewManager(store, managerOpts...)

	return q
}

// Sessions exposes the session manager for administrative tooling.
func (q *Quiz) Sessions() *session.Manager {
	return q.sessions
}

// CurrentQuestion returns the current state of a run, creating the session
// at the start question when the quiz id has not been seen before.
func (q *Quiz) CurrentQuestion(ctx context.Context, quizID string) (*View, error) {
	start, err := q.startQuestion(ctx)
	if err != nil {
		return nil, err
	}

	var view *View
	err = q.sessions.WithLock(ctx, quizID, func(ctx context.Context) error {
		sess, err := q.sessions.Store().Load(ctx, quizID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			sess = domain.NewSession(quizID, start)
			if err := q.sessions.Store().Save(ctx, sess); err != nil {
				return fmt.Errorf("failed to initialize session: %w", err)
			}
			if q.metrics != nil {
				q.metrics.SessionsStarted.Inc()
			}
			q.logger.Info("session started", "quiz_id", quizID, "start", start)
		} else if err != nil {
			return err
		}

		view, err = q.engine.CurrentState(ctx, sess)
		return err
	})
	return view, err
}

// Answer advances the run by one step. The session must already exist; the
// whole read-decide-persist sequence runs under the per-quiz lock, and
// nothing is persisted when the engine rejects the answer.
func (q *Quiz) Answer(ctx context.Context, quizID, answerID string) (*View, error) {
	var view *View
	err := q.sessions.WithLock(ctx, quizID, func(ctx context.Context) error {
		sess, err := q.sessions.Store().Load(ctx, quizID)
		if err != nil {
			return err
		}

		view, err = q.engine.Advance(ctx, sess, answerID)
		if err != nil {
			if q.metrics != nil {
				q.metrics.AdvancesTotal.WithLabelValues(metrics.OutcomeError).Inc()
			}
			return err
		}

		if err := q.sessions.Store().Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}

		if q.metrics != nil {
			if view.Terminal {
				q.metrics.AdvancesTotal.WithLabelValues(metrics.OutcomeTerminated).Inc()
				q.metrics.RecommendationSize.Observe(float64(len(view.Recommendations)))
			} else {
				q.metrics.AdvancesTotal.WithLabelValues(metrics.OutcomeContinued).Inc()
			}
		}
		return nil
	})
	return view, err
}

// Rewind truncates the run back to a previously answered question.
func (q *Quiz) Rewind(ctx context.Context, quizID, questionID string) (*View, error) {
	var view *View
	err := q.sessions.WithLock(ctx, quizID, func(ctx context.Context) error {
		sess, err := q.sessions.Store().Load(ctx, quizID)
		if err != nil {
			return err
		}

		view, err = q.engine.Rewind(ctx, sess, questionID)
		if err != nil {
			return err
		}

		if err := q.sessions.Store().Save(ctx, sess); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}

		if q.metrics != nil {
			q.metrics.RewindsTotal.Inc()
		}
		return nil
	})
	return view, err
}

// StartQuestion reports where a fresh run would begin.
func (q *Quiz) StartQuestion(ctx context.Context) (string, error) {
	return q.startQuestion(ctx)
}

// startQuestion resolves where a fresh run begins: the configured start
// question, or the first published question in catalog order.
func (q *Quiz) startQuestion(ctx context.Context) (string, error) {
	if q.start != "" {
		return q.start, nil
	}

	questions, err := q.catalog.Questions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start question: %w", err)
	}
	for _, question := range questions {
		if question.Published() {
			return question.ID, nil
		}
	}
	return "", fmt.Errorf("no published question to start at: %w", domain.ErrQuestionNotFound)
}
