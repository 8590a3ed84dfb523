package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
)

// Engine is the core traversal state machine. It is stateless: every call
// receives the session it operates on and mutates it only on success, so a
// failed request leaves the run exactly where it was.
type Engine struct {
	catalog      ports.Catalog
	rules        ports.RuleTable
	restrictions ports.RestrictionTable
	logger       *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over the given collaborators.
func NewEngine(catalog ports.Catalog, rules ports.RuleTable, restrictions ports.RestrictionTable, opts ...Option) *Engine {
	e := &Engine{
		catalog:      catalog,
		rules:        rules,
		restrictions: restrictions,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Advance processes one answer selection: it validates the answer against
// the session's current question, resolves the transition rule, and either
// moves the run to the next question or terminates it with a filtered
// recommendation set. The session is appended to and repositioned only after
// every validation has passed; on error it is returned unmodified.
func (e *Engine) Advance(ctx context.Context, session *domain.Session, answerID string) (*View, error) {
	if session.Terminated() {
		return nil, domain.ErrQuizComplete
	}

	answer, err := e.catalog.Answer(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("resolve answer %q: %w", answerID, err)
	}

	question, err := e.catalog.Question(ctx, answer.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("resolve question %q: %w", answer.QuestionID, err)
	}
	if !answer.Published() || !question.Published() {
		return nil, fmt.Errorf("answer %q: %w", answerID, domain.ErrInactiveAnswer)
	}

	if answer.QuestionID != session.CurrentQuestionID {
		return nil, fmt.Errorf("answer %q belongs to %q, current is %q: %w",
			answerID, answer.QuestionID, session.CurrentQuestionID, domain.ErrMismatchedAnswer)
	}

	rule, err := e.rules.RuleForAnswer(ctx, answerID)
	if err != nil {
		return nil, fmt.Errorf("resolve rule for answer %q: %w", answerID, err)
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("rule for answer %q: %w", answerID, err)
	}

	step := domain.AnsweredStep{QuestionID: question.ID, AnswerID: answerID}

	if rule.Terminal() {
		products, err := e.recommend(ctx, session, step, rule.ProductID)
		if err != nil {
			return nil, err
		}
		if err := session.Append(step); err != nil {
			return nil, err
		}
		session.CurrentQuestionID = ""
		session.Recommended = productIDs(products)

		e.logger.Debug("quiz terminated",
			"quiz_id", session.QuizID,
			"steps", len(session.Steps),
			"recommended", len(products),
		)
		return &View{
			Recommendations: products,
			AnswersGiven:    session.Steps,
			Terminal:        true,
		}, nil
	}

	next, err := e.catalog.Question(ctx, rule.NextQuestionID)
	if err != nil {
		return nil, fmt.Errorf("resolve next question %q: %w", rule.NextQuestionID, err)
	}
	if !next.Published() {
		return nil, fmt.Errorf("next question %q: %w", next.ID, domain.ErrInactiveQuestion)
	}

	if err := session.Append(step); err != nil {
		return nil, err
	}
	session.CurrentQuestionID = next.ID

	e.logger.Debug("advanced",
		"quiz_id", session.QuizID,
		"from", question.ID,
		"to", next.ID,
	)
	return &View{
		Question:     next,
		AnswersGiven: session.Steps,
	}, nil
}

// Rewind truncates the session's history back to a previously answered
// question and resets the position there. It is a pure log truncation, valid
// from both the awaiting and the terminated state, and idempotent.
func (e *Engine) Rewind(ctx context.Context, session *domain.Session, questionID string) (*View, error) {
	if err := session.TruncateAfter(questionID); err != nil {
		return nil, fmt.Errorf("rewind to %q: %w", questionID, err)
	}

	e.logger.Debug("rewound",
		"quiz_id", session.QuizID,
		"to", questionID,
		"steps", len(session.Steps),
	)
	return e.CurrentState(ctx, session)
}

// CurrentState assembles the caller-facing view of a session without
// advancing it: the current question with its answers, or the recommendation
// set when the run has terminated. Recommended ids are re-resolved through
// the catalog so products disabled after termination drop out of the view.
func (e *Engine) CurrentState(ctx context.Context, session *domain.Session) (*View, error) {
	if session.Terminated() {
		products := make([]domain.Product, 0, len(session.Recommended))
		for _, id := range session.Recommended {
			p, err := e.catalog.Product(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("resolve recommended product %q: %w", id, err)
			}
			if p.Published() {
				products = append(products, *p)
			}
		}
		return &View{
			Recommendations: products,
			AnswersGiven:    session.Steps,
			Terminal:        true,
		}, nil
	}

	question, err := e.catalog.Question(ctx, session.CurrentQuestionID)
	if err != nil {
		return nil, fmt.Errorf("resolve current question %q: %w", session.CurrentQuestionID, err)
	}
	return &View{
		Question:     question,
		AnswersGiven: session.Steps,
	}, nil
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
