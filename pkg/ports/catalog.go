package ports

import (
	"context"

	"github.com/aretw0/vine/pkg/domain"
)

// Catalog is the read-only view over authored questions, answers, and
// products. The engine treats it as a black box; implementations decide how
// the data is stored.
type Catalog interface {
	// Question retrieves a question and its answers by id.
	// Returns domain.ErrQuestionNotFound if absent.
	Question(ctx context.Context, id string) (*domain.Question, error)

	// Answer retrieves a single answer by id, with its owning question id set.
	// Returns domain.ErrUnknownAnswer if absent.
	Answer(ctx context.Context, id string) (*domain.Answer, error)

	// Product retrieves a product by id.
	// Returns domain.ErrProductNotFound if absent.
	Product(ctx context.Context, id string) (*domain.Product, error)

	// Questions lists all questions in authored order. Used for start
	// question selection and graph introspection.
	Questions(ctx context.Context) ([]domain.Question, error)
}

// RuleTable resolves the transition rule attached to an answer.
type RuleTable interface {
	// RuleForAnswer returns the rule for the given answer id, or
	// domain.ErrMissingRule when no rule exists. At most one rule exists
	// per answer; enforcing that uniqueness is the implementation's job.
	RuleForAnswer(ctx context.Context, answerID string) (*domain.Rule, error)
}

// RestrictionTable resolves the product exclusions attached to an answer.
type RestrictionTable interface {
	// RestrictedProducts returns the set of product ids excluded from
	// recommendation once the given answer has been chosen. An answer with
	// no restrictions yields an empty slice, not an error.
	RestrictedProducts(ctx context.Context, answerID string) ([]string, error)
}
