package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/vine/pkg/domain"
)

// Graph is an in-memory quiz graph implementing ports.Catalog,
// ports.RuleTable, and ports.RestrictionTable. Safe for concurrent use.
// It backs tests, demos, and the file catalog loader.
type Graph struct {
	mu           sync.RWMutex
	questions    []domain.Question
	products     map[string]domain.Product
	rules        map[string]domain.Rule
	restrictions map[string][]string // answer id -> product ids
}

// NewGraph creates an empty in-memory quiz graph.
func NewGraph() *Graph {
	return &Graph{
		products:     make(map[string]domain.Product),
		rules:        make(map[string]domain.Rule),
		restrictions: make(map[string][]string),
	}
}

// AddQuestion registers a question and its answers. Authored order is kept.
func (g *Graph) AddQuestion(q domain.Question) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range q.Answers {
		q.Answers[i].QuestionID = q.ID
	}
	g.questions = append(g.questions, q)
}

// AddProduct registers a product.
func (g *Graph) AddProduct(p domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products[p.ID] = p
}

// AddRule registers the transition rule for an answer. It rejects malformed
// rules and duplicates at creation time, mirroring what a persistent rule
// table enforces on its write path.
func (g *Graph) AddRule(r domain.Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.rules[r.AnswerID]; exists {
		return fmt.Errorf("rule for answer %q already exists", r.AnswerID)
	}
	g.rules[r.AnswerID] = r
	return nil
}

// SetRule overwrites the rule for an answer without validation. Test-only
// back door for exercising the engine's malformed-rule handling.
func (g *Graph) SetRule(r domain.Rule) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rules[r.AnswerID] = r
}

// AddRestriction excludes a product once an answer has been chosen.
func (g *Graph) AddRestriction(r domain.Restriction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restrictions[r.AnswerID] = append(g.restrictions[r.AnswerID], r.ProductID)
}

// Question implements ports.Catalog.
func (g *Graph) Question(ctx context.Context, id string) (*domain.Question, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, q := range g.questions {
		if q.ID == id {
			c := q
			c.Answers = append([]domain.Answer(nil), q.Answers...)
			return &c, nil
		}
	}
	return nil, domain.ErrQuestionNotFound
}

// Answer implements ports.Catalog.
func (g *Graph) Answer(ctx context.Context, id string) (*domain.Answer, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, q := range g.questions {
		for _, a := range q.Answers {
			if a.ID == id {
				c := a
				return &c, nil
			}
		}
	}
	return nil, domain.ErrUnknownAnswer
}

// Product implements ports.Catalog.
func (g *Graph) Product(ctx context.Context, id string) (*domain.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// Questions implements ports.Catalog.
func (g *Graph) Questions(ctx context.Context) ([]domain.Question, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Question, len(g.questions))
	for i, q := range g.questions {
		out[i] = q
		out[i].Answers = append([]domain.Answer(nil), q.Answers...)
	}
	return out, nil
}

// RuleForAnswer implements ports.RuleTable.
func (g *Graph) RuleForAnswer(ctx context.Context, answerID string) (*domain.Rule, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rules[answerID]
	if !ok {
		return nil, domain.ErrMissingRule
	}
	return &r, nil
}

// RestrictedProducts implements ports.RestrictionTable.
func (g *Graph) RestrictedProducts(ctx context.Context, answerID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.restrictions[answerID]...), nil
}
