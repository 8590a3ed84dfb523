package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Lookups(t *testing.T) {
	g := memory.NewGraph()
	g.AddQuestion(domain.Question{
		ID: "q1", Text: "first", Status: domain.StatusPublished,
		Answers: []domain.Answer{
			{ID: "a1", Text: "yes", Status: domain.StatusPublished},
			{ID: "a2", Text: "no", Status: domain.StatusDraft},
		},
	})
	g.AddProduct(domain.Product{ID: "p1", Name: "widget", Status: domain.StatusPublished})
	ctx := context.Background()

	q, err := g.Question(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, q.Answers, 2)

	a, err := g.Answer(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "q1", a.QuestionID, "owning question id is derived from the parent")

	_, err = g.Question(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = g.Answer(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownAnswer)

	_, err = g.Product(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGraph_AddRule_RejectsMalformed(t *testing.T) {
	g := memory.NewGraph()

	err := g.AddRule(domain.Rule{AnswerID: "a1"})
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	err = g.AddRule(domain.Rule{AnswerID: "a1", NextQuestionID: "q2", ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	require.NoError(t, g.AddRule(domain.Continue("a1", "q2")))

	// Uniqueness: at most one rule per answer.
	err = g.AddRule(domain.Recommend("a1", "p1"))
	assert.Error(t, err)
}

func TestGraph_Restrictions(t *testing.T) {
	g := memory.NewGraph()
	g.AddRestriction(domain.Restriction{AnswerID: "a1", ProductID: "p1"})
	g.AddRestriction(domain.Restriction{AnswerID: "a1", ProductID: "p2"})
	ctx := context.Background()

	restricted, err := g.RestrictedProducts(ctx, "a1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, restricted)

	none, err := g.RestrictedProducts(ctx, "a9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGraph_RuleForAnswer_Missing(t *testing.T) {
	g := memory.NewGraph()
	_, err := g.RuleForAnswer(context.Background(), "a1")
	assert.ErrorIs(t, err, domain.ErrMissingRule)
}
