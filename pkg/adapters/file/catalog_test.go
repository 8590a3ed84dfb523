package file_test

import (
	"context"
	"testing"

	"github.com/aretw0/vine/pkg/adapters/file"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
start_question: q1
questions:
  - id: q1
    text: "need it rugged?"
    status: published
    answers:
      - {id: a1, text: "yes", status: published}
      - {id: a2, text: "no", status: published}
  - id: q2
    text: "big or small?"
    status: published
    answers:
      - {id: a3, text: "big", status: published}
products:
  - {id: p1, name: "tank", status: published}
rules:
  - {answer: a1, next_question: q2}
  - {answer: a2, product: p1}
  - {answer: a3, product: p1}
restrictions:
  - {answer: a1, product: p1}
`

func TestParse(t *testing.T) {
	graph, start, err := file.Parse([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, "q1", start)
	ctx := context.Background()

	q, err := graph.Question(ctx, "q1")
	require.NoError(t, err)
	assert.Len(t, q.Answers, 2)

	a, err := graph.Answer(ctx, "a3")
	require.NoError(t, err)
	assert.Equal(t, "q2", a.QuestionID)

	rule, err := graph.RuleForAnswer(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, rule.Terminal())
	assert.Equal(t, "p1", rule.ProductID)

	restricted, err := graph.RestrictedProducts(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, restricted)
}

func TestParse_RejectsMalformedRule(t *testing.T) {
	bad := `
questions:
  - id: q1
    status: published
    answers:
      - {id: a1, status: published}
rules:
  - {answer: a1}
`
	_, _, err := file.Parse([]byte(bad))
	assert.ErrorIs(t, err, domain.ErrMalformedRule)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := file.Parse([]byte("questions: ["))
	assert.Error(t, err)
}
