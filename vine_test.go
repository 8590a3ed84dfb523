package vine_test

import (
	"context"
	"testing"

	"github.com/aretw0/vine"
	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQuiz(t *testing.T) (*vine.Quiz, *memory.Graph) {
	t.Helper()
	g := memory.NewGraph()
	g.AddQuestion(domain.Question{
		ID: "q1", Text: "outdoors?", Status: domain.StatusPublished,
		Answers: []domain.Answer{
			{ID: "a1", Text: "yes", Status: domain.StatusPublished},
			{ID: "a2", Text: "no", Status: domain.StatusPublished},
		},
	})
	g.AddQuestion(domain.Question{
		ID: "q2", Text: "waterproof?", Status: domain.StatusPublished,
		Answers: []domain.Answer{
			{ID: "a3", Text: "yes", Status: domain.StatusPublished},
			{ID: "a4", Text: "no", Status: domain.StatusPublished},
		},
	})
	g.AddProduct(domain.Product{ID: "p1", Name: "dry bag", Status: domain.StatusPublished})
	g.AddProduct(domain.Product{ID: "p2", Name: "tote", Status: domain.StatusPublished})

	require.NoError(t, g.AddRule(domain.Continue("a1", "q2")))
	require.NoError(t, g.AddRule(domain.Recommend("a2", "p2")))
	require.NoError(t, g.AddRule(domain.Recommend("a3", "p1")))
	require.NoError(t, g.AddRule(domain.Recommend("a4", "p2")))

	return vine.New(g, g, g, memory.NewStore(), nil), g
}

func TestQuiz_FullWalk(t *testing.T) {
	quiz, _ := buildQuiz(t)
	ctx := context.Background()

	// First sight of the quiz id creates the session at the start question.
	view, err := quiz.CurrentQuestion(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "q1", view.Question.ID)

	view, err = quiz.Answer(ctx, "run-1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "q2", view.Question.ID)

	view, err = quiz.Answer(ctx, "run-1", "a3")
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "dry bag", view.Recommendations[0].Name)

	// State survives a re-read.
	view, err = quiz.CurrentQuestion(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	assert.Len(t, view.AnswersGiven, 2)
}

func TestQuiz_AnswerUnknownQuiz(t *testing.T) {
	quiz, _ := buildQuiz(t)

	// Answering never creates a session; only CurrentQuestion does.
	_, err := quiz.Answer(context.Background(), "never-seen", "a1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestQuiz_RewindAndReplay(t *testing.T) {
	quiz, _ := buildQuiz(t)
	ctx := context.Background()

	_, err := quiz.CurrentQuestion(ctx, "run-2")
	require.NoError(t, err)
	_, err = quiz.Answer(ctx, "run-2", "a1")
	require.NoError(t, err)
	original, err := quiz.Answer(ctx, "run-2", "a3")
	require.NoError(t, err)

	view, err := quiz.Rewind(ctx, "run-2", "q2")
	require.NoError(t, err)
	assert.Equal(t, "q2", view.Question.ID)
	assert.Equal(t, []domain.AnsweredStep{{QuestionID: "q1", AnswerID: "a1"}}, view.AnswersGiven)

	replayed, err := quiz.Answer(ctx, "run-2", "a3")
	require.NoError(t, err)
	assert.Equal(t, original.Recommendations, replayed.Recommendations)
	assert.Equal(t, original.AnswersGiven, replayed.AnswersGiven)
}

func TestQuiz_ErrorDoesNotPersist(t *testing.T) {
	quiz, _ := buildQuiz(t)
	ctx := context.Background()

	_, err := quiz.CurrentQuestion(ctx, "run-3")
	require.NoError(t, err)

	// a3 belongs to q2, current is q1.
	_, err = quiz.Answer(ctx, "run-3", "a3")
	assert.ErrorIs(t, err, domain.ErrMismatchedAnswer)

	view, err := quiz.CurrentQuestion(ctx, "run-3")
	require.NoError(t, err)
	assert.Equal(t, "q1", view.Question.ID)
	assert.Empty(t, view.AnswersGiven)
}

func TestQuiz_StartQuestionOptions(t *testing.T) {
	g := memory.NewGraph()
	g.AddQuestion(domain.Question{ID: "q0", Status: domain.StatusDraft})
	g.AddQuestion(domain.Question{ID: "q1", Status: domain.StatusPublished})
	g.AddQuestion(domain.Question{ID: "q2", Status: domain.StatusPublished})

	// Default: first published question in catalog order.
	quiz := vine.New(g, g, g, memory.NewStore(), nil)
	view, err := quiz.CurrentQuestion(context.Background(), "run-4")
	require.NoError(t, err)
	assert.Equal(t, "q1", view.Question.ID)

	// Pinned start question wins.
	pinned := vine.New(g, g, g, memory.NewStore(), nil, vine.WithStartQuestion("q2"))
	view, err = pinned.CurrentQuestion(context.Background(), "run-5")
	require.NoError(t, err)
	assert.Equal(t, "q2", view.Question.ID)
}
