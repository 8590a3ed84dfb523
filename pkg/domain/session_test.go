package domain_test

import (
	"testing"

	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSession_Append(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")

	err := s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
	assert.NoError(t, err)
	assert.Len(t, s.Steps, 1)

	// Appending for a question that is not current must be rejected.
	err = s.Append(domain.AnsweredStep{QuestionID: "q9", AnswerID: "a9"})
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
	assert.Len(t, s.Steps, 1)
}

func TestSession_TruncateAfter(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")
	_ = s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
	s.CurrentQuestionID = "q2"
	_ = s.Append(domain.AnsweredStep{QuestionID: "q2", AnswerID: "a2"})
	s.CurrentQuestionID = "q3"

	err := s.TruncateAfter("q2")
	assert.NoError(t, err)
	assert.Equal(t, []domain.AnsweredStep{{QuestionID: "q1", AnswerID: "a1"}}, s.Steps)
	assert.Equal(t, "q2", s.CurrentQuestionID)
}

func TestSession_TruncateAfter_Idempotent(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")
	_ = s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
	s.CurrentQuestionID = "q2"

	assert.NoError(t, s.TruncateAfter("q1"))
	first := append([]domain.AnsweredStep(nil), s.Steps...)

	// Second call is a no-op, not an error.
	assert.NoError(t, s.TruncateAfter("q1"))
	assert.Equal(t, first, s.Steps)
	assert.Equal(t, "q1", s.CurrentQuestionID)
}

func TestSession_TruncateAfter_NotFound(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")
	err := s.TruncateAfter("q404")
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
}

func TestSession_TruncateAfter_ClearsRecommendation(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")
	_ = s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
	s.CurrentQuestionID = ""
	s.Recommended = []string{"p1"}

	assert.NoError(t, s.TruncateAfter("q1"))
	assert.Nil(t, s.Recommended)
	assert.False(t, s.Terminated())
}

func TestSession_Clone(t *testing.T) {
	s := domain.NewSession("quiz-1", "q1")
	_ = s.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})

	c := s.Clone()
	c.Steps[0].AnswerID = "mutated"
	c.Recommended = append(c.Recommended, "p1")

	assert.Equal(t, "a1", s.Steps[0].AnswerID)
	assert.Empty(t, s.Recommended)
}
