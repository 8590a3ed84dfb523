package domain_test

import (
	"testing"

	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRule_Validate(t *testing.T) {
	assert.NoError(t, domain.Continue("a1", "q2").Validate())
	assert.NoError(t, domain.Recommend("a1", "p1").Validate())

	both := domain.Rule{AnswerID: "a1", NextQuestionID: "q2", ProductID: "p1"}
	assert.ErrorIs(t, both.Validate(), domain.ErrMalformedRule)

	neither := domain.Rule{AnswerID: "a1"}
	assert.ErrorIs(t, neither.Validate(), domain.ErrMalformedRule)
}

func TestRule_Terminal(t *testing.T) {
	assert.False(t, domain.Continue("a1", "q2").Terminal())
	assert.True(t, domain.Recommend("a1", "p1").Terminal())
}
