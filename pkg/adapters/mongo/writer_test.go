package mongo

import (
	"context"
	"testing"

	"github.com/aretw0/vine/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestUpsertRule_RejectsMalformed(t *testing.T) {
	// Validation runs before any collection access, so a bare Catalog is
	// enough to pin the creation-time guard.
	c := &Catalog{}

	err := c.UpsertRule(context.Background(), domain.Rule{
		AnswerID:       "a1",
		NextQuestionID: "q2",
		ProductID:      "p1",
	})
	assert.ErrorIs(t, err, domain.ErrMalformedRule)

	err = c.UpsertRule(context.Background(), domain.Rule{AnswerID: "a1"})
	assert.ErrorIs(t, err, domain.ErrMalformedRule)
}
