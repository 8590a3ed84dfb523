package runtime

import "github.com/aretw0/vine/pkg/domain"

// View is what the engine returns to its caller after every operation:
// either the question awaiting an answer, or the recommendation set of a
// terminated run, always together with the answers given so far.
type View struct {
	Question        *domain.Question      `json:"current_question,omitempty"`
	Recommendations []domain.Product      `json:"recommended_products,omitempty"`
	AnswersGiven    []domain.AnsweredStep `json:"answers_given"`
	Terminal        bool                  `json:"-"`
}
