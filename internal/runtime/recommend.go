package runtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/vine/pkg/domain"
)

// recommend computes the recommendation set for a terminating step. The
// candidate set is the rule's product target; every restriction attached to
// any answer in the history (including the terminating answer) excludes its
// product. A restriction can empty the set entirely, in which case the empty
// set is surfaced rather than worked around. Results are ordered by product
// id ascending for determinism.
func (e *Engine) recommend(ctx context.Context, session *domain.Session, final domain.AnsweredStep, candidateID string) ([]domain.Product, error) {
	excluded := make(map[string]struct{})
	answerIDs := make([]string, 0, len(session.Steps)+1)
	for _, step := range session.Steps {
		answerIDs = append(answerIDs, step.AnswerID)
	}
	answerIDs = append(answerIDs, final.AnswerID)

	for _, answerID := range answerIDs {
		restricted, err := e.restrictions.RestrictedProducts(ctx, answerID)
		if err != nil {
			return nil, fmt.Errorf("resolve restrictions for answer %q: %w", answerID, err)
		}
		for _, productID := range restricted {
			excluded[productID] = struct{}{}
		}
	}

	product, err := e.catalog.Product(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("resolve product %q: %w", candidateID, err)
	}

	products := make([]domain.Product, 0, 1)
	if _, restricted := excluded[product.ID]; !restricted && product.Published() {
		products = append(products, *product)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
