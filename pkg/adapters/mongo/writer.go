package mongo

import (
	"context"
	"fmt"

	"github.com/aretw0/vine/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The write path exists for seeding and authoring tools. The engine itself
// only ever reads.

// UpsertQuestion stores a question with its embedded answers.
func (c *Catalog) UpsertQuestion(ctx context.Context, q domain.Question) error {
	doc := questionDoc{
		ID:     q.ID,
		Text:   q.Text,
		Status: string(q.Status),
	}
	doc.Answers = make([]answerDoc, len(q.Answers))
	for i, a := range q.Answers {
		doc.Answers[i] = answerDoc{ID: a.ID, Text: a.Text, Status: string(a.Status)}
	}

	_, err := c.questions.ReplaceOne(ctx, bson.M{"_id": q.ID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}
	return nil
}

// UpsertProduct stores a product.
func (c *Catalog) UpsertProduct(ctx context.Context, p domain.Product) error {
	doc := productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
	}
	_, err := c.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

// UpsertRule stores the transition rule for an answer. A rule with both or
// neither target is rejected here, at creation time, so malformed edges
// never reach a running quiz.
func (c *Catalog) UpsertRule(ctx context.Context, r domain.Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	doc := ruleDoc{
		AnswerID:       r.AnswerID,
		NextQuestionID: r.NextQuestionID,
		ProductID:      r.ProductID,
	}
	_, err := c.rules.ReplaceOne(ctx, bson.M{"answer_id": r.AnswerID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert rule: %w", err)
	}
	return nil
}

// InsertRestriction excludes a product for sessions containing an answer.
func (c *Catalog) InsertRestriction(ctx context.Context, r domain.Restriction) error {
	doc := restrictionDoc{AnswerID: r.AnswerID, ProductID: r.ProductID}
	if _, err := c.restrictions.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert restriction: %w", err)
	}
	return nil
}
