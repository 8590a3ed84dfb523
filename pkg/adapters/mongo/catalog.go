package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/vine/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Catalog implements ports.Catalog, ports.RuleTable, and
// ports.RestrictionTable over MongoDB collections. Questions embed their
// answers; rules and restrictions live in their own collections keyed by
// answer id, with a unique index guaranteeing at most one rule per answer.
type Catalog struct {
	client       *mongo.Client
	questions    *mongo.Collection
	products     *mongo.Collection
	rules        *mongo.Collection
	restrictions *mongo.Collection
}

type questionDoc struct {
	ID      string      `bson:"_id"`
	Text    string      `bson:"text"`
	Status  string      `bson:"status"`
	Answers []answerDoc `bson:"answers"`
}

type answerDoc struct {
	ID     string `bson:"id"`
	Text   string `bson:"text"`
	Status string `bson:"status"`
}

type productDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description,omitempty"`
	Status      string `bson:"status"`
}

type ruleDoc struct {
	AnswerID       string `bson:"answer_id"`
	NextQuestionID string `bson:"next_question_id,omitempty"`
	ProductID      string `bson:"product_id,omitempty"`
}

type restrictionDoc struct {
	AnswerID  string `bson:"answer_id"`
	ProductID string `bson:"product_id"`
}

// Connect dials MongoDB and returns a Catalog over the given database.
func Connect(ctx context.Context, uri, database string) (*Catalog, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db := client.Database(database)
	c := &Catalog{
		client:       client,
		questions:    db.Collection("questions"),
		products:     db.Collection("products"),
		rules:        db.Collection("rules"),
		restrictions: db.Collection("restrictions"),
	}

	// At most one rule per answer.
	_, _ = c.rules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "answer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = c.restrictions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "answer_id", Value: 1}},
	})

	return c, nil
}

// Close disconnects the underlying client.
func (c *Catalog) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

// Question implements ports.Catalog.
func (c *Catalog) Question(ctx context.Context, id string) (*domain.Question, error) {
	var doc questionDoc
	if err := c.questions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	q := doc.toDomain()
	return &q, nil
}

// Answer implements ports.Catalog by locating the embedding question.
func (c *Catalog) Answer(ctx context.Context, id string) (*domain.Answer, error) {
	var doc questionDoc
	if err := c.questions.FindOne(ctx, bson.M{"answers.id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnknownAnswer
		}
		return nil, fmt.Errorf("failed to load answer: %w", err)
	}
	for _, a := range doc.Answers {
		if a.ID == id {
			return &domain.Answer{
				ID:         a.ID,
				QuestionID: doc.ID,
				Text:       a.Text,
				Status:     domain.Status(a.Status),
			}, nil
		}
	}
	return nil, domain.ErrUnknownAnswer
}

// Product implements ports.Catalog.
func (c *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	var doc productDoc
	if err := c.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &domain.Product{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Status:      domain.Status(doc.Status),
	}, nil
}

// Questions implements ports.Catalog.
func (c *Catalog) Questions(ctx context.Context) ([]domain.Question, error) {
	cur, err := c.questions.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []questionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	out := make([]domain.Question, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

// RuleForAnswer implements ports.RuleTable. Malformed stored rules surface
// as domain.ErrMalformedRule so the engine can refuse them.
func (c *Catalog) RuleForAnswer(ctx context.Context, answerID string) (*domain.Rule, error) {
	var doc ruleDoc
	if err := c.rules.FindOne(ctx, bson.M{"answer_id": answerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMissingRule
		}
		return nil, fmt.Errorf("failed to load rule: %w", err)
	}
	rule := doc.toDomain()
	return &rule, nil
}

// RestrictedProducts implements ports.RestrictionTable.
func (c *Catalog) RestrictedProducts(ctx context.Context, answerID string) ([]string, error) {
	cur, err := c.restrictions.Find(ctx, bson.M{"answer_id": answerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load restrictions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []restrictionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode restrictions: %w", err)
	}

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ProductID
	}
	return ids, nil
}

func (d questionDoc) toDomain() domain.Question {
	q := domain.Question{
		ID:     d.ID,
		Text:   d.Text,
		Status: domain.Status(d.Status),
	}
	q.Answers = make([]domain.Answer, len(d.Answers))
	for i, a := range d.Answers {
		q.Answers[i] = domain.Answer{
			ID:         a.ID,
			QuestionID: d.ID,
			Text:       a.Text,
			Status:     domain.Status(a.Status),
		}
	}
	return q
}

func (d ruleDoc) toDomain() domain.Rule {
	return domain.Rule{
		AnswerID:       d.AnswerID,
		NextQuestionID: d.NextQuestionID,
		ProductID:      d.ProductID,
	}
}
