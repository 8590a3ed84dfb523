package vine_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/vine"
	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/domain"
)

// ExampleNew demonstrates driving a quiz purely in-memory, without reading
// a catalog from the filesystem.
func ExampleNew() {
	// 1. Define the question graph using pure Go structs
	g := memory.NewGraph()
	g.AddQuestion(domain.Question{
		ID: "q-bag", Text: "What kind of bag are you after?", Status: domain.StatusPublished,
		Answers: []domain.Answer{
			{ID: "a-travel", Text: "Something for travel", Status: domain.StatusPublished},
			{ID: "a-daily", Text: "Something for every day", Status: domain.StatusPublished},
		},
	})
	g.AddQuestion(domain.Question{
		ID: "q-size", Text: "How much do you carry?", Status: domain.StatusPublished,
		Answers: []domain.Answer{
			{ID: "a-lots", Text: "A lot", Status: domain.StatusPublished},
		},
	})
	g.AddProduct(domain.Product{ID: "p-duffel", Name: "Weekend Duffel", Status: domain.StatusPublished})

	if err := g.AddRule(domain.Continue("a-travel", "q-size")); err != nil {
		log.Fatal(err)
	}
	if err := g.AddRule(domain.Recommend("a-daily", "p-duffel")); err != nil {
		log.Fatal(err)
	}
	if err := g.AddRule(domain.Recommend("a-lots", "p-duffel")); err != nil {
		log.Fatal(err)
	}

	// 2. Wire the facade with an in-memory session store
	quiz := vine.New(g, g, g, memory.NewStore(), nil)

	// 3. Walk a run to its recommendation
	ctx := context.Background()
	view, err := quiz.CurrentQuestion(ctx, "example-run")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Question.Text)

	view, err = quiz.Answer(ctx, "example-run", "a-travel")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Question.Text)

	view, err = quiz.Answer(ctx, "example-run", "a-lots")
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range view.Recommendations {
		fmt.Println("Recommended:", p.Name)
	}

	// Output:
	// What kind of bag are you after?
	// How much do you carry?
	// Recommended: Weekend Duffel
}
