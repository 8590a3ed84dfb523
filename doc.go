/*
Package vine is a rule-driven quiz engine that walks visitors through a
question graph and ends each run with a filtered set of product
recommendations.

Every answer carries exactly one transition rule: either it continues to a
follow-up question or it terminates the quiz by recommending a product.
Answers can additionally restrict products, and a restriction picked up
anywhere along the walk removes that product from the final recommendation,
even when a later rule points straight at it.

# Concept

A quiz run is an append-only log of answered steps plus a pointer to the
current question. The engine never mutates past answers: moving forward
appends to the log, and rewinding truncates it. Replaying the same answers
over the same catalog always produces the same recommendations.

This Hexagonal Architecture keeps the walk logic independent of where
questions live (YAML file, MongoDB) and where sessions are kept (memory,
Redis), so the engine can sit behind any interface: HTTP, CLI, or MCP.

# Usage

Wire a catalog and a session store into the Quiz facade, then drive runs by
quiz id:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/vine"
		"github.com/aretw0/vine/pkg/adapters/file"
		"github.com/aretw0/vine/pkg/adapters/memory"
	)

	func main() {
		graph, start, err := file.Load("quiz.yaml")
		if err != nil {
			log.Fatal(err)
		}

		quiz := vine.New(graph, graph, graph, memory.NewStore(), nil,
			vine.WithStartQuestion(start))

		ctx := context.Background()

		// First sight of a quiz id opens a session at the start question.
		view, err := quiz.CurrentQuestion(ctx, "visitor-42")
		if err != nil {
			log.Fatal(err)
		}

		for !view.Terminal {
			// In a real app the choice comes from the visitor.
			answerID := view.Question.Answers[0].ID
			view, err = quiz.Answer(ctx, "visitor-42", answerID)
			if err != nil {
				log.Fatal(err)
			}
		}

		for _, p := range view.Recommendations {
			log.Println("Recommended:", p.Name)
		}
	}
*/
package vine
