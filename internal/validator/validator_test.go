package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/domain"
)

func published(id, text string, answers ...domain.Answer) domain.Question {
	return domain.Question{ID: id, Text: text, Status: domain.StatusPublished, Answers: answers}
}

func answer(id string) domain.Answer {
	return domain.Answer{ID: id, Status: domain.StatusPublished}
}

func TestValidateGraph_Valid(t *testing.T) {
	g := memory.NewGraph()
	g.AddQuestion(published("q1", "first", answer("a1"), answer("a2")))
	g.AddQuestion(published("q2", "second", answer("a3")))
	g.AddProduct(domain.Product{ID: "p1", Status: domain.StatusPublished})

	mustAdd(t, g, domain.Continue("a1", "q2"))
	mustAdd(t, g, domain.Recommend("a2", "p1"))
	mustAdd(t, g, domain.Recommend("a3", "p1"))

	if err := ValidateGraph(context.Background(), g, g, "q1"); err != nil {
		t.Errorf("valid graph failed: %v", err)
	}
}

func TestValidateGraph_ReportsIssues(t *testing.T) {
	g := memory.NewGraph()
	// a1 -> missing question, a2 -> missing product, a3 has no rule.
	g.AddQuestion(published("q1", "first", answer("a1"), answer("a2"), answer("a3")))
	// Published but nothing points at it.
	g.AddQuestion(published("island", "unreachable", answer("a9")))

	mustAdd(t, g, domain.Continue("a1", "ghost"))
	mustAdd(t, g, domain.Recommend("a2", "nothing"))

	err := ValidateGraph(context.Background(), g, g, "q1")
	if err == nil {
		t.Fatal("expected issues, got nil")
	}
	for _, want := range []string{
		"missing question: 'ghost'",
		"recommends missing product 'nothing'",
		"answer 'a3' of question 'q1' has no rule",
		"published question 'island' is unreachable",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("report missing %q, got:\n%v", want, err)
		}
	}
}

func TestValidateGraph_UnpublishedTargets(t *testing.T) {
	g := memory.NewGraph()
	g.AddQuestion(published("q1", "first", answer("a1"), answer("a2")))
	g.AddQuestion(domain.Question{ID: "q2", Status: domain.StatusDraft})
	g.AddProduct(domain.Product{ID: "p1", Status: domain.StatusDisabled})

	mustAdd(t, g, domain.Continue("a1", "q2"))
	mustAdd(t, g, domain.Recommend("a2", "p1"))

	err := ValidateGraph(context.Background(), g, g, "q1")
	if err == nil {
		t.Fatal("expected issues, got nil")
	}
	if !strings.Contains(err.Error(), "question 'q2' is reachable but not published") {
		t.Errorf("draft target not reported: %v", err)
	}
	if !strings.Contains(err.Error(), "recommends unpublished product 'p1'") {
		t.Errorf("disabled product not reported: %v", err)
	}
}

func TestValidateGraph_BadStart(t *testing.T) {
	g := memory.NewGraph()
	g.AddQuestion(domain.Question{ID: "q1", Status: domain.StatusDraft})

	if err := ValidateGraph(context.Background(), g, g, "missing"); err == nil {
		t.Error("missing start accepted")
	}
	if err := ValidateGraph(context.Background(), g, g, "q1"); err == nil {
		t.Error("draft start accepted")
	}
}

func mustAdd(t *testing.T, g *memory.Graph, r domain.Rule) {
	t.Helper()
	if err := g.AddRule(r); err != nil {
		t.Fatalf("adding rule for %s: %v", r.AnswerID, err)
	}
}
