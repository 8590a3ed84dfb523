package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/vine/pkg/ports"
)

// Overlay contains session state to highlight on the graph.
type Overlay struct {
	AnsweredQuestions []string
	CurrentQuestion   string
}

// GenerateMermaid produces a Mermaid flowchart of the question graph.
// Questions render as parallelograms, products as stadiums; answers become
// edge labels. Restriction edges are drawn dotted with a cross marker.
// Unpublished questions and answers are skipped, matching what a session
// can actually reach.
func GenerateMermaid(ctx context.Context, catalog ports.Catalog, rules ports.RuleTable, restrictions ports.RestrictionTable, overlay *Overlay) (string, error) {
	questions, err := catalog.Questions(ctx)
	if err != nil {
		return "", fmt.Errorf("listing questions: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	products := make(map[string]bool)

	for _, q := range questions {
		if !q.Published() {
			continue
		}
		safeID := sanitizeMermaidID(q.ID)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", safeID, escapeMermaidLabel(q.Text)))

		for _, a := range q.Answers {
			if !a.Published() {
				continue
			}
			rule, err := rules.RuleForAnswer(ctx, a.ID)
			if err != nil {
				// An answer without a rule is a dead end; render it as such.
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> dead_%s[\"no rule\"]\n",
					safeID, escapeMermaidLabel(a.Text), sanitizeMermaidID(a.ID)))
				continue
			}

			label := escapeMermaidLabel(a.Text)
			if rule.Terminal() {
				safeProduct := "product_" + sanitizeMermaidID(rule.ProductID)
				if !products[safeProduct] {
					products[safeProduct] = true
					name := rule.ProductID
					if p, err := catalog.Product(ctx, rule.ProductID); err == nil {
						name = p.Name
					}
					sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", safeProduct, escapeMermaidLabel(name)))
				}
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, safeProduct))
			} else {
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(rule.NextQuestionID)))
			}

			excluded, err := restrictions.RestrictedProducts(ctx, a.ID)
			if err != nil {
				return "", fmt.Errorf("restrictions for answer '%s': %w", a.ID, err)
			}
			for _, productID := range excluded {
				safeProduct := "product_" + sanitizeMermaidID(productID)
				sb.WriteString(fmt.Sprintf("    %s -. \"❌ %s\" .-> %s\n", safeID, label, safeProduct))
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef answered fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		answeredSet := make(map[string]bool)
		for _, id := range overlay.AnsweredQuestions {
			safeID := sanitizeMermaidID(id)
			if !answeredSet[safeID] && safeID != "" {
				answeredSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s answered;\n", safeID))
			}
		}
		if overlay.CurrentQuestion != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentQuestion)))
		}
	}

	return sb.String(), nil
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
