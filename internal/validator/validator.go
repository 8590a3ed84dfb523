package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports"
)

// ValidateGraph crawls the question graph from startQuestionID and reports
// every consistency problem it finds: published answers without a rule,
// malformed rules, dangling or unpublished targets, and published questions
// that can never be reached.
func ValidateGraph(ctx context.Context, catalog ports.Catalog, rules ports.RuleTable, startQuestionID string) error {
	start, err := catalog.Question(ctx, startQuestionID)
	if err != nil {
		return fmt.Errorf("start question '%s' not found: %w", startQuestionID, err)
	}
	if !start.Published() {
		return fmt.Errorf("start question '%s' is not published", startQuestionID)
	}

	visited := make(map[string]bool)
	queue := []string{start.ID}

	var issues []string

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		q, err := catalog.Question(ctx, currentID)
		if err != nil {
			issues = append(issues, fmt.Sprintf("missing question: '%s'", currentID))
			continue
		}
		if !q.Published() {
			issues = append(issues, fmt.Sprintf("question '%s' is reachable but not published", currentID))
			continue
		}

		for _, a := range q.Answers {
			if !a.Published() {
				continue
			}
			rule, err := rules.RuleForAnswer(ctx, a.ID)
			if err != nil {
				if errors.Is(err, domain.ErrMissingRule) {
					issues = append(issues, fmt.Sprintf("answer '%s' of question '%s' has no rule", a.ID, q.ID))
				} else {
					issues = append(issues, fmt.Sprintf("answer '%s' of question '%s': %v", a.ID, q.ID, err))
				}
				continue
			}
			if err := rule.Validate(); err != nil {
				issues = append(issues, fmt.Sprintf("answer '%s' of question '%s' has a malformed rule", a.ID, q.ID))
				continue
			}

			if rule.Terminal() {
				p, err := catalog.Product(ctx, rule.ProductID)
				if err != nil {
					issues = append(issues, fmt.Sprintf("answer '%s' recommends missing product '%s'", a.ID, rule.ProductID))
				} else if !p.Published() {
					issues = append(issues, fmt.Sprintf("answer '%s' recommends unpublished product '%s'", a.ID, rule.ProductID))
				}
				continue
			}

			if !visited[rule.NextQuestionID] {
				queue = append(queue, rule.NextQuestionID)
			}
		}
	}

	all, err := catalog.Questions(ctx)
	if err != nil {
		return fmt.Errorf("listing questions: %w", err)
	}
	for _, q := range all {
		if q.Published() && !visited[q.ID] {
			issues = append(issues, fmt.Sprintf("published question '%s' is unreachable from '%s'", q.ID, startQuestionID))
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("found %d issues:\n- %s", len(issues), strings.Join(issues, "\n- "))
	}
	return nil
}
