package file

import (
	"fmt"
	"os"

	"github.com/aretw0/vine/pkg/adapters/memory"
	"github.com/aretw0/vine/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Definition is the YAML shape of an authored quiz graph. It exists for dev
// mode and fixtures: a whole catalog in one file, loaded read-only into an
// in-memory graph.
//
//	start_question: q1
//	questions:
//	  - id: q1
//	    text: "waterproof?"
//	    status: published
//	    answers:
//	      - {id: a1, text: "yes", status: published}
//	products:
//	  - {id: p1, name: "dry bag", status: published}
//	rules:
//	  - {answer: a1, product: p1}
//	restrictions:
//	  - {answer: a1, product: p2}
type Definition struct {
	StartQuestion string               `yaml:"start_question"`
	Questions     []domain.Question    `yaml:"questions"`
	Products      []domain.Product     `yaml:"products"`
	Rules         []domain.Rule        `yaml:"rules"`
	Restrictions  []domain.Restriction `yaml:"restrictions"`
}

// Load reads a quiz graph definition from a YAML file.
func Load(path string) (*memory.Graph, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds an in-memory graph from YAML bytes. Malformed rules are
// rejected here, so a broken authored file never reaches a running quiz.
func Parse(data []byte) (*memory.Graph, string, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	graph := memory.NewGraph()
	for _, q := range def.Questions {
		graph.AddQuestion(q)
	}
	for _, p := range def.Products {
		graph.AddProduct(p)
	}
	for _, r := range def.Rules {
		if err := graph.AddRule(r); err != nil {
			return nil, "", fmt.Errorf("rule for answer %q: %w", r.AnswerID, err)
		}
	}
	for _, r := range def.Restrictions {
		graph.AddRestriction(r)
	}

	return graph, def.StartQuestion, nil
}
