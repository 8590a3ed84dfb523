package domain

// Status tracks the publication lifecycle of an authored entity.
// Only published entities participate in a quiz run.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusDisabled  Status = "disabled"
)

// Question is a node in the quiz graph. Answers keep their authored order.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Status  Status   `json:"status" yaml:"status"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Published reports whether the question can be presented to a quiz taker.
func (q *Question) Published() bool {
	return q.Status == StatusPublished
}

// Answer is a selectable option belonging to exactly one question.
type Answer struct {
	ID         string `json:"id" yaml:"id"`
	QuestionID string `json:"question_id,omitempty" yaml:"question_id,omitempty"`
	Text       string `json:"text" yaml:"text"`
	Status     Status `json:"status" yaml:"status"`
}

// Published reports whether the answer can be selected.
func (a *Answer) Published() bool {
	return a.Status == StatusPublished
}
