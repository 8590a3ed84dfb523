package domain

// Rule is the directed edge attached to an answer: it either continues the
// walk at another question or terminates it with a product recommendation.
// Exactly one of the two targets must be set. Use Continue or Recommend to
// build rules; data decoded from storage must still pass Validate, since a
// record with both or neither target set is a fatal authoring error the
// engine refuses to interpret.
type Rule struct {
	AnswerID       string `json:"answer_id" yaml:"answer"`
	NextQuestionID string `json:"next_question_id,omitempty" yaml:"next_question,omitempty"`
	ProductID      string `json:"product_id,omitempty" yaml:"product,omitempty"`
}

// Continue builds a rule that moves the walk to the given question.
func Continue(answerID, questionID string) Rule {
	return Rule{AnswerID: answerID, NextQuestionID: questionID}
}

// Recommend builds a rule that terminates the walk recommending the given product.
func Recommend(answerID, productID string) Rule {
	return Rule{AnswerID: answerID, ProductID: productID}
}

// Terminal reports whether the rule ends the walk with a recommendation.
func (r Rule) Terminal() bool {
	return r.ProductID != ""
}

// Validate enforces the exactly-one-target invariant.
func (r Rule) Validate() error {
	if (r.NextQuestionID == "") == (r.ProductID == "") {
		return ErrMalformedRule
	}
	return nil
}

// Restriction excludes a product from recommendation for any session whose
// history contains the given answer.
type Restriction struct {
	AnswerID  string `json:"answer_id" yaml:"answer"`
	ProductID string `json:"product_id" yaml:"product"`
}
