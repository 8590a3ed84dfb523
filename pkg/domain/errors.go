package domain

import "errors"

// Caller errors: a stale or malicious request. The session is never mutated.
var (
	// ErrSessionNotFound is returned when a quiz id cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownAnswer is returned when the submitted answer id does not exist.
	ErrUnknownAnswer = errors.New("unknown answer")

	// ErrMismatchedAnswer is returned when the submitted answer belongs to a
	// question other than the session's current one.
	ErrMismatchedAnswer = errors.New("answer does not belong to the current question")

	// ErrQuizComplete is returned when an advance is attempted on a session
	// that has already terminated in a recommendation.
	ErrQuizComplete = errors.New("quiz already complete")

	// ErrStepNotFound is returned by rewind when the question was never answered.
	ErrStepNotFound = errors.New("question not present in history")

	// ErrInvalidStep is returned when an appended step does not match the
	// session's current question.
	ErrInvalidStep = errors.New("step does not match current question")
)

// Configuration errors: the authored graph is inconsistent with the run.
// These are terminal for the request and never guessed around.
var (
	// ErrQuestionNotFound is returned when a referenced question id does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrProductNotFound is returned when a referenced product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInactiveAnswer is returned when the answer or its owning question is
	// not published.
	ErrInactiveAnswer = errors.New("answer is not published")

	// ErrInactiveQuestion is returned when a rule points at a question that is
	// not published.
	ErrInactiveQuestion = errors.New("question is not published")

	// ErrMissingRule is returned when an answer has no transition rule.
	ErrMissingRule = errors.New("no transition rule for answer")

	// ErrMalformedRule is returned when a rule has both or neither target set.
	ErrMalformedRule = errors.New("transition rule must set exactly one target")
)

// IsCallerError reports whether err stems from a bad request rather than a
// broken graph or a failing store. Adapters use this to pick 4xx statuses.
func IsCallerError(err error) bool {
	for _, target := range []error{
		ErrSessionNotFound,
		ErrUnknownAnswer,
		ErrMismatchedAnswer,
		ErrQuizComplete,
		ErrStepNotFound,
		ErrInvalidStep,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConfigError reports whether err indicates an inconsistency in the
// authored quiz graph.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrQuestionNotFound,
		ErrProductNotFound,
		ErrInactiveAnswer,
		ErrInactiveQuestion,
		ErrMissingRule,
		ErrMalformedRule,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
