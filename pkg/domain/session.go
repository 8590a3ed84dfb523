package domain

import "time"

// AnsweredStep records one answered question. The slice of steps in a
// Session is a replay log: insertion order is traversal order and is never
// reordered.
type AnsweredStep struct {
	QuestionID string `json:"question_id"`
	AnswerID   string `json:"answer_id"`
}

// Session is the mutable state of one quiz run. CurrentQuestionID is empty
// once the run has terminated in a recommendation; Recommended then holds
// the filtered product ids in ascending order.
type Session struct {
	QuizID            string         `json:"quiz_id"`
	Steps             []AnsweredStep `json:"steps"`
	CurrentQuestionID string         `json:"current_question_id"`
	Recommended       []string       `json:"recommended,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// NewSession creates a fresh run positioned at the given start question.
func NewSession(quizID, startQuestionID string) *Session {
	now := time.Now().UTC()
	return &Session{
		QuizID:            quizID,
		Steps:             []AnsweredStep{},
		CurrentQuestionID: startQuestionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Terminated reports whether the run has reached a recommendation.
func (s *Session) Terminated() bool {
	return s.CurrentQuestionID == ""
}

// Answered reports whether the question already appears in the history.
func (s *Session) Answered(questionID string) bool {
	for _, step := range s.Steps {
		if step.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Append adds a step to the end of the history. It fails with ErrInvalidStep
// when the step's question is not the session's current question, which
// guards against stale or replayed requests.
func (s *Session) Append(step AnsweredStep) error {
	if step.QuestionID != s.CurrentQuestionID {
		return ErrInvalidStep
	}
	s.Steps = append(s.Steps, step)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// TruncateAfter removes every step from the first occurrence of questionID
// onward, inclusive, and resets the current position to that question. It
// fails with ErrStepNotFound when the question never appears in history.
// Truncating twice to the same question is a no-op after the first call:
// once the position sits at questionID the step is gone from history, so a
// repeat call succeeds without changing anything.
func (s *Session) TruncateAfter(questionID string) error {
	if s.CurrentQuestionID == questionID {
		return nil
	}
	idx := -1
	for i, step := range s.Steps {
		if step.QuestionID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrStepNotFound
	}
	s.Steps = s.Steps[:idx]
	s.CurrentQuestionID = questionID
	s.Recommended = nil
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy, so stores can hand out snapshots without
// aliasing the live history slice.
func (s *Session) Clone() *Session {
	c := *s
	c.Steps = append([]AnsweredStep(nil), s.Steps...)
	if s.Recommended != nil {
		c.Recommended = append([]string(nil), s.Recommended...)
	}
	return &c
}
