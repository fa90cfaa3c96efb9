package exam

import (
	"errors"
	"strings"
)

var (
	ErrEmptyQuestionText = errors.New("question text is required")
	ErrTooFewOptions     = errors.New("at least two options are required")
	ErrEmptyOptionText   = errors.New("option text is required")
	ErrNoCorrectOption   = errors.New("at least one option must be marked as correct")
)

// ValidateQuestion enforces the write-time invariants for a question: text
// present, two or more options, and at least one correctness flag set.
// Stored sets are not re-validated at read time.
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestionText
	}
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}
	hasCorrect := false
	for _, o := range q.Options {
		if strings.TrimSpace(o.Text) == "" {
			return ErrEmptyOptionText
		}
		if o.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return ErrNoCorrectOption
	}
	return nil
}
