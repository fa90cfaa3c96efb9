package exam

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("exam not found")
	ErrQuestionSetNotFound = errors.New("question set not found")
)

type Store interface {
	PutExam(ctx context.Context, e Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)
	ListExams(ctx context.Context) ([]Exam, error)

	// ListUpcoming returns exams whose start time is after the given instant,
	// soonest first, capped at limit.
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]Exam, error)

	// GetExamTitles resolves titles for the distinct id set in one query,
	// avoiding per-row lookups when joining results to exams.
	GetExamTitles(ctx context.Context, ids []string) (map[string]string, error)

	// AddQuestion appends q to the exam's question set, creating the set on
	// first write. The question must already pass ValidateQuestion.
	AddQuestion(ctx context.Context, examID string, q Question) (QuestionSet, error)

	// GetQuestionSet returns the full set including correctness flags; callers
	// serving students must use Sanitized.
	GetQuestionSet(ctx context.Context, examID string) (QuestionSet, error)
}
