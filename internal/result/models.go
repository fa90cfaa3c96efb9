package result

import (
	"context"
	"errors"
	"time"

	"github.com/mind-engage/quizify/internal/scoring"
)

var ErrNotFound = errors.New("result not found")

// Result is the persisted, immutable outcome of one graded submission.
// Only the aggregate fields live here; the per-question breakdown is
// returned in the grading response and never stored.
type Result struct {
	ID               string               `json:"id"`
	ExamID           string               `json:"exam_id"`
	UserID           string               `json:"user_id"`
	TotalQuestions   int                  `json:"total_questions"`
	CorrectAnswers   int                  `json:"correct_answers"`
	IncorrectAnswers int                  `json:"incorrect_answers"`
	SkippedAnswers   int                  `json:"skipped_answers"`
	ScorePercentage  int                  `json:"score_percentage"`
	TimeTaken        string               `json:"time_taken"`
	Status           string               `json:"status"`
	Distribution     scoring.Distribution `json:"score_distribution"`
	CreatedAt        time.Time            `json:"created_at"`
}

func (r Result) Passed() bool { return r.Status == scoring.StatusPassed }

type Store interface {
	// Insert writes exactly one row. Results are never updated or deleted,
	// and no uniqueness constraint exists on (user, exam): retakes produce
	// additional rows.
	Insert(ctx context.Context, r Result) error
	GetByID(ctx context.Context, id string) (Result, error)

	// GetByUserExam returns the most recent result for the pair.
	GetByUserExam(ctx context.Context, userID, examID string) (Result, error)

	// ListByUser returns all of a user's results, newest first.
	ListByUser(ctx context.Context, userID string) ([]Result, error)
}
