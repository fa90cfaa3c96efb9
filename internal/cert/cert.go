// Package cert derives certificates from passed results and renders them
// as PDF documents. Certificates are never stored; everything here is
// computed at read time.
package cert

import (
	"time"

	"github.com/mind-engage/quizify/internal/result"
)

// ValidityYears is the certificate validity window, counted from the
// result's creation timestamp.
const ValidityYears = 2

type Certificate struct {
	ID         string    `json:"id"`
	ExamID     string    `json:"exam_id"`
	ExamTitle  string    `json:"exam_title"`
	IssueDate  time.Time `json:"issue_date"`
	Score      int       `json:"score"`
	ValidUntil time.Time `json:"valid_until"`
	UserName   string    `json:"user_name"`
}

// FromResult builds the derived certificate view for a passed result.
// Callers are responsible for the PASSED and ownership guards.
func FromResult(r result.Result, examTitle, userName string) Certificate {
	return Certificate{
		ID:         r.ID,
		ExamID:     r.ExamID,
		ExamTitle:  examTitle,
		IssueDate:  r.CreatedAt,
		Score:      r.ScorePercentage,
		ValidUntil: r.CreatedAt.AddDate(ValidityYears, 0, 0),
		UserName:   userName,
	}
}
