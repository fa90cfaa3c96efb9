package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/quizify/internal/audit"
	"github.com/mind-engage/quizify/internal/auth"
	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/result"
	"github.com/mind-engage/quizify/internal/scoring"
)

// AuditLog is the slice of the audit package the grading endpoint needs.
type AuditLog interface {
	Append(ctx context.Context, e audit.Event) error
}

type submitRequest struct {
	// Answers maps 0-based question indexes to selections. A present entry
	// with a null selected_option still counts as skipped.
	Answers map[int]scoring.Answer `json:"answers"`

	TimeSpentSec int `json:"time_spent_sec" validate:"gte=0"`

	// Client-declared count; informational only. The server recomputes the
	// total from the stored question set.
	TotalQuestions int `json:"total_questions"`
}

type scoreResponse struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Skipped    int `json:"skipped"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type submitResponse struct {
	Success         bool                     `json:"success"`
	ResultID        string                   `json:"result_id"`
	ExamID          string                   `json:"exam_id"`
	RedirectURL     string                   `json:"redirect_url"`
	Score           scoreResponse            `json:"score"`
	TimeTaken       string                   `json:"time_taken"`
	Status          string                   `json:"status"`
	QuestionResults []scoring.QuestionResult `json:"question_results"`
}

// POST /api/exams/{examID}/submit
//
// The grading endpoint: loads the stored question set, grades the
// submission in one pass, persists exactly one Result row, and returns the
// aggregate plus the per-question breakdown (which is not persisted).
func SubmitExamHandler(exams exam.Store, results result.Store, auditLog AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity.Sub == "" {
			writeError(w, http.StatusUnauthorized, "you must be logged in to submit an exam")
			return
		}

		examID := chi.URLParam(r, "examID")
		if _, err := uuid.Parse(examID); err != nil {
			writeError(w, http.StatusBadRequest, "valid exam id is required")
			return
		}

		var req submitRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed answers")
			return
		}
		if req.Answers == nil {
			writeError(w, http.StatusBadRequest, "answers are required")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed answers")
			return
		}

		qs, err := exams.GetQuestionSet(r.Context(), examID)
		if errors.Is(err, exam.ErrQuestionSetNotFound) {
			writeError(w, http.StatusNotFound, "exam not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to process exam submission")
			return
		}

		summary := scoring.Grade(qs.Questions, scoring.Submission{
			Answers:    req.Answers,
			ElapsedSec: req.TimeSpentSec,
		})

		res := result.Result{
			ID:               uuid.NewString(),
			ExamID:           examID,
			UserID:           identity.Sub,
			TotalQuestions:   summary.Total,
			CorrectAnswers:   summary.Correct,
			IncorrectAnswers: summary.Incorrect,
			SkippedAnswers:   summary.Skipped,
			ScorePercentage:  summary.ScorePercentage,
			TimeTaken:        summary.TimeTaken,
			Status:           summary.Status,
			Distribution:     summary.Distribution,
			CreatedAt:        time.Now().UTC(),
		}
		if err := results.Insert(r.Context(), res); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to process exam submission")
			return
		}

		if auditLog != nil {
			data, _ := json.Marshal(map[string]any{
				"exam_id": examID,
				"user_id": identity.Sub,
				"score":   summary.ScorePercentage,
				"status":  summary.Status,
			})
			if err := auditLog.Append(r.Context(), audit.Event{
				Type:     audit.TypeResultCreated,
				Key:      res.ID,
				DataJSON: string(data),
			}); err != nil {
				log.Printf("audit append failed for result %s: %v", res.ID, err)
			}
		}

		writeJSON(w, http.StatusOK, submitResponse{
			Success:     true,
			ResultID:    res.ID,
			ExamID:      examID,
			RedirectURL: "/dashboard/exams/" + examID + "/results",
			Score: scoreResponse{
				Correct:    summary.Correct,
				Incorrect:  summary.Incorrect,
				Skipped:    summary.Skipped,
				Total:      summary.Total,
				Percentage: summary.ScorePercentage,
			},
			TimeTaken:       summary.TimeTaken,
			Status:          summary.Status,
			QuestionResults: summary.QuestionResults,
		})
	}
}
