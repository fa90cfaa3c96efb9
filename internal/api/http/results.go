package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/quizify/internal/auth"
	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/result"
	"github.com/mind-engage/quizify/internal/scoring"
)

type resultResponse struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Date             time.Time            `json:"date"`
	TotalQuestions   int                  `json:"total_questions"`
	CorrectAnswers   int                  `json:"correct_answers"`
	IncorrectAnswers int                  `json:"incorrect_answers"`
	SkippedQuestions int                  `json:"skipped_questions"`
	Score            int                  `json:"score"`
	PassingScore     int                  `json:"passing_score"`
	TimeTaken        string               `json:"time_taken"`
	Passed           bool                 `json:"passed"`
	Status           string               `json:"status"`
	Distribution     scoring.Distribution `json:"score_distribution"`
}

// GET /api/results?result_id=... or ?exam_id=...
//
// Owner-scoped: a result id belonging to another user reads as not found,
// never as someone else's data.
func GetResultHandler(results result.Store, exams exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity.Sub == "" {
			writeError(w, http.StatusUnauthorized, "you must be logged in to view results")
			return
		}

		resultID := r.URL.Query().Get("result_id")
		examID := r.URL.Query().Get("exam_id")
		if resultID == "" && examID == "" {
			writeError(w, http.StatusBadRequest, "either result_id or exam_id is required")
			return
		}

		var res result.Result
		var err error
		switch {
		case resultID != "":
			if _, perr := uuid.Parse(resultID); perr != nil {
				writeError(w, http.StatusBadRequest, "invalid result_id format")
				return
			}
			res, err = results.GetByID(r.Context(), resultID)
			if err == nil && res.UserID != identity.Sub {
				err = result.ErrNotFound
			}
		default:
			if _, perr := uuid.Parse(examID); perr != nil {
				writeError(w, http.StatusBadRequest, "invalid exam_id format")
				return
			}
			res, err = results.GetByUserExam(r.Context(), identity.Sub, examID)
		}
		if errors.Is(err, result.ErrNotFound) {
			writeError(w, http.StatusNotFound, "exam result not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to retrieve exam result")
			return
		}

		title := "Unknown Exam"
		if e, eerr := exams.GetExam(r.Context(), res.ExamID); eerr == nil {
			title = e.Title
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"result": resultResponse{
				ID:               res.ID,
				Title:            title,
				Date:             res.CreatedAt,
				TotalQuestions:   res.TotalQuestions,
				CorrectAnswers:   res.CorrectAnswers,
				IncorrectAnswers: res.IncorrectAnswers,
				SkippedQuestions: res.SkippedAnswers,
				Score:            res.ScorePercentage,
				PassingScore:     scoring.PassingScore,
				TimeTaken:        res.TimeTaken,
				Passed:           res.Passed(),
				Status:           res.Status,
				Distribution:     res.Distribution,
			},
		})
	}
}
