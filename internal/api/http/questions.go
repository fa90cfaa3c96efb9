package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/quizify/internal/exam"
)

type questionOption struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type addQuestionRequest struct {
	Text    string           `json:"text" validate:"required"`
	Options []questionOption `json:"options" validate:"required,min=2,dive"`
}

// POST /api/exams/{examID}/questions (admin)
func AddQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if _, err := uuid.Parse(examID); err != nil {
			writeError(w, http.StatusBadRequest, "valid exam id is required")
			return
		}
		var req addQuestionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "at least two options are required")
			return
		}

		q := exam.Question{Text: req.Text}
		for _, o := range req.Options {
			q.Options = append(q.Options, exam.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		if err := exam.ValidateQuestion(q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		qs, err := store.AddQuestion(r.Context(), examID, q)
		if errors.Is(err, exam.ErrNotFound) {
			writeError(w, http.StatusNotFound, "exam not found")
			return
		}
		if err != nil {
			log.Printf("add question to exam %s: %v", examID, err)
			writeError(w, http.StatusInternalServerError, "failed to add question")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success":        true,
			"message":        "question added successfully",
			"question_count": len(qs.Questions),
		})
	}
}

// GET /api/exams/{examID}/questions
//
// Serves the student-safe view: correctness flags are stripped before the
// set leaves the server.
func GetQuestionsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if _, err := uuid.Parse(examID); err != nil {
			writeError(w, http.StatusBadRequest, "valid exam id is required")
			return
		}
		qs, err := store.GetQuestionSet(r.Context(), examID)
		if errors.Is(err, exam.ErrQuestionSetNotFound) {
			writeError(w, http.StatusNotFound, "exam questions not found")
			return
		}
		if err != nil {
			log.Printf("fetch questions for exam %s: %v", examID, err)
			writeError(w, http.StatusInternalServerError, "failed to fetch exam questions")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"questions": qs.Sanitized().Questions,
		})
	}
}
