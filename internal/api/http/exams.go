package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/quizify/internal/exam"
)

type createExamRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	StartAt        time.Time `json:"start_at" validate:"required"`
	DurationMin    int       `json:"duration_min" validate:"required,gte=1"`
	TotalQuestions int       `json:"total_questions" validate:"required,gte=1"`
	Category       string    `json:"category"`
}

// POST /api/exams (admin)
func CreateExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExamRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "missing required fields")
			return
		}
		if req.Category == "" {
			req.Category = "General"
		}

		e := exam.Exam{
			ID:             uuid.NewString(),
			Title:          req.Title,
			Description:    req.Description,
			StartAt:        req.StartAt.UTC(),
			DurationMin:    req.DurationMin,
			TotalQuestions: req.TotalQuestions,
			Category:       req.Category,
			CreatedAt:      time.Now().UTC(),
		}
		if err := store.PutExam(r.Context(), e); err != nil {
			log.Printf("create exam %s: %v", e.ID, err)
			writeError(w, http.StatusInternalServerError, "failed to create exam")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "exam created successfully",
			"exam":    e,
		})
	}
}

// GET /api/exams
func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := store.ListExams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch exams")
			return
		}
		if exams == nil {
			exams = []exam.Exam{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "exams": exams})
	}
}

// GET /api/exams/{examID}
func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "examID")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "valid exam id is required")
			return
		}
		e, err := store.GetExam(r.Context(), id)
		if errors.Is(err, exam.ErrNotFound) {
			writeError(w, http.StatusNotFound, "exam not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch exam")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "exam": e})
	}
}
