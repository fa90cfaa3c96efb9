package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mind-engage/quizify/internal/auth"
	"github.com/mind-engage/quizify/internal/cert"
	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/result"
)

// GET /api/certificates?search=...
//
// Certificates are a derived view over the caller's passed results; exam
// titles come from one batched lookup.
func ListCertificatesHandler(results result.Store, exams exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity.Sub == "" {
			writeError(w, http.StatusUnauthorized, "you must be logged in to view certificates")
			return
		}
		search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

		all, err := results.ListByUser(r.Context(), identity.Sub)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to retrieve certificates")
			return
		}
		var passed []result.Result
		ids := make([]string, 0, len(all))
		for _, res := range all {
			if res.Passed() {
				passed = append(passed, res)
				ids = append(ids, res.ExamID)
			}
		}

		titles, err := exams.GetExamTitles(r.Context(), ids)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to retrieve certificates")
			return
		}

		userName := identity.Name
		if userName == "" {
			userName = "Student"
		}

		certs := []cert.Certificate{}
		for _, res := range passed {
			title, ok := titles[res.ExamID]
			if !ok {
				// result references a missing exam; nothing to certify
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(title), search) {
				continue
			}
			certs = append(certs, cert.FromResult(res, title, userName))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"certificates": certs,
		})
	}
}

// GET /api/certificates/{resultID}/download
//
// Guards, in order: the result must exist, belong to the caller, and be
// PASSED. Only then is the PDF rendered and streamed.
func DownloadCertificateHandler(results result.Store, exams exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity.Sub == "" {
			writeError(w, http.StatusUnauthorized, "you must be logged in to download certificates")
			return
		}

		resultID := chi.URLParam(r, "resultID")
		if _, err := uuid.Parse(resultID); err != nil {
			writeError(w, http.StatusBadRequest, "invalid certificate id")
			return
		}

		res, err := results.GetByID(r.Context(), resultID)
		if errors.Is(err, result.ErrNotFound) {
			writeError(w, http.StatusNotFound, "certificate not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate certificate")
			return
		}
		if res.UserID != identity.Sub {
			writeError(w, http.StatusForbidden, "you do not have permission to download this certificate")
			return
		}
		if !res.Passed() {
			writeError(w, http.StatusBadRequest, "cannot generate certificate for failed exam")
			return
		}

		e, err := exams.GetExam(r.Context(), res.ExamID)
		if errors.Is(err, exam.ErrNotFound) {
			writeError(w, http.StatusNotFound, "exam not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate certificate")
			return
		}

		userName := identity.Name
		if userName == "" {
			userName = "Student"
		}
		pdf, err := cert.RenderPDF(cert.FromResult(res, e.Title, userName))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate certificate")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename=certificate-`+res.ID+`.pdf`)
		_, _ = w.Write(pdf)
	}
}
