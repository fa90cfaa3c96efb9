package http

import (
	"net/http"

	"github.com/mind-engage/quizify/internal/auth"
	"github.com/mind-engage/quizify/internal/dashboard"
)

// GET /api/dashboard
func DashboardHandler(agg *dashboard.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity.Sub == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ov, err := agg.Overview(r.Context(), identity.Sub)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch dashboard data")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": ov})
	}
}
