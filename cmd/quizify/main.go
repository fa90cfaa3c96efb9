package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/mind-engage/quizify/internal/api/http"
	"github.com/mind-engage/quizify/internal/audit"
	"github.com/mind-engage/quizify/internal/auth"
	"github.com/mind-engage/quizify/internal/config"
	"github.com/mind-engage/quizify/internal/dashboard"
	"github.com/mind-engage/quizify/internal/db"
	"github.com/mind-engage/quizify/internal/exam"
	"github.com/mind-engage/quizify/internal/rbac"
	"github.com/mind-engage/quizify/internal/result"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	examStore := exam.NewSQLStore(dbh)
	resultStore := result.NewSQLStore(dbh)
	auditLog := audit.NewLog(dbh)
	agg := dashboard.New(resultStore, examStore)

	authSvc := auth.NewService(cfg.JWTSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/auth/register", api.RegisterHandler(dbh))
	r.Post("/api/auth/login", api.LoginHandler(dbh, authSvc))

	// Protected API (JWT → identity + role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Admin: exam and question authoring
		pr.With(rbac.Require("exam:create")).
			Post("/api/exams", api.CreateExamHandler(examStore))
		pr.With(rbac.Require("question:create")).
			Post("/api/exams/{examID}/questions", api.AddQuestionHandler(examStore))

		// Student/admin: browsing and taking exams
		pr.With(rbac.Require("exam:view")).
			Get("/api/exams", api.ListExamsHandler(examStore))
		pr.With(rbac.Require("exam:view")).
			Get("/api/exams/{examID}", api.GetExamHandler(examStore))
		pr.With(rbac.Require("exam:take")).
			Get("/api/exams/{examID}/questions", api.GetQuestionsHandler(examStore))
		pr.With(rbac.Require("exam:take")).
			Post("/api/exams/{examID}/submit", api.SubmitExamHandler(examStore, resultStore, auditLog))

		// Own results, certificates, dashboard
		pr.With(rbac.Require("result:view-own")).
			Get("/api/results", api.GetResultHandler(resultStore, examStore))
		pr.With(rbac.Require("certificate:view-own")).
			Get("/api/certificates", api.ListCertificatesHandler(resultStore, examStore))
		pr.With(rbac.Require("certificate:view-own")).
			Get("/api/certificates/{resultID}/download", api.DownloadCertificateHandler(resultStore, examStore))
		pr.With(rbac.Require("dashboard:view")).
			Get("/api/dashboard", api.DashboardHandler(agg))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
