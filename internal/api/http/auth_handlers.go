package http

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/quizify/internal/auth"
)

// normalizeEmail is applied on every path that touches users.email, so the
// stored form and every lookup agree regardless of how the client cased it.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isUniqueViolation matches the unique-constraint error text of both
// supported drivers; neither exposes a stable sentinel through database/sql.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	AccountType string `json:"account_type" validate:"omitempty,oneof=student admin"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// POST /api/auth/register
func RegisterHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "missing required fields")
			return
		}
		role := req.AccountType
		if role == "" {
			role = "student"
		}
		email := normalizeEmail(req.Email)

		var exist int
		err := db.QueryRowContext(r.Context(),
			`SELECT 1 FROM users WHERE email=$1 OR username=$2`,
			email, req.Username).Scan(&exist)
		switch {
		case err == nil:
			writeError(w, http.StatusConflict, "user already exists with this email")
			return
		case !errors.Is(err, sql.ErrNoRows):
			log.Printf("register: user lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to register user")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			log.Printf("register: password hash failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to register user")
			return
		}

		id := uuid.NewString()
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id,username,name,email,password_hash,role,created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			id, req.Username, req.Name, email, string(hash), role, time.Now().Unix())
		if err != nil {
			// the pre-check races with concurrent registrations; the UNIQUE
			// constraint is the authority
			if isUniqueViolation(err) {
				writeError(w, http.StatusConflict, "user already exists with this email")
				return
			}
			log.Printf("register: insert failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to register user")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "user registered successfully",
			"user":    userResponse{ID: id, Username: req.Username, Name: req.Name, Email: email, Role: role},
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func LoginHandler(db *sql.DB, svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "email and password required")
			return
		}

		var u userResponse
		var hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id,username,name,email,password_hash,role FROM users WHERE email=$1`,
			normalizeEmail(req.Email)).
			Scan(&u.ID, &u.Username, &u.Name, &u.Email, &hash, &u.Role)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			log.Printf("login: user lookup failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to log in")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		tok, err := svc.IssueJWT(u.ID, u.Name, u.Role)
		if err != nil {
			log.Printf("login: token issue failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to log in")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"access_token": tok,
			"user":         u,
		})
	}
}
