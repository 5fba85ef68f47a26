package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/digitalburnout/burnout-backend/internal/database"
	"github.com/digitalburnout/burnout-backend/internal/services"
	"github.com/digitalburnout/burnout-backend/pkg/utils"
)

// Register Request
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login Request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Auth Response
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	User    map[string]interface{} `json:"user,omitempty"`
	Token   string                 `json:"token,omitempty"`
}

const uniqueViolation = pq.ErrorCode("23505")

// Register handles user registration
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Name, username, email, and password are required")
		return
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := utils.NormalizeEmail(req.Email)

	// Friendly pre-checks; the unique constraints below remain the authority
	// when two registrations race past these.
	var existing string
	err := database.PostgresDB.QueryRow(
		"SELECT username FROM users WHERE username = $1", req.Username,
	).Scan(&existing)
	if err == nil {
		respondError(w, http.StatusConflict, "Username is already taken")
		return
	} else if err != sql.ErrNoRows {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	err = database.PostgresDB.QueryRow(
		"SELECT email FROM users WHERE LOWER(email) = $1", email,
	).Scan(&existing)
	if err == nil {
		respondError(w, http.StatusConflict, "An account with this email already exists")
		return
	} else if err != sql.ErrNoRows {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	// Create user
	userID := uuid.New()
	now := time.Now()

	_, err = database.PostgresDB.Exec(`
		INSERT INTO users (id, name, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, req.Name, req.Username, email, hashedPassword, now)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			respondError(w, http.StatusConflict, "Username or email is already taken")
			return
		}
		log.Printf("[Register] insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	// Return user (without password)
	userMap := map[string]interface{}{
		"id":         userID.String(),
		"name":       req.Name,
		"username":   req.Username,
		"email":      email,
		"created_at": now,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AuthResponse{
		Success: true,
		Message: "User created successfully",
		User:    userMap,
	})
}

// Login handles user login and issues an auth token
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate required fields
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	// Find user (username lookup is case-sensitive)
	var userID uuid.UUID
	var name, email, passwordHash string
	var createdAt time.Time

	err := database.PostgresDB.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE username = $1
	`, req.Username).Scan(&userID, &name, &email, &passwordHash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "No account with this username")
		} else {
			respondError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Verify password
	valid, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !valid {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := services.IssueToken(userID.String(), req.Username)
	if err != nil {
		log.Printf("[Login] failed to issue token: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	userMap := map[string]interface{}{
		"id":         userID.String(),
		"name":       name,
		"username":   req.Username,
		"email":      email,
		"created_at": createdAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    userMap,
		Token:   token,
	})
}

// respondError writes the standard failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AuthResponse{
		Success: false,
		Message: message,
	})
}
