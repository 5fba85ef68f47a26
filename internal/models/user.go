package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record in PostgreSQL. Username is case-sensitive and
// unique; email uniqueness is enforced case-insensitively at the index level.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never returned in JSON
	CreatedAt    time.Time `json:"created_at"`
}
