package models

import (
	"time"
)

// User represents a registered account. Only the bcrypt hash of the
// password is ever stored.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"password_hash"`
	Phone             string    `json:"phone,omitempty"`
	Address           string    `json:"address,omitempty"`
	Role              string    `json:"role"` // "user" or "admin"
	IsVerified        bool      `json:"is_verified"`
	VerificationToken string    `json:"verification_token,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
