package models

import (
	"time"
)

// ContactMessage represents a submission from the contact form.
type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}
