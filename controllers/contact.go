package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coffeehouse/contact"
	"coffeehouse/models"
)

// ContactController handles the contact form and newsletter signups.
type ContactController struct {
	Contact *contact.Service
}

// NewContactController creates a new ContactController
func NewContactController(svc *contact.Service) *ContactController {
	return &ContactController{Contact: svc}
}

// SubmitMessage records a contact form submission.
func (cc *ContactController) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := cc.Contact.Submit(r.Context(), msg); err != nil {
		if errors.Is(err, contact.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Error saving message", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode("Thanks for reaching out! We'll get back to you soon.")
}

// SubscribeNewsletter records a newsletter signup.
func (cc *ContactController) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := cc.Contact.SubscribeNewsletter(r.Context(), req.Email); err != nil {
		if errors.Is(err, contact.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Error subscribing", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode("Subscribed to the newsletter.")
}
