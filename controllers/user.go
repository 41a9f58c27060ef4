package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coffeehouse/middleware"
	"coffeehouse/users"
	"coffeehouse/utils"
)

// UserController handles user-related requests
type UserController struct {
	Users *users.Service
}

// NewUserController creates a new UserController
func NewUserController(svc *users.Service) *UserController {
	return &UserController{Users: svc}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	_, err := uc.Users.Register(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, users.ErrEmailTaken):
			http.Error(w, "User already exists", http.StatusBadRequest)
		default:
			http.Error(w, "Error creating user", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode("User registered successfully. Please check your email to verify your account.")
}

// VerifyEmail handles email verification
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Verification token missing", http.StatusBadRequest)
		return
	}

	if err := uc.Users.Verify(r.Context(), token); err != nil {
		if errors.Is(err, users.ErrInvalidToken) {
			http.Error(w, "User not found or already verified", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error updating user verification status", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode("Email verified successfully. You can now log in.")
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := uc.Users.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotVerified):
			http.Error(w, "Email not verified", http.StatusUnauthorized)
		case errors.Is(err, users.ErrInvalidCredentials):
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		default:
			http.Error(w, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	user, err := uc.Users.Get(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	// Never echo credential material.
	user.PasswordHash = ""
	user.VerificationToken = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateProfile changes the authenticated user's name, phone and
// address.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := uc.Users.UpdateProfile(r.Context(), claims.Email, req.Name, req.Phone, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		default:
			http.Error(w, "Error updating profile", http.StatusInternalServerError)
		}
		return
	}

	user.PasswordHash = ""
	user.VerificationToken = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
