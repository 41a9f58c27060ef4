// Package users manages registered accounts: registration with email
// verification, login, and profile updates. Credentials are stored as
// bcrypt hashes in the users list under the storage port.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"coffeehouse/models"
	"coffeehouse/storage"
)

var (
	// ErrInvalidInput wraps registration and profile field errors.
	ErrInvalidInput = errors.New("users: invalid input")
	// ErrEmailTaken rejects a second registration for the same email.
	ErrEmailTaken = errors.New("users: email already registered")
	// ErrInvalidCredentials covers unknown email and wrong password
	// alike, so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("users: invalid email or password")
	// ErrNotVerified blocks login before the email is verified.
	ErrNotVerified = errors.New("users: email not verified")
	// ErrUserNotFound is returned by profile lookups.
	ErrUserNotFound = errors.New("users: user not found")
	// ErrInvalidToken rejects an unknown verification token.
	ErrInvalidToken = errors.New("users: invalid verification token")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mailer sends the verification email. Satisfied by
// *utils.EmailService.
type Mailer interface {
	SendVerificationEmail(to, token string) error
}

// TokenFunc issues a signed verification token for an email/role
// pair.
type TokenFunc func(email, role string) (string, error)

// Service owns the users list. The mutex serializes
// read-modify-write cycles against the port.
type Service struct {
	mu       sync.Mutex
	port     storage.Port
	mailer   Mailer
	newToken TokenFunc
	now      func() time.Time
	log      zerolog.Logger
}

// NewService returns a user service over the given port.
func NewService(port storage.Port, mailer Mailer, newToken TokenFunc, log zerolog.Logger) *Service {
	return &Service{
		port:     port,
		mailer:   mailer,
		newToken: newToken,
		now:      time.Now,
		log:      log,
	}
}

// Register creates an unverified account and sends the verification
// email.
func (s *Service) Register(ctx context.Context, name, email, password, phone string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return models.User{}, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(password) < 8 {
		return models.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if phone != "" && !validPhone(phone) {
		return models.User{}, fmt.Errorf("%w: malformed phone number", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range list {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("users: hashing password: %w", err)
	}
	token, err := s.newToken(email, "user")
	if err != nil {
		return models.User{}, fmt.Errorf("users: generating verification token: %w", err)
	}

	user := models.User{
		ID:                uuid.NewString(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Phone:             strings.TrimSpace(phone),
		Role:              "user",
		IsVerified:        false,
		VerificationToken: token,
		CreatedAt:         s.now().UTC(),
	}
	list = append(list, user)
	if err := s.saveLocked(ctx, list); err != nil {
		return models.User{}, err
	}

	if err := s.mailer.SendVerificationEmail(user.Email, token); err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("verification email failed")
	}
	return user, nil
}

// Login checks the credentials and returns the account. Unverified
// accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range list {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if !u.IsVerified {
			return models.User{}, ErrNotVerified
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return models.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return models.User{}, ErrInvalidCredentials
}

// Verify marks the account holding the given token as verified and
// consumes the token.
func (s *Service) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].VerificationToken == token {
			list[i].IsVerified = true
			list[i].VerificationToken = ""
			return s.saveLocked(ctx, list)
		}
	}
	return ErrInvalidToken
}

// Get returns the account registered under email.
func (s *Service) Get(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range list {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// UpdateProfile changes the account's name, phone and address. Email
// is the account identity and stays immutable.
func (s *Service) UpdateProfile(ctx context.Context, email, name, phone, address string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if phone != "" && !validPhone(phone) {
		return models.User{}, fmt.Errorf("%w: malformed phone number", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked(ctx)
	if err != nil {
		return models.User{}, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Email, email) {
			list[i].Name = name
			list[i].Phone = strings.TrimSpace(phone)
			list[i].Address = strings.TrimSpace(address)
			if err := s.saveLocked(ctx, list); err != nil {
				return models.User{}, err
			}
			return list[i], nil
		}
	}
	return models.User{}, ErrUserNotFound
}

var phoneChars = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// validPhone accepts the formats the profile form did: digits with
// optional spaces, dashes, parentheses and a plus, at least ten
// digits overall.
func validPhone(phone string) bool {
	if !phoneChars.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

func (s *Service) loadLocked(ctx context.Context) ([]models.User, error) {
	data, err := s.port.Load(ctx, storage.UsersKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var list []models.User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) saveLocked(ctx context.Context, list []models.User) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.port.Save(ctx, storage.UsersKey, data)
}
