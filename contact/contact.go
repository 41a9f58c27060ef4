// Package contact handles the contact form and newsletter signups.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"coffeehouse/models"
	"coffeehouse/storage"
)

// ErrInvalidInput wraps form field errors.
var ErrInvalidInput = errors.New("contact: invalid input")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mailer forwards contact messages to the shop inbox. Satisfied by
// *utils.EmailService.
type Mailer interface {
	SendEmail(to, subject, content string) error
}

// Service persists contact messages and newsletter emails under their
// own keys.
type Service struct {
	mu       sync.Mutex
	port     storage.Port
	mailer   Mailer
	notifyTo string
	now      func() time.Time
	log      zerolog.Logger
}

// NewService returns a contact service. notifyTo is the inbox that
// receives a copy of each message; empty disables forwarding.
func NewService(port storage.Port, mailer Mailer, notifyTo string, log zerolog.Logger) *Service {
	return &Service{
		port:     port,
		mailer:   mailer,
		notifyTo: notifyTo,
		now:      time.Now,
		log:      log,
	}
}

// Submit validates and records a contact message, then forwards it.
// A forwarding failure is logged, not surfaced: the message is
// already on record.
func (s *Service) Submit(ctx context.Context, msg models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	switch {
	case msg.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !emailPattern.MatchString(msg.Email):
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	case msg.Subject == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidInput)
	case msg.Message == "":
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	msg.ReceivedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.ContactMessage
	if err := s.loadLocked(ctx, storage.ContactKey, &list); err != nil {
		return err
	}
	list = append(list, msg)
	if err := s.saveLocked(ctx, storage.ContactKey, list); err != nil {
		return err
	}

	if s.notifyTo != "" {
		subject := "Contact form: " + msg.Subject
		body := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
		if err := s.mailer.SendEmail(s.notifyTo, subject, body); err != nil {
			s.log.Error().Err(err).Msg("contact message forward failed")
		}
	}
	return nil
}

// SubscribeNewsletter records an email for the newsletter. Repeat
// subscriptions are accepted silently.
func (s *Service) SubscribeNewsletter(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var list []string
	if err := s.loadLocked(ctx, storage.NewsletterKey, &list); err != nil {
		return err
	}
	for _, existing := range list {
		if strings.EqualFold(existing, email) {
			return nil
		}
	}
	list = append(list, email)
	return s.saveLocked(ctx, storage.NewsletterKey, list)
}

func (s *Service) loadLocked(ctx context.Context, key string, out interface{}) error {
	data, err := s.port.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *Service) saveLocked(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.port.Save(ctx, key, data)
}
