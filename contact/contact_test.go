package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeehouse/models"
	"coffeehouse/storage"
)

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendEmail(to, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func validMessage() models.ContactMessage {
	return models.ContactMessage{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Wholesale inquiry",
		Message: "Do you offer bulk pricing on the Ethiopian beans?",
	}
}

func TestSubmitRecordsAndForwards(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewService(storage.NewMemory(), mailer, "shop@example.com", zerolog.Nop())

	require.NoError(t, svc.Submit(context.Background(), validMessage()))
	assert.Equal(t, []string{"shop@example.com"}, mailer.sent)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(storage.NewMemory(), &stubMailer{}, "", zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.ContactMessage)
	}{
		{"blank name", func(m *models.ContactMessage) { m.Name = " " }},
		{"malformed email", func(m *models.ContactMessage) { m.Email = "ada@no-tld" }},
		{"blank subject", func(m *models.ContactMessage) { m.Subject = "" }},
		{"blank message", func(m *models.ContactMessage) { m.Message = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validMessage()
			tt.mutate(&msg)
			require.ErrorIs(t, svc.Submit(ctx, msg), ErrInvalidInput)
		})
	}
}

func TestSubmitForwardFailureIsNotFatal(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	svc := NewService(storage.NewMemory(), mailer, "shop@example.com", zerolog.Nop())

	require.NoError(t, svc.Submit(context.Background(), validMessage()),
		"the message is on record even when forwarding fails")
}

func TestSubscribeNewsletter(t *testing.T) {
	svc := NewService(storage.NewMemory(), &stubMailer{}, "", zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.SubscribeNewsletter(ctx, "ada@example.com"))
	require.NoError(t, svc.SubscribeNewsletter(ctx, "ADA@example.com"), "repeat signup is silently accepted")
	require.ErrorIs(t, svc.SubscribeNewsletter(ctx, "not-an-email"), ErrInvalidInput)
}
