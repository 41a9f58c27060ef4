package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"coffeehouse/models"
)

// EmailService sends transactional email through SendGrid. With no
// API key configured it becomes a no-op, so the service can run
// locally without an account.
type EmailService struct {
	client *sendgrid.Client
	from   string
}

// NewEmailService reads SENDGRID_API_KEY and EMAIL_FROM from the
// environment.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	svc := &EmailService{
		from: os.Getenv("EMAIL_FROM"),
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

// SendEmail sends a plain-text email to the given recipient.
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if es.client == nil {
		return nil
	}
	from := mail.NewEmail("CoffeeHouse", es.from)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendVerificationEmail sends an email verification link to a newly
// registered user.
func (es *EmailService) SendVerificationEmail(toEmail, token string) error {
	subject := "Verify Your CoffeeHouse Email"
	link := fmt.Sprintf("http://localhost:%s/verify?token=%s", os.Getenv("PORT"), token)
	content := fmt.Sprintf("Please verify your email by visiting the following link:\n\n%s\n", link)
	return es.SendEmail(toEmail, subject, content)
}

// SendOrderConfirmationEmail sends the order recap after checkout.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation - CoffeeHouse"
	content := fmt.Sprintf(
		"Dear %s,\n\nThank you for your purchase! Your order %s has been confirmed.\n\nTotal: $%s\nPayment Method: %s\n\nThank you for shopping with us!\n",
		order.Customer.FirstName,
		order.ID,
		order.Totals.Total.StringFixed(2),
		order.PaymentMethod,
	)
	return es.SendEmail(toEmail, subject, content)
}
