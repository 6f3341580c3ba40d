package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid delivers mail through the SendGrid v3 API.
type SendGrid struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGrid constructs a SendGrid-backed mailer.
func NewSendGrid(apiKey, fromName, fromEmail string) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *SendGrid) Send(_ context.Context, to, subject, body string) error {
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail("", to), body, "")
	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
