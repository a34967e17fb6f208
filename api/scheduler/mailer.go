package scheduler

import (
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer delivers one email
type Mailer interface {
	Send(toName, toEmail, subject, htmlContent, plainText string) error
}

// SendgridHost is the default SendGrid API host
const SendgridHost = "https://api.sendgrid.com"

// SendgridMailer sends email through SendGrid
type SendgridMailer struct {
	APIKey    string
	Host      string
	FromName  string
	FromEmail string
}

// NewSendgridMailer returns a mailer using apiKey against the public API host
func NewSendgridMailer(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		APIKey:    apiKey,
		Host:      SendgridHost,
		FromName:  fromName,
		FromEmail: fromEmail,
	}
}

// Send sends an email using SendGrid
func (m *SendgridMailer) Send(toName, toEmail, subject, htmlContent, plainText string) error {
	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	request := sendgrid.GetRequest(m.APIKey, "/v3/mail/send", m.Host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(message)
	response, err := sendgrid.MakeRequest(request)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", toEmail)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", toEmail, "subject", subject)
	return nil
}
