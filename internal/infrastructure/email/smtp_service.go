package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"megheza-backend/internal/config"
)

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
	SendVerifiedEmail(ctx context.Context, data VerifiedEmailData) error
}

var verifiedTemplate = template.Must(template.New("verified").Parse(`<p>Hello {{.FullName}},</p>
<p>Your journalist application has been reviewed and <strong>verified</strong>.</p>
<p>You can now use your verified status with the Megheza network.</p>
<p>The Megheza team</p>`))

// RenderVerified renders the body of the verification notification.
func RenderVerified(data VerifiedEmailData) (string, error) {
	var buf bytes.Buffer
	if err := verifiedTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render verified email: %w", err)
	}
	return buf.String(), nil
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpEmailService struct {
	dialer Dialer
	from   string
}

// NewSMTPEmailService sends mail through the configured SMTP relay.
func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return NewEmailService(
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg.From,
	)
}

func NewEmailService(dialer Dialer, from string) EmailService {
	return &smtpEmailService{dialer: dialer, from: from}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", req.To...)
	m.SetHeader("Subject", req.Subject)

	contentType := "text/plain"
	if req.IsHTML {
		contentType = "text/html"
	}
	m.SetBody(contentType, req.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().
			Err(err).
			Strs("to", req.To).
			Str("subject", req.Subject).
			Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendVerifiedEmail(ctx context.Context, data VerifiedEmailData) error {
	body, err := RenderVerified(data)
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: "Your Megheza journalist application is verified",
		Body:    body,
		IsHTML:  true,
	})
}
