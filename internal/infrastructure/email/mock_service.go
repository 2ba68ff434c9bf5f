package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ================================================
// MOCK EMAIL SERVICE (for development)
// ================================================

// MockEmailService logs messages instead of sending them. Used when SMTP_HOST is empty.
type MockEmailService struct{}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	log.Info().
		Strs("to", req.To).
		Str("subject", req.Subject).
		Bool("html", req.IsHTML).
		Msg("[MOCK] Email sent successfully")
	return nil
}

func (s *MockEmailService) SendVerifiedEmail(ctx context.Context, data VerifiedEmailData) error {
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
