package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/infrastructure/email"
)

// ============================================
// Applicant Verified Notification Handler
// ============================================

type VerifiedNotificationHandler struct {
	emailService email.EmailService
}

func NewVerifiedNotificationHandler(emailService email.EmailService) *VerifiedNotificationHandler {
	return &VerifiedNotificationHandler{
		emailService: emailService,
	}
}

// ProcessTask handles model.TypeNotifyVerified.
func (h *VerifiedNotificationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.NotifyVerifiedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal NotifyVerified payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.Email == "" {
		return fmt.Errorf("notify verified: empty email: %w", asynq.SkipRetry)
	}

	log.Info().
		Str("application_id", payload.ApplicationID.String()).
		Msg("Processing verified notification")

	if err := h.emailService.SendVerifiedEmail(ctx, email.VerifiedEmailData{
		Email:    payload.Email,
		FullName: payload.FullName,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to send verified notification")
		return fmt.Errorf("send verified email: %w", err)
	}

	log.Info().
		Str("application_id", payload.ApplicationID.String()).
		Msg("Verified notification sent successfully")

	return nil
}
