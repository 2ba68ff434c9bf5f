package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/domains/application/service"
)

// RedactDocumentsHandler clears the press card of verified applications past retention.
type RedactDocumentsHandler struct {
	applicationService service.ServiceInterface
	now                func() time.Time
}

func NewRedactDocumentsHandler(applicationService service.ServiceInterface) *RedactDocumentsHandler {
	return &RedactDocumentsHandler{
		applicationService: applicationService,
		now:                time.Now,
	}
}

// ProcessTask handles model.TypeRedactDocuments.
func (h *RedactDocumentsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.RedactDocumentsPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal RedactDocuments payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	var retention time.Duration
	if payload.RetentionDays > 0 {
		retention = time.Duration(payload.RetentionDays) * 24 * time.Hour
	}

	redacted, err := h.applicationService.RedactExpired(ctx, h.now(), retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to redact expired documents")
		return fmt.Errorf("redact documents: %w", err)
	}

	log.Info().
		Int("redacted", redacted).
		Msg("Expired press cards redacted")

	return nil
}
