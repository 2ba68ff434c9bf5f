package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"megheza-backend/internal/domains/application/model"
)

// =====================================================
// APPLICATION SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// PUBLIC OPERATIONS
	// ========================================

	// Register runs normalize, validate, sanitize, re-validate and persist.
	// Field problems come back as *model.ValidationError, a taken email as model.ErrDuplicateEmail.
	Register(ctx context.Context, sub *model.Submission) (*model.ApplicationResponse, error)

	// ========================================
	// ADMIN OPERATIONS
	// ========================================

	List(ctx context.Context, filter model.ListFilter) ([]model.ApplicationResponse, error)

	Get(ctx context.Context, id uuid.UUID) (*model.ApplicationResponse, error)

	// SetVerified persists the flag. A false to true transition queues the applicant notification.
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*model.VerifyResponse, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Document returns the decoded bytes of one document, or a JPEG thumbnail for images.
	Document(ctx context.Context, id uuid.UUID, field string, thumbnail bool) (*model.Document, error)

	// Export writes every application, documents excluded, as an XLSX workbook.
	Export(ctx context.Context, w io.Writer) error

	// ========================================
	// RETENTION
	// ========================================

	// RedactExpired nulls the press card of verified applications older than retention.
	// Zero retention uses the configured window.
	RedactExpired(ctx context.Context, now time.Time, retention time.Duration) (int, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
