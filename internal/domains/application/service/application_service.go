package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"megheza-backend/internal/domains/application/metrics"
	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/domains/application/repository"
	"megheza-backend/internal/infrastructure/storage"
	"megheza-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

// Options tunes the optional behaviour of the service.
type Options struct {
	RetentionDays  int
	NotifyOnVerify bool
}

type applicationService struct {
	repo    repository.Repository
	store   storage.DocumentStore
	images  *storage.ImageProcessor
	tasks   TaskEnqueuer // nil disables notifications
	metrics *metrics.Metrics
	opts    Options
}

func NewApplicationService(
	repo repository.Repository,
	store storage.DocumentStore,
	tasks TaskEnqueuer,
	m *metrics.Metrics,
	opts Options,
) ServiceInterface {
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = 30
	}
	return &applicationService{
		repo:    repo,
		store:   store,
		images:  storage.NewImageProcessor(),
		tasks:   tasks,
		metrics: m,
		opts:    opts,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *applicationService) Register(ctx context.Context, sub *model.Submission) (*model.ApplicationResponse, error) {
	start := time.Now()
	defer s.metrics.ObserveRegister(start)

	// Step 1: Normalize
	in := sub.Clone()
	in.Normalize()

	// Step 2: Validate the raw input
	if errs := model.Validate(&in); len(errs) > 0 {
		s.metrics.IncrementSubmission(metrics.OutcomeInvalid)
		return nil, model.NewValidationError(errs)
	}

	// Step 3: Sanitize, then validate again since stripping markup can empty a required field
	model.Sanitize(&in)
	if errs := model.Validate(&in); len(errs) > 0 {
		s.metrics.IncrementSubmission(metrics.OutcomeInvalid)
		return nil, model.NewValidationError(errs)
	}

	app := model.NewApplication(&in)

	// Step 4: Hand documents to the store
	if err := s.storeDocuments(ctx, app); err != nil {
		s.metrics.IncrementSubmission(metrics.OutcomeError)
		logger.Error("Register: document store failed", err)
		return nil, model.NewStoreUnavailableError(err)
	}

	// Step 5: Persist in one statement
	if err := s.repo.Create(ctx, app); err != nil {
		s.discardDocuments(ctx, app)
		if errors.Is(err, model.ErrDuplicateEmail) {
			s.metrics.IncrementSubmission(metrics.OutcomeDuplicate)
			return nil, model.NewDuplicateEmailError()
		}
		s.metrics.IncrementSubmission(metrics.OutcomeError)
		logger.Error("Register: persist failed", err)
		return nil, model.NewStoreUnavailableError(err)
	}

	s.metrics.IncrementSubmission(metrics.OutcomeAccepted)
	logger.Info("Application registered", map[string]interface{}{
		"application_id": app.ID.String(),
		"store":          s.store.Name(),
	})

	resp := app.ToResponse()
	return &resp, nil
}

func (s *applicationService) storeDocuments(ctx context.Context, app *model.Application) error {
	for _, field := range []string{model.FieldProfilePicture, model.FieldPressCard} {
		encoded := app.Document(field)
		if encoded == nil {
			continue
		}
		ref, err := s.store.Put(ctx, app.ID, field, *encoded)
		if err != nil {
			return fmt.Errorf("store %s: %w", field, err)
		}
		app.SetDocument(field, &ref)
	}
	return nil
}

func (s *applicationService) discardDocuments(ctx context.Context, app *model.Application) {
	if app.ProfilePicture == nil && app.PressCard == nil {
		return
	}
	if err := s.store.DeleteApplication(ctx, app.ID); err != nil {
		logger.Error("Register: failed to discard documents", err)
	}
}

// =====================================================
// ADMIN READS
// =====================================================

func (s *applicationService) List(ctx context.Context, filter model.ListFilter) ([]model.ApplicationResponse, error) {
	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, s.storeError("List", err)
	}

	out := make([]model.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, app.ToResponse())
	}
	return out, nil
}

func (s *applicationService) Get(ctx context.Context, id uuid.UUID) (*model.ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("Get", err)
	}
	resp := app.ToResponse()
	return &resp, nil
}

// =====================================================
// VERIFY
// =====================================================

func (s *applicationService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*model.VerifyResponse, error) {
	previous, err := s.repo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, s.storeError("SetVerified", err)
	}
	s.metrics.IncrementVerification(verified)

	if verified && !previous {
		s.queueNotification(ctx, id)
	}

	return &model.VerifyResponse{Verified: verified}, nil
}

// queueNotification never fails the verification; the flag is already persisted.
func (s *applicationService) queueNotification(ctx context.Context, id uuid.UUID) {
	if s.tasks == nil || !s.opts.NotifyOnVerify {
		return
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("SetVerified: cannot load application for notification", err)
		return
	}

	payload, err := json.Marshal(model.NotifyVerifiedPayload{
		ApplicationID: app.ID,
		Email:         app.Email,
		FullName:      app.FullName,
	})
	if err != nil {
		logger.Error("SetVerified: marshal notification payload", err)
		return
	}

	task := asynq.NewTask(model.TypeNotifyVerified, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task,
		asynq.Queue(model.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	); err != nil {
		logger.Error("SetVerified: enqueue notification", err)
	}
}

// =====================================================
// DELETE
// =====================================================

func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError("Delete", err)
	}
	s.metrics.IncrementDeletion()

	if err := s.store.DeleteApplication(ctx, id); err != nil {
		logger.Error("Delete: failed to remove stored documents", err)
	}
	return nil
}

// =====================================================
// DOCUMENTS
// =====================================================

func (s *applicationService) Document(ctx context.Context, id uuid.UUID, field string, thumbnail bool) (*model.Document, error) {
	if field != model.FieldProfilePicture && field != model.FieldPressCard {
		return nil, model.ErrUnknownDocument
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("Document", err)
	}

	ref := app.Document(field)
	if ref == nil {
		return nil, model.ErrDocumentMissing
	}

	data, mimeType, err := s.store.Get(ctx, *ref)
	if err != nil {
		return nil, s.storeError("Document", err)
	}

	if thumbnail && s.images.IsImage(data) {
		thumb, err := s.images.Thumbnail(data)
		if err != nil {
			return nil, s.storeError("Document", err)
		}
		return &model.Document{Data: thumb, MimeType: "image/jpeg"}, nil
	}

	return &model.Document{Data: data, MimeType: mimeType}, nil
}

// =====================================================
// RETENTION
// =====================================================

func (s *applicationService) RedactExpired(ctx context.Context, now time.Time, retention time.Duration) (int, error) {
	if retention <= 0 {
		retention = time.Duration(s.opts.RetentionDays) * 24 * time.Hour
	}
	cutoff := now.Add(-retention)

	apps, err := s.repo.ListRedactable(ctx, cutoff)
	if err != nil {
		return 0, s.storeError("RedactExpired", err)
	}

	redacted := 0
	for _, app := range apps {
		if err := ctx.Err(); err != nil {
			return redacted, err
		}
		if app.PressCard != nil {
			if err := s.store.Delete(ctx, *app.PressCard); err != nil {
				logger.Error("RedactExpired: failed to delete stored press card", err)
				continue
			}
		}
		if err := s.repo.ClearPressCard(ctx, app.ID); err != nil {
			if errors.Is(err, model.ErrApplicationNotFound) {
				continue
			}
			return redacted, s.storeError("RedactExpired", err)
		}
		redacted++
	}

	s.metrics.AddRedacted(redacted)
	return redacted, nil
}

// storeError keeps domain errors and wraps everything else as StoreUnavailable.
func (s *applicationService) storeError(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrApplicationNotFound):
		return model.NewNotFoundError()
	case errors.Is(err, model.ErrUnknownDocument), errors.Is(err, model.ErrDocumentMissing):
		return err
	}
	logger.Error(op+": store failure", err)
	return model.NewStoreUnavailableError(err)
}
