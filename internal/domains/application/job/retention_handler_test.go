package job_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"megheza-backend/internal/domains/application/job"
	"megheza-backend/internal/domains/application/model"
)

// mockService stubs only RedactExpired.
type mockService struct {
	mock.Mock
}

func (m *mockService) Register(context.Context, *model.Submission) (*model.ApplicationResponse, error) {
	panic("unexpected call")
}

func (m *mockService) List(context.Context, model.ListFilter) ([]model.ApplicationResponse, error) {
	panic("unexpected call")
}

func (m *mockService) Get(context.Context, uuid.UUID) (*model.ApplicationResponse, error) {
	panic("unexpected call")
}

func (m *mockService) SetVerified(context.Context, uuid.UUID, bool) (*model.VerifyResponse, error) {
	panic("unexpected call")
}

func (m *mockService) Delete(context.Context, uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockService) Document(context.Context, uuid.UUID, string, bool) (*model.Document, error) {
	panic("unexpected call")
}

func (m *mockService) Export(context.Context, io.Writer) error {
	panic("unexpected call")
}

func (m *mockService) RedactExpired(ctx context.Context, now time.Time, retention time.Duration) (int, error) {
	args := m.Called(retention)
	return args.Int(0), args.Error(1)
}

func TestRedactDocumentsHandler_DefaultRetention(t *testing.T) {
	svc := new(mockService)
	svc.On("RedactExpired", time.Duration(0)).Return(3, nil)

	h := job.NewRedactDocumentsHandler(svc)
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(model.TypeRedactDocuments, nil)))
	svc.AssertExpectations(t)
}

func TestRedactDocumentsHandler_PayloadRetention(t *testing.T) {
	svc := new(mockService)
	svc.On("RedactExpired", 7*24*time.Hour).Return(0, nil)

	payload, err := json.Marshal(model.RedactDocumentsPayload{RetentionDays: 7})
	require.NoError(t, err)

	h := job.NewRedactDocumentsHandler(svc)
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(model.TypeRedactDocuments, payload)))
	svc.AssertExpectations(t)
}

func TestRedactDocumentsHandler_Errors(t *testing.T) {
	svc := new(mockService)
	svc.On("RedactExpired", time.Duration(0)).Return(0, errors.New("db down"))

	h := job.NewRedactDocumentsHandler(svc)
	err := h.ProcessTask(context.Background(), asynq.NewTask(model.TypeRedactDocuments, []byte("{}")))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), asynq.NewTask(model.TypeRedactDocuments, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
