package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"megheza-backend/internal/config"
	"megheza-backend/pkg/dataurl"
)

const minioRefPrefix = "minio://"

var ErrUnknownReference = errors.New("unknown document reference")

// DocumentStore keeps applicant documents. Validation always happens on the data URL
// before Put, so backends only move bytes.
type DocumentStore interface {
	// Put stores a validated data URL and returns the value to persist on the application.
	Put(ctx context.Context, applicationID uuid.UUID, field, encoded string) (string, error)

	// Get resolves a persisted value back to bytes and MIME type.
	Get(ctx context.Context, ref string) ([]byte, string, error)

	// Delete drops the bytes behind a persisted value. Inline values need nothing.
	Delete(ctx context.Context, ref string) error

	// DeleteApplication drops every document of an application.
	DeleteApplication(ctx context.Context, applicationID uuid.UUID) error

	Name() string
}

// NewDocumentStore picks the backend named by DOCUMENT_BACKEND.
func NewDocumentStore(ctx context.Context, cfg *config.Config) (DocumentStore, error) {
	switch cfg.Documents.Backend {
	case "inline", "":
		return NewInlineStore(), nil
	case "minio":
		s, err := NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return NewObjectStore(s), nil
	default:
		return nil, fmt.Errorf("unsupported document backend: %s", cfg.Documents.Backend)
	}
}

// ========================================
// INLINE
// ========================================

// InlineStore keeps the tagged string itself in the application row.
type InlineStore struct{}

func NewInlineStore() *InlineStore { return &InlineStore{} }

func (InlineStore) Name() string { return "inline" }

func (InlineStore) Put(_ context.Context, _ uuid.UUID, _ string, encoded string) (string, error) {
	return encoded, nil
}

func (InlineStore) Get(_ context.Context, ref string) ([]byte, string, error) {
	return dataurl.Decode(ref)
}

func (InlineStore) Delete(context.Context, string) error { return nil }

func (InlineStore) DeleteApplication(context.Context, uuid.UUID) error { return nil }

// ========================================
// OBJECT STORAGE
// ========================================

// ObjectBackend is the subset of MinIOStorage the object store needs.
type ObjectBackend interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	RemoveFolder(ctx context.Context, prefix string) error
}

// ObjectStore uploads document bytes and persists "minio://<key>" references.
// Inline values written before the switch stay readable.
type ObjectStore struct {
	backend ObjectBackend
}

func NewObjectStore(backend ObjectBackend) *ObjectStore {
	return &ObjectStore{backend: backend}
}

func (s *ObjectStore) Name() string { return "minio" }

func objectKey(applicationID uuid.UUID, field string) string {
	return fmt.Sprintf("applications/%s/%s", applicationID, field)
}

func (s *ObjectStore) Put(ctx context.Context, applicationID uuid.UUID, field, encoded string) (string, error) {
	data, mimeType, err := dataurl.Decode(encoded)
	if err != nil {
		return "", err
	}
	key := objectKey(applicationID, field)
	if err := s.backend.Upload(ctx, key, data, mimeType); err != nil {
		return "", err
	}
	return minioRefPrefix + key, nil
}

func (s *ObjectStore) Get(ctx context.Context, ref string) ([]byte, string, error) {
	if key, ok := strings.CutPrefix(ref, minioRefPrefix); ok {
		return s.backend.Download(ctx, key)
	}
	if strings.HasPrefix(ref, "data:") {
		return dataurl.Decode(ref)
	}
	return nil, "", ErrUnknownReference
}

func (s *ObjectStore) Delete(ctx context.Context, ref string) error {
	if key, ok := strings.CutPrefix(ref, minioRefPrefix); ok {
		return s.backend.Delete(ctx, key)
	}
	return nil
}

func (s *ObjectStore) DeleteApplication(ctx context.Context, applicationID uuid.UUID) error {
	return s.backend.RemoveFolder(ctx, fmt.Sprintf("applications/%s/", applicationID))
}
