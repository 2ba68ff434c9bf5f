package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"megheza-backend/internal/domains/application/model"
)

// =====================================================
// APPLICATION REPOSITORY INTERFACE
// =====================================================

type Repository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create inserts a new application in a single statement.
	// Returns model.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, app *model.Application) error

	// GetByID returns model.ErrApplicationNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)

	// List returns applications newest first.
	List(ctx context.Context, filter model.ListFilter) ([]*model.Application, error)

	// SetVerified updates the verification flag and returns the previous value.
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (previous bool, err error)

	// Delete removes an application.
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// Document Operations
	// ========================================

	// SetDocument replaces one document column (profile picture or press card).
	SetDocument(ctx context.Context, id uuid.UUID, field string, value *string) error

	// ========================================
	// Retention
	// ========================================

	// ListRedactable returns verified applications created before cutoff that still hold a press card.
	ListRedactable(ctx context.Context, cutoff time.Time) ([]*model.Application, error)

	// ClearPressCard nulls the press card column.
	ClearPressCard(ctx context.Context, id uuid.UUID) error
}
