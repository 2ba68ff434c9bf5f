package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"megheza-backend/internal/domains/application/model"
)

// MemoryRepository is an in-memory application store. Email uniqueness is
// enforced under the same lock as the insert, like a unique index.
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*model.Application
	byEmail map[string]uuid.UUID

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*model.Application),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, app *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	email := strings.ToLower(app.Email)
	if _, taken := r.byEmail[email]; taken {
		return model.ErrDuplicateEmail
	}
	stored := clone(app)
	stored.Email = email
	r.byID[app.ID] = stored
	r.byEmail[email] = app.ID
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	app, ok := r.byID[id]
	if !ok {
		return nil, model.ErrApplicationNotFound
	}
	return clone(app), nil
}

func (r *MemoryRepository) List(_ context.Context, filter model.ListFilter) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]*model.Application, 0, len(r.byID))
	for _, app := range r.byID {
		if filter.Verified != nil && app.Verified != *filter.Verified {
			continue
		}
		out = append(out, clone(app))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) SetVerified(_ context.Context, id uuid.UUID, verified bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}

	app, ok := r.byID[id]
	if !ok {
		return false, model.ErrApplicationNotFound
	}
	previous := app.Verified
	app.Verified = verified
	app.UpdatedAt = time.Now().UTC()
	return previous, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	app, ok := r.byID[id]
	if !ok {
		return model.ErrApplicationNotFound
	}
	delete(r.byEmail, app.Email)
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) SetDocument(_ context.Context, id uuid.UUID, field string, value *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if field != model.FieldProfilePicture && field != model.FieldPressCard {
		return model.ErrUnknownDocument
	}
	app, ok := r.byID[id]
	if !ok {
		return model.ErrApplicationNotFound
	}
	app.SetDocument(field, value)
	return nil
}

func (r *MemoryRepository) ListRedactable(_ context.Context, cutoff time.Time) ([]*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	var out []*model.Application
	for _, app := range r.byID {
		if app.Verified && app.CreatedAt.Before(cutoff) && app.PressCard != nil {
			out = append(out, clone(app))
		}
	}
	return out, nil
}

func (r *MemoryRepository) ClearPressCard(ctx context.Context, id uuid.UUID) error {
	return r.SetDocument(ctx, id, model.FieldPressCard, nil)
}

// Len reports how many applications are stored.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func clone(app *model.Application) *model.Application {
	c := *app
	c.Languages = append([]string(nil), app.Languages...)
	if app.ProfilePicture != nil {
		v := *app.ProfilePicture
		c.ProfilePicture = &v
	}
	if app.PressCard != nil {
		v := *app.PressCard
		c.PressCard = &v
	}
	return &c
}
