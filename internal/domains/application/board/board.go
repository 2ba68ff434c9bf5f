// Package board is the admin review screen model: a list of applications,
// an expanded detail view and optimistic verification toggles.
package board

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"megheza-backend/internal/domains/application/model"
)

var ErrNotLoaded = errors.New("board: application is not in the list")

// AdminAPI is the admin side of the HTTP API. A missing record is reported
// as model.ErrApplicationNotFound.
type AdminAPI interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.ApplicationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ApplicationResponse, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*model.VerifyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Board struct {
	mu       sync.Mutex
	api      AdminAPI
	items    []model.ApplicationResponse
	expanded map[uuid.UUID]model.ApplicationResponse
	lastErr  error
}

func New(api AdminAPI) *Board {
	return &Board{
		api:      api,
		expanded: make(map[uuid.UUID]model.ApplicationResponse),
	}
}

// Load replaces the list with the persisted state.
func (b *Board) Load(ctx context.Context) error {
	items, err := b.api.List(ctx, model.ListFilter{})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		return err
	}
	b.items = items
	return nil
}

// Items returns a copy of the current list.
func (b *Board) Items() []model.ApplicationResponse {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.ApplicationResponse(nil), b.items...)
}

// Err is the error of the last failed operation, nil after a success.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Expand fetches the full record of one application.
func (b *Board) Expand(ctx context.Context, id uuid.UUID) (*model.ApplicationResponse, error) {
	app, err := b.api.Get(ctx, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		return nil, err
	}
	b.expanded[id] = *app
	if i := b.index(id); i >= 0 {
		b.items[i].Verified = app.Verified
	}
	return app, nil
}

// Expanded returns a previously expanded record.
func (b *Board) Expanded(id uuid.UUID) (model.ApplicationResponse, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	app, ok := b.expanded[id]
	return app, ok
}

// Toggle flips verified locally, then persists it with a single request.
// On failure the flag is restored and the list is otherwise left untouched.
func (b *Board) Toggle(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	i := b.index(id)
	if i < 0 {
		b.mu.Unlock()
		return ErrNotLoaded
	}
	previous := b.items[i].Verified
	b.setVerified(id, !previous)
	b.mu.Unlock()

	resp, err := b.api.SetVerified(ctx, id, !previous)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		b.setVerified(id, previous)
		return err
	}
	b.setVerified(id, resp.Verified)
	return nil
}

// Remove deletes an application and drops it from the list.
// Any failure, NotFound included, leaves the list untouched.
func (b *Board) Remove(ctx context.Context, id uuid.UUID) error {
	err := b.api.Delete(ctx, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		return err
	}
	if i := b.index(id); i >= 0 {
		b.items = append(b.items[:i], b.items[i+1:]...)
	}
	delete(b.expanded, id)
	return nil
}

func (b *Board) index(id uuid.UUID) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) setVerified(id uuid.UUID, verified bool) {
	if i := b.index(id); i >= 0 {
		b.items[i].Verified = verified
	}
	if app, ok := b.expanded[id]; ok {
		app.Verified = verified
		b.expanded[id] = app
	}
}
