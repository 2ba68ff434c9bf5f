package board_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megheza-backend/internal/domains/application/board"
	"megheza-backend/internal/domains/application/metrics"
	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/domains/application/service"
	"megheza-backend/internal/infrastructure/storage"
	"megheza-backend/internal/testutil"
)

// serviceAPI serves the board straight from the application service.
type serviceAPI struct {
	service.ServiceInterface
	failVerify error
	calls      int
}

func (a *serviceAPI) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*model.VerifyResponse, error) {
	a.calls++
	if a.failVerify != nil {
		return nil, a.failVerify
	}
	return a.ServiceInterface.SetVerified(ctx, id, verified)
}

func setup(t *testing.T, n int) (*board.Board, *serviceAPI, []uuid.UUID) {
	t.Helper()
	svc := service.NewApplicationService(testutil.NewMemoryRepository(), storage.NewInlineStore(), nil,
		metrics.New(prometheus.NewRegistry()), service.Options{})

	var ids []uuid.UUID
	for i := 0; i < n; i++ {
		resp, err := svc.Register(context.Background(), testutil.ValidSubmission(fmt.Sprintf("user%d@example.com", i)))
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	api := &serviceAPI{ServiceInterface: svc}
	b := board.New(api)
	require.NoError(t, b.Load(context.Background()))
	return b, api, ids
}

func verifiedOf(b *board.Board, id uuid.UUID) (bool, bool) {
	for _, app := range b.Items() {
		if app.ID == id {
			return app.Verified, true
		}
	}
	return false, false
}

func TestBoard_LoadReflectsPersistedState(t *testing.T) {
	b, api, ids := setup(t, 2)
	_, err := api.ServiceInterface.SetVerified(context.Background(), ids[0], true)
	require.NoError(t, err)

	require.NoError(t, b.Load(context.Background()))
	v, ok := verifiedOf(b, ids[0])
	require.True(t, ok)
	assert.True(t, v)
	assert.Len(t, b.Items(), 2)
}

func TestBoard_ToggleSingleRoundTrip(t *testing.T) {
	b, api, ids := setup(t, 1)

	require.NoError(t, b.Toggle(context.Background(), ids[0]))
	assert.Equal(t, 1, api.calls)
	v, _ := verifiedOf(b, ids[0])
	assert.True(t, v)

	persisted, err := api.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.True(t, persisted.Verified)

	require.NoError(t, b.Toggle(context.Background(), ids[0]))
	v, _ = verifiedOf(b, ids[0])
	assert.False(t, v)
}

func TestBoard_ToggleRevertsOnFailure(t *testing.T) {
	b, api, ids := setup(t, 1)
	_, err := b.Expand(context.Background(), ids[0])
	require.NoError(t, err)

	api.failVerify = errors.New("network down")
	err = b.Toggle(context.Background(), ids[0])
	require.Error(t, err)

	v, _ := verifiedOf(b, ids[0])
	assert.False(t, v)
	expanded, ok := b.Expanded(ids[0])
	require.True(t, ok)
	assert.False(t, expanded.Verified)
	assert.Equal(t, err, b.Err())
}

func TestBoard_ToggleNotFoundLeavesList(t *testing.T) {
	b, api, ids := setup(t, 2)
	api.failVerify = model.NewNotFoundError()

	err := b.Toggle(context.Background(), ids[1])
	assert.ErrorIs(t, err, model.ErrApplicationNotFound)
	assert.Len(t, b.Items(), 2)
	v, ok := verifiedOf(b, ids[1])
	assert.True(t, ok)
	assert.False(t, v)
}

func TestBoard_ToggleUnknownID(t *testing.T) {
	b, api, _ := setup(t, 1)

	assert.ErrorIs(t, b.Toggle(context.Background(), uuid.New()), board.ErrNotLoaded)
	assert.Zero(t, api.calls)
}

func TestBoard_Remove(t *testing.T) {
	b, api, ids := setup(t, 2)
	_, err := b.Expand(context.Background(), ids[0])
	require.NoError(t, err)

	require.NoError(t, b.Remove(context.Background(), ids[0]))
	_, ok := verifiedOf(b, ids[0])
	assert.False(t, ok)
	_, ok = b.Expanded(ids[0])
	assert.False(t, ok)

	_, err = api.Get(context.Background(), ids[0])
	assert.ErrorIs(t, err, model.ErrApplicationNotFound)

	assert.Len(t, b.Items(), 1)
}

func TestBoard_RemoveNotFoundKeepsList(t *testing.T) {
	b, api, ids := setup(t, 2)
	_, err := b.Expand(context.Background(), ids[0])
	require.NoError(t, err)

	// Deleted behind the board's back.
	require.NoError(t, api.Delete(context.Background(), ids[0]))

	err = b.Remove(context.Background(), ids[0])
	assert.ErrorIs(t, err, model.ErrApplicationNotFound)
	assert.ErrorIs(t, b.Err(), model.ErrApplicationNotFound)
	assert.Len(t, b.Items(), 2)
	_, ok := verifiedOf(b, ids[0])
	assert.True(t, ok)
	_, ok = b.Expanded(ids[0])
	assert.True(t, ok)
}
