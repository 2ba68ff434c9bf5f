package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"megheza-backend/pkg/dataurl"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockBackend) Download(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

func (m *mockBackend) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBackend) RemoveFolder(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func TestInlineStore(t *testing.T) {
	ctx := context.Background()
	store := NewInlineStore()
	encoded := dataurl.Encode([]byte("%PDF-1.4 card"), "application/pdf")

	ref, err := store.Put(ctx, uuid.New(), "pressCard", encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, ref)

	data, mime, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, []byte("%PDF-1.4 card"), data)

	assert.NoError(t, store.Delete(ctx, ref))
}

func TestObjectStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	store := NewObjectStore(backend)
	id := uuid.New()
	raw := []byte("%PDF-1.4 card")
	key := "applications/" + id.String() + "/pressCard"

	backend.On("Upload", ctx, key, raw, "application/pdf").Return(nil).Once()
	backend.On("Download", ctx, key).Return(raw, "application/pdf", nil).Once()
	backend.On("Delete", ctx, key).Return(nil).Once()

	ref, err := store.Put(ctx, id, "pressCard", dataurl.Encode(raw, "application/pdf"))
	require.NoError(t, err)
	assert.Equal(t, "minio://"+key, ref)

	data, mime, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "application/pdf", mime)

	require.NoError(t, store.Delete(ctx, ref))
	backend.AssertExpectations(t)
}

func TestObjectStore_ReadsInlineValues(t *testing.T) {
	store := NewObjectStore(new(mockBackend))
	encoded := dataurl.Encode([]byte("inline"), "image/png")

	data, mime, err := store.Get(context.Background(), encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), data)
	assert.Equal(t, "image/png", mime)

	// Deleting an inline value touches nothing
	assert.NoError(t, store.Delete(context.Background(), encoded))

	_, _, err = store.Get(context.Background(), "s3://elsewhere")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestObjectStore_UploadFailure(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	store := NewObjectStore(backend)
	backend.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	_, err := store.Put(ctx, uuid.New(), "profilePicture", dataurl.Encode([]byte("x"), "image/png"))
	assert.Error(t, err)

	_, err = store.Put(ctx, uuid.New(), "profilePicture", "not-a-data-url")
	assert.ErrorIs(t, err, dataurl.ErrMalformed)
}

func TestObjectStore_DeleteApplication(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	id := uuid.New()
	backend.On("RemoveFolder", ctx, "applications/"+id.String()+"/").Return(nil).Once()

	require.NoError(t, NewObjectStore(backend).DeleteApplication(ctx, id))
	backend.AssertExpectations(t)
}
