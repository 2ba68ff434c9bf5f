//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/internal/domains/application/repository"
	"megheza-backend/internal/testutil"
	"megheza-backend/internal/testutil/containers"
)

func TestPostgresRepository(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	repo := repository.NewPostgresRepository(pg.DB.Pool)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		pg.Truncate(t)
		sub := testutil.ValidSubmission("alice@example.com")
		sub.ProfilePicture = testutil.PNGDataURL(1024)
		app := model.NewApplication(sub)

		require.NoError(t, repo.Create(ctx, app))

		got, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.Email, got.Email)
		assert.Equal(t, []string{"English", "French"}, got.Languages)
		assert.Equal(t, model.RoleReporter, got.PrimaryRole)
		assert.False(t, got.Verified)
		require.NotNil(t, got.ProfilePicture)
		assert.Equal(t, *app.ProfilePicture, *got.ProfilePicture)
		assert.Nil(t, got.PressCard)
	})

	t.Run("duplicate email", func(t *testing.T) {
		pg.Truncate(t)
		require.NoError(t, repo.Create(ctx, model.NewApplication(testutil.ValidSubmission("bob@example.com"))))

		err := repo.Create(ctx, model.NewApplication(testutil.ValidSubmission("bob@example.com")))
		assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("concurrent duplicate email", func(t *testing.T) {
		pg.Truncate(t)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, model.NewApplication(testutil.ValidSubmission("carol@example.com")))
			}(i)
		}
		wg.Wait()

		succeeded, duplicates := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, model.ErrDuplicateEmail):
				duplicates++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, duplicates)
	})

	t.Run("set verified and list", func(t *testing.T) {
		pg.Truncate(t)
		app := model.NewApplication(testutil.ValidSubmission("dan@example.com"))
		require.NoError(t, repo.Create(ctx, app))

		previous, err := repo.SetVerified(ctx, app.ID, true)
		require.NoError(t, err)
		assert.False(t, previous)

		got, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)

		verified := true
		list, err := repo.List(ctx, model.ListFilter{Verified: &verified})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].Verified)

		unverified := false
		list, err = repo.List(ctx, model.ListFilter{Verified: &unverified})
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = repo.SetVerified(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, model.ErrApplicationNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		pg.Truncate(t)
		app := model.NewApplication(testutil.ValidSubmission("erin@example.com"))
		require.NoError(t, repo.Create(ctx, app))

		require.NoError(t, repo.Delete(ctx, app.ID))

		_, err := repo.GetByID(ctx, app.ID)
		assert.ErrorIs(t, err, model.ErrApplicationNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, app.ID), model.ErrApplicationNotFound)
	})

	t.Run("redactable", func(t *testing.T) {
		pg.Truncate(t)
		old := model.NewApplication(testutil.ValidSubmission("old@example.com"))
		old.PressCard = ptr(testutil.PDFDataURL(512))
		old.CreatedAt = time.Now().Add(-60 * 24 * time.Hour)
		recent := model.NewApplication(testutil.ValidSubmission("recent@example.com"))
		recent.PressCard = ptr(testutil.PDFDataURL(512))
		unverified := model.NewApplication(testutil.ValidSubmission("pending@example.com"))
		unverified.PressCard = ptr(testutil.PDFDataURL(512))
		unverified.CreatedAt = old.CreatedAt

		for _, app := range []*model.Application{old, recent, unverified} {
			require.NoError(t, repo.Create(ctx, app))
		}
		for _, app := range []*model.Application{old, recent} {
			_, err := repo.SetVerified(ctx, app.ID, true)
			require.NoError(t, err)
		}

		list, err := repo.ListRedactable(ctx, time.Now().Add(-30*24*time.Hour))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, old.ID, list[0].ID)

		require.NoError(t, repo.ClearPressCard(ctx, old.ID))
		got, err := repo.GetByID(ctx, old.ID)
		require.NoError(t, err)
		assert.Nil(t, got.PressCard)
	})
}

func ptr(s string) *string { return &s }
