//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megheza-backend/internal/domains/admin/repository"
	"megheza-backend/internal/testutil/containers"
)

func TestRedisRevocationList(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	list := repository.NewRedisRevocationList(rc.Client)
	ctx := context.Background()

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := list.IsRevoked(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked token is reported until ttl", func(t *testing.T) {
		require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := list.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := rc.Client.TTL(ctx, "megheza:admin:revoked:jti-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("expired token is ignored", func(t *testing.T) {
		require.NoError(t, list.Revoke(ctx, "jti-2", 0))

		revoked, err := list.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("closed client surfaces the error", func(t *testing.T) {
		other := containers.NewRedisContainer(t)
		broken := repository.NewRedisRevocationList(other.Client)
		require.NoError(t, other.Client.Close())

		_, err := broken.IsRevoked(ctx, "jti-3")
		assert.Error(t, err)
	})
}
