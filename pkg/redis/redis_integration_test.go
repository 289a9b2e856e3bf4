//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
)

func startRedis(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewClient(&config.RedisConfig{Addr: addr}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := startRedis(t)
	ctx := context.Background()

	t.Run("blacklist", func(t *testing.T) {
		revoked, err := client.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, client.BlacklistToken(ctx, "jti-1", time.Minute))
		revoked, err = client.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		require.NoError(t, client.BlacklistToken(ctx, "jti-2", 0))
		revoked, err := client.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("rate limit", func(t *testing.T) {
		key := "rate_limit:test:/api/v1/auth/login"
		for i := 0; i < 3; i++ {
			allowed, err := client.CheckRateLimit(ctx, key, 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "attempt %d", i+1)
		}

		allowed, err := client.CheckRateLimit(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}
