package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/adapters/redis"
	"parley/pkg/domain"
	"parley/pkg/ports"
)

var _ ports.SessionStore = (*redis.Store)(nil)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, newTestStore(t))
}

func TestRedisStore_TTLIndexPruning(t *testing.T) {
	store := newTestStore(t, redis.WithTTL(-time.Second))
	ctx := context.Background()

	// With a negative TTL the index score is already in the past, so List
	// prunes the session immediately.
	require.NoError(t, store.Save(ctx, "expired", domain.NewSession("intro")))
	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, sessions, "expired")
}
