package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, ttl), srv
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, srv := newTestStore(t, time.Hour)

	sid, err := store.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, sid)
	assert.True(t, srv.Exists("session:"+sid))
	assert.Equal(t, time.Hour, srv.TTL("session:"+sid))

	userID, ok, err := store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, store.Destroy(ctx, sid))
	_, ok, err = store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSessionsExpire(t *testing.T) {
	ctx := context.Background()
	store, srv := newTestStore(t, time.Minute)

	sid, err := store.Create(ctx, 7)
	require.NoError(t, err)
	srv.FastForward(2 * time.Minute)

	_, ok, err := store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCreateIssuesDistinctIDs(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	a, err := store.Create(ctx, 1)
	require.NoError(t, err)
	b, err := store.Create(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreLookupRejectsCorruptValue(t *testing.T) {
	store, srv := newTestStore(t, time.Hour)
	require.NoError(t, srv.Set("session:bad", "not-a-number"))

	_, _, err := store.Lookup(context.Background(), "bad")
	assert.Error(t, err)
}
