package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteCache(db)
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	_, err := cache.Get(ctx, "5,6")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "5,6", "a summary"))

	got, err := cache.Get(ctx, "5,6")
	require.NoError(t, err)
	assert.Equal(t, "a summary", got)
}

func TestSQLiteCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "k", "first"))
	require.NoError(t, cache.Set(ctx, "k", "second"))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSQLiteCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	now := time.Now()
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "k", "v"))

	// Just before expiry the entry is served; just after, it is a miss.
	cache.now = func() time.Time { return now.Add(SummaryTTL - time.Second) }
	_, err := cache.Get(ctx, "k")
	assert.NoError(t, err)

	cache.now = func() time.Time { return now.Add(SummaryTTL + time.Second) }
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSQLiteCachePurgeExpired(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	now := time.Now()
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "old", "v"))

	cache.now = func() time.Time { return now.Add(SummaryTTL + time.Hour) }
	require.NoError(t, cache.Set(ctx, "fresh", "v"))

	deleted, err := cache.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = cache.Get(ctx, "fresh")
	assert.NoError(t, err)
}
