package worker

import (
	"context"
	"log/slog"
	"time"

	"hn-reader/server/store"
)

// Cleaner sweeps expired rows out of the embedded summary cache. Redis expiry
// is native, so the cleaner only runs for the SQLite backend.
type Cleaner struct {
	cache *store.SQLiteCache
}

func NewCleaner(cache *store.SQLiteCache) *Cleaner {
	return &Cleaner{cache: cache}
}

// Start begins the daily cleanup cycle. It runs until the context is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	go func() {
		// Run first cleanup after 1 hour
		select {
		case <-time.After(1 * time.Hour):
			c.cleanup(ctx)
		case <-ctx.Done():
			slog.Info("cleaner: shutting down before first run")
			return
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("cleaner: shutting down")
				return
			case <-ticker.C:
				c.cleanup(ctx)
			}
		}
	}()
}

func (c *Cleaner) cleanup(ctx context.Context) {
	deleted, err := c.cache.PurgeExpired(ctx)
	if err != nil {
		slog.Error("cleaner: error purging expired summaries", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("cleaner: purged expired summaries", "count", deleted)
	}
}
