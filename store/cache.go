package store

import (
	"context"
	"errors"
	"time"
)

// SummaryTTL is the fixed lifetime of every cache entry. There is no per-key
// override; re-summarizing after expiry overwrites the entry.
const SummaryTTL = 7 * 24 * time.Hour

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("summary not in cache")

// SummaryCache is a string-keyed TTL store for generated summaries. Writes are
// best-effort; concurrent writers to the same key race and the last write
// wins. Callers must treat any Get failure as a miss.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// Name identifies the backend for logs and health reporting.
	Name() string
}
