package store

import (
	"context"
	"database/sql"
	"time"
)

// SQLiteCache is the embedded fallback summary cache, used when no remote
// cache store is configured. Expiry is enforced on read; the cleaner worker
// physically removes expired rows.
type SQLiteCache struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db, now: time.Now}
}

func (c *SQLiteCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM summaries WHERE key = ?`, key).
		Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	if expiresAt <= c.now().Unix() {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (c *SQLiteCache) Set(ctx context.Context, key, value string) error {
	expiresAt := c.now().Add(SummaryTTL).Unix()
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO summaries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value, expires_at=excluded.expires_at`,
		key, value, expiresAt)
	return err
}

func (c *SQLiteCache) Name() string { return "sqlite" }

// PurgeExpired deletes rows past their expiry and returns how many went.
func (c *SQLiteCache) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM summaries WHERE expires_at <= ?`, c.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
