package searchcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dweagle/extras/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql or the key layout changes. A mismatched cache is
// disposable, so Open recreates it instead of failing.
const schemaVersion = 2

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store is the SQLite-backed response cache.
type Store struct {
	db     *sql.DB
	path   string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Stats summarizes cache contents.
type Stats struct {
	Path    string
	Entries int
	Expired int
	ByKind  map[string]int
	Oldest  time.Time
	Newest  time.Time
}

// Open creates or opens the cache database at path. ttl <= 0 keeps entries
// forever.
func Open(ctx context.Context, path string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("search cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create search cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		ttl:    ttl,
		now:    time.Now,
		logger: logging.NewComponentLogger(logger, "searchcache"),
	}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}
	s.logger.Info("search cache schema changed; recreating",
		logging.Int("found_version", version),
		logging.Int("expected_version", schemaVersion))
	for _, stmt := range []string{"DROP TABLE IF EXISTS responses", "DROP TABLE IF EXISTS schema_version"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset search cache: %w", err)
		}
	}
	return s.createSchema(ctx)
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Get returns the payload cached for (kind, query, options) when present and
// not expired.
func (s *Store) Get(ctx context.Context, kind, query, options string) ([]byte, bool, error) {
	var (
		payload  []byte
		cachedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT payload, cached_at FROM responses WHERE kind = ? AND query = ? AND options = ?",
			kind, normalizeKey(query), options,
		).Scan(&payload, &cachedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached response: %w", err)
	}
	if s.expired(cachedAt) {
		return nil, false, nil
	}
	return payload, true, nil
}

// Put stores payload, replacing any previous entry for the same key.
func (s *Store) Put(ctx context.Context, kind, query, options string, payload []byte) error {
	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx,
			`INSERT INTO responses (kind, query, options, payload, cached_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(kind, query, options) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`,
			kind, normalizeKey(query), options, payload, s.now().Unix(),
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("write cached response: %w", err)
	}
	return nil
}

// Prune deletes expired entries and reports how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).Unix()
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, "DELETE FROM responses WHERE cached_at < ?", cutoff)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("prune search cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, "DELETE FROM responses")
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("clear search cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports entry counts per kind and the age range of the cache.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Path: s.path, ByKind: make(map[string]int)}
	rows, err := s.db.QueryContext(ctx, "SELECT kind, cached_at FROM responses")
	if err != nil {
		return stats, fmt.Errorf("query search cache: %w", err)
	}
	defer rows.Close()

	var oldest, newest int64
	for rows.Next() {
		var (
			kind     string
			cachedAt int64
		)
		if err := rows.Scan(&kind, &cachedAt); err != nil {
			return stats, fmt.Errorf("scan search cache row: %w", err)
		}
		stats.Entries++
		stats.ByKind[kind]++
		if s.expired(cachedAt) {
			stats.Expired++
		}
		if oldest == 0 || cachedAt < oldest {
			oldest = cachedAt
		}
		if cachedAt > newest {
			newest = cachedAt
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate search cache: %w", err)
	}
	if stats.Entries > 0 {
		stats.Oldest = time.Unix(oldest, 0)
		stats.Newest = time.Unix(newest, 0)
	}
	return stats, nil
}

func (s *Store) expired(cachedAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(cachedAt, 0)) > s.ttl
}

func normalizeKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
