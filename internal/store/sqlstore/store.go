// Package sqlstore implements store.Store on database/sql. Queries are built
// with squirrel so the same code serves SQLite (modernc) and PostgreSQL (lib/pq).
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/qlpapp/qlp-server/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Config selects and tunes the database connection.
type Config struct {
	Dialect Dialect
	DSN     string

	MaxOpenConns int
	MaxIdleConns int
}

// Store provides SQL-backed persistence for the roster and targets.
type Store struct {
	db      *sql.DB
	dialect Dialect
	sb      squirrel.StatementBuilderType
	logger  *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to the configured database, applies dialect settings and
// creates the schema if missing.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open(cfg.Dialect.driverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	if maxIdle <= 0 {
		maxIdle = 2
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Hour)

	if cfg.Dialect == DialectSQLite {
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA busy_timeout=5000",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
			}
		}
	}

	s := New(db, cfg.Dialect, logger)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an existing connection pool. The schema is not touched.
func New(db *sql.DB, dialect Dialect, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.placeholder()),
		logger:  logger,
	}
}

// Migrate creates missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullInt returns a sql.NullInt64 for an optional goal.
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// intPtr converts a scanned nullable integer back to an optional goal.
func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
