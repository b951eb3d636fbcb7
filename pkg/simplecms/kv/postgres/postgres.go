package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-cms/pkg/simplecms/kv"
)

const (
	backendName = "postgres"

	// DefaultTable is the table used when none is configured
	DefaultTable = "kv_entries"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Backend stores each key as one row holding a jsonb document
type Backend struct {
	db    DBTX
	table string
}

// New creates a backend over db using the named table (DefaultTable when empty)
func New(db DBTX, table string) *Backend {
	if table == "" {
		table = DefaultTable
	}
	return &Backend{
		db:    db,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

// NewWithPool creates a backend with a connection pool
func NewWithPool(pool *pgxpool.Pool, table string) *Backend {
	return New(pool, table)
}

// Connect opens a pool for databaseURL and verifies it with a ping
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the backing table when it does not exist
func (b *Backend) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, b.table)

	if _, err := b.db.Exec(ctx, query); err != nil {
		return handlePostgresError("ensure schema", err)
	}
	return nil
}

// Get returns the document stored under key
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: kv.ErrInvalidKey}
	}

	query := fmt.Sprintf(`SELECT value::text FROM %s WHERE key = $1`, b.table)

	var value string
	err := b.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kv.ErrNotFound
	} else if err != nil {
		return nil, &kv.StorageError{Backend: backendName, Key: key, Op: "get", Err: handlePostgresError("get", err)}
	}
	return []byte(value), nil
}

// Set upserts the document stored under key
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: kv.ErrInvalidKey}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`, b.table)

	if _, err := b.db.Exec(ctx, query, key, string(value)); err != nil {
		return &kv.StorageError{Backend: backendName, Key: key, Op: "set", Err: handlePostgresError("set", err)}
	}
	return nil
}

func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22P02": // invalid_text_representation
			return fmt.Errorf("value is not valid json: %w", err)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - schema setup required: %w", err)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}
