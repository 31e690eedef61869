package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value BYTEA NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);
`

// PostgresBackend stores values in a single kv table.
type PostgresBackend struct {
	conn *sqlx.DB
}

func OpenPostgres(dsn string, maxConnections int) (*PostgresBackend, error) {
	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if maxConnections > 0 {
		conn.SetMaxOpenConns(maxConnections)
		conn.SetMaxIdleConns(max(maxConnections/2, 1))
	}
	conn.SetConnMaxLifetime(5 * time.Minute)

	if _, err := conn.Exec(postgresSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return NewPostgresBackend(conn), nil
}

// NewPostgresBackend wraps an open connection whose kv table already exists.
func NewPostgresBackend(conn *sqlx.DB) *PostgresBackend {
	return &PostgresBackend{conn: conn}
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.conn.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.conn.ExecContext(
		ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC(),
	)
	return err
}

func (p *PostgresBackend) Close() error {
	return p.conn.Close()
}
