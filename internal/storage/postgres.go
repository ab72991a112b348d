package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores the blob in a shared PostgreSQL database.
type Postgres struct {
	Pool *pgxpool.Pool
}

// OpenPostgres migrates the database at dsn and connects a pool to it.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if err := migrateUp("postgres", dsn); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := p.Pool.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, Key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	return []byte(value), nil
}

func (p *Postgres) Save(ctx context.Context, data []byte) error {
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO app_state (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = NOW()
	`, Key, string(data))
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, Key); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}
