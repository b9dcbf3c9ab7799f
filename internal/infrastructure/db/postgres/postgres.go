package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 10 * time.Second

// uniqueViolation is the SQLSTATE for a unique constraint conflict.
const uniqueViolation = "23505"

// Connect opens a pgx pool, verifies it with a ping and applies migrations.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if err := migrate(connectCtx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			security_answer_hash TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL CHECK (role IN ('contractor', 'manager')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS timesheets (
			id TEXT PRIMARY KEY,
			contractor_id TEXT NOT NULL,
			contractor_name TEXT NOT NULL,
			client TEXT NOT NULL,
			site_address TEXT NOT NULL,
			week_start DATE NOT NULL,
			week_end DATE NOT NULL,
			basic_hours NUMERIC NOT NULL,
			saturday_hours NUMERIC NOT NULL,
			sunday_hours NUMERIC NOT NULL,
			hourly_rate NUMERIC NOT NULL CHECK (hourly_rate > 0),
			total_hours NUMERIC NOT NULL,
			total_pay NUMERIC(14,2) NOT NULL,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			submitted_on TIMESTAMPTZ NOT NULL,
			approved_on TIMESTAMPTZ,
			idempotency_key TEXT,
			CHECK (approved = (approved_on IS NOT NULL))
		);`,
		`CREATE INDEX IF NOT EXISTS timesheets_approved_submitted_idx ON timesheets (approved, submitted_on DESC);`,
		`CREATE INDEX IF NOT EXISTS timesheets_contractor_submitted_idx ON timesheets (contractor_id, submitted_on DESC);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS timesheets_idempotency_idx ON timesheets (contractor_id, idempotency_key) WHERE idempotency_key IS NOT NULL;`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Pinger returns a readiness check for pool.
func Pinger(pool *pgxpool.Pool) func(ctx context.Context) error {
	return pool.Ping
}
