package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

type migration struct {
	version    int
	name       string
	statements []string
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Append only. Applied versions are never re-run.
var migrations = []migration{
	{
		version: 1,
		name:    "create users",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
                id BIGSERIAL PRIMARY KEY,
                login TEXT UNIQUE NOT NULL,
                email TEXT UNIQUE NOT NULL,
                password_hash TEXT NOT NULL,
                warehouse_id BIGINT NOT NULL DEFAULT 0,
                api_token TEXT NOT NULL DEFAULT '',
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`,
		},
	},
	{
		version: 2,
		name:    "create order snapshots",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS order_snapshots (
                warehouse_id BIGINT NOT NULL,
                order_id BIGINT NOT NULL,
                status TEXT NOT NULL,
                total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
                quantity INTEGER NOT NULL DEFAULT 0,
                pharmacy_id BIGINT NOT NULL DEFAULT 0,
                pharmacy_name TEXT NOT NULL DEFAULT '',
                order_date TIMESTAMPTZ NOT NULL,
                items JSONB NOT NULL DEFAULT '[]'::jsonb,
                synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                PRIMARY KEY (warehouse_id, order_id)
            )`,
			`CREATE INDEX IF NOT EXISTS idx_order_snapshots_date ON order_snapshots(warehouse_id, order_date DESC)`,
		},
	},
	{
		version: 3,
		name:    "create status changes",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS status_changes (
                id BIGSERIAL PRIMARY KEY,
                order_id BIGINT NOT NULL,
                warehouse_id BIGINT NOT NULL,
                from_status TEXT NOT NULL,
                to_status TEXT NOT NULL,
                changed_by BIGINT NOT NULL REFERENCES users(id),
                changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`,
			`CREATE INDEX IF NOT EXISTS idx_status_changes_order ON status_changes(warehouse_id, order_id, changed_at)`,
		},
	},
}

func (s *Storage) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return fmt.Errorf("init schema: migration %d (%s): %w", m.version, m.name, err)
		}
		s.logger.Info("schema migration applied",
			slog.Int("version", m.version),
			slog.String("name", m.name),
		)
	}

	return nil
}

func (s *Storage) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := s.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Storage) apply(ctx context.Context, m migration) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range m.statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name)
		return err
	})
}
