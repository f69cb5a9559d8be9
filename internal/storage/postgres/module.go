package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/config"
	"github.com/polkiloo/pharmadash/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderSnapshotRepository { return s.Orders() },
		func(s *Storage) repository.StatusChangeRepository { return s.StatusChanges() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	opts := PoolOptions{
		MaxConns:        int32(p.Config.DatabaseMaxConns),
		MaxConnIdleTime: 5 * time.Minute,
	}
	return New(p.Ctx, p.Config.DatabaseURI, opts, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return fmt.Errorf("postgres unavailable: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
