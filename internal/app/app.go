package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/config"
	"github.com/polkiloo/pharmadash/internal/relay"
	"github.com/polkiloo/pharmadash/internal/server/http/handlers"
	"github.com/polkiloo/pharmadash/internal/storage/postgres"
	"github.com/polkiloo/pharmadash/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewDashboardFacade,
		func(f *DashboardFacade) handlers.DashboardFacade { return f },
		func(s *postgres.Storage) HealthChecker { return s },
		func(r *relay.Relay) UpdateSubscriber { return r },
		newHTTPServer,
		newOrderSync,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 90 * time.Second
)

// newHTTPServer leaves write timeouts unset so the order event stream stays open.
func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}

type workerParams struct {
	fx.In

	Facade *DashboardFacade
	Relay  *relay.Relay
	Config *config.Config
	Logger *slog.Logger
}

func newOrderSync(p workerParams) *worker.OrderSync {
	return worker.NewOrderSync(
		p.Facade,
		p.Relay,
		p.Config.OrderSyncInterval,
		p.Config.SyncBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.OrderSync
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", p.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", p.Server.Addr, err)
			}
			p.Logger.Info("starting pharmadash",
				slog.String("addr", ln.Addr().String()),
				slog.Int64("default_warehouse", p.Config.DefaultWarehouseID),
				slog.Duration("sync_interval", p.Config.OrderSyncInterval),
			)
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("pharmadash stopped")
			return nil
		},
	})
}
