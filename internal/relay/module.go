package relay

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the process wide relay and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(newRelay),
)

func newRelay(lc fx.Lifecycle, logger *slog.Logger) *Relay {
	r := New(defaultBuffer, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			r.Close()
			return nil
		},
	})
	return r
}
