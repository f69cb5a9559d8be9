package logger

import (
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/config"
)

// Module wires slog logger for dependency injection.
var Module = fx.Provide(newFromConfig)

func newFromConfig(cfg *config.Config) *slog.Logger {
	return NewWithLevel(os.Stdout, cfg.LogLevel)
}
