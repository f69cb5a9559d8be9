package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/adapter/events"
	"github.com/polkiloo/pharmadash/internal/adapter/pharmacy"
	"github.com/polkiloo/pharmadash/internal/app"
	"github.com/polkiloo/pharmadash/internal/config"
	"github.com/polkiloo/pharmadash/internal/logger"
	"github.com/polkiloo/pharmadash/internal/pkg/auth"
	"github.com/polkiloo/pharmadash/internal/relay"
	"github.com/polkiloo/pharmadash/internal/server/http/router"
	"github.com/polkiloo/pharmadash/internal/storage/postgres"
	"github.com/polkiloo/pharmadash/internal/usecase"
)

// Module composes the whole application graph. Extra options are appended
// last so callers can replace any component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		pharmacy.Module,
		events.Module,
		relay.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
