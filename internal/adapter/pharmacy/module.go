package pharmacy

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/config"
)

// Module exposes pharmacy API client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PharmacyAPIAddress, p.Logger)
}
