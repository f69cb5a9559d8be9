package auth

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/pharmadash/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger `optional:"true"`
}

func newTokenStrategy(p strategyParams) (Strategy, error) {
	var strategy Strategy
	switch p.Config.TokenStrategy {
	case "", "hmac":
		strategy = NewHMACStrategy(p.Config.JWTSecret, Options{})
	case "jwt":
		strategy = NewJWTStrategy(p.Config.JWTSecret, Options{})
	default:
		return nil, fmt.Errorf("unknown token strategy %q", p.Config.TokenStrategy)
	}

	if p.Logger != nil {
		p.Logger.Info("token strategy selected", slog.String("strategy", strategy.Name()))
	}
	return strategy, nil
}
