package auth

import (
	"github.com/polkiloo/fundraiser/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newRevocationList),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	opts := Options{TTL: p.Config.SessionTTL}
	if p.Config.SessionStrategy == config.SessionStrategyHMAC {
		return NewHMACStrategy(p.Config.SessionSecret, opts)
	}
	return NewJWTStrategy(p.Config.SessionSecret, opts)
}

func newRevocationList(p strategyParams) *RevocationList {
	return NewRevocationList(Options{TTL: p.Config.SessionTTL})
}
