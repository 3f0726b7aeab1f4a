package identity

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	"github.com/polkiloo/fundraiser/internal/pkg/auth"
)

// Module exposes the configured identity provider to fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Identities repository.IdentityRepository
	Hasher     auth.PasswordHasher
}

func newProvider(p providerParams) (Provider, error) {
	if p.Config.IdentityProvider == config.IdentityProviderRemote {
		return NewRemoteProvider(p.Config.IdentityURL, p.Config.IdentityAPIKey, p.Logger)
	}
	return NewLocalProvider(p.Identities, p.Hasher, p.Logger), nil
}
