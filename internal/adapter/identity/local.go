package identity

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	"github.com/polkiloo/fundraiser/internal/pkg/auth"
)

// LocalProvider keeps identities in the service database with bcrypt hashed credentials.
type LocalProvider struct {
	identities repository.IdentityRepository
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

func NewLocalProvider(identities repository.IdentityRepository, hasher auth.PasswordHasher, logger *slog.Logger) *LocalProvider {
	return &LocalProvider{identities: identities, hasher: hasher, logger: logger}
}

func (p *LocalProvider) AuthenticateIdentity(ctx context.Context, email, credential string) (string, error) {
	identity, err := p.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := p.hasher.Compare(identity.PasswordHash, credential); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return identity.ID, nil
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, credential string) (string, error) {
	hash, err := p.hasher.Hash(credential)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", domainErrors.Wrap(domainErrors.ErrWeakCredential, err)
		}
		return "", err
	}

	identity, err := p.identities.Create(ctx, email, hash)
	if err != nil {
		return "", err
	}
	p.logger.Info("identity created", slog.String("identity_id", identity.ID))
	return identity.ID, nil
}
