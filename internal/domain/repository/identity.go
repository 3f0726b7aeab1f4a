package repository

import (
	"context"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// IdentityRepository stores credentials for the local identity provider.
type IdentityRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.Identity, error)
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	// ListWithoutAccount returns identities that have no provisioned account yet.
	ListWithoutAccount(ctx context.Context, limit int) ([]model.Identity, error)
}
