package repository

import (
	"context"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// RewardRepository exposes read access to reward tiers ordered by target amount.
type RewardRepository interface {
	ListByTarget(ctx context.Context) ([]model.RewardTier, error)
	Upsert(ctx context.Context, tiers []model.RewardTier) error
}
