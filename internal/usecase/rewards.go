package usecase

import (
	"context"

	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
)

// RewardsUseCase exposes reward tiers and account progression.
type RewardsUseCase struct {
	rewards  repository.RewardRepository
	accounts repository.AccountRepository
}

// NewRewardsUseCase constructs RewardsUseCase.
func NewRewardsUseCase(rewards repository.RewardRepository, accounts repository.AccountRepository) *RewardsUseCase {
	return &RewardsUseCase{rewards: rewards, accounts: accounts}
}

// Tiers lists reward tiers ordered by target amount.
func (u *RewardsUseCase) Tiers(ctx context.Context) ([]model.RewardTier, error) {
	return u.rewards.ListByTarget(ctx)
}

// Progress computes reward progression for the account's current total.
func (u *RewardsUseCase) Progress(ctx context.Context, accountID string) (*model.Progress, error) {
	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	tiers, err := u.rewards.ListByTarget(ctx)
	if err != nil {
		return nil, err
	}
	progress := ComputeProgress(tiers, account.TotalRaised)
	return &progress, nil
}
