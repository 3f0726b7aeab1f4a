package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, displayName string) (*model.Account, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.Account, string, error)
	SignOut(ctx context.Context, token string) error
	ParseToken(token string) (string, error)
}

// AccountFacade exposes account lookups.
type AccountFacade interface {
	Account(ctx context.Context, accountID string) (*model.Account, error)
	LookupReferral(ctx context.Context, code string) (*model.Account, error)
}

// DonationFacade provides ledger operations.
type DonationFacade interface {
	RecordDonation(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error)
	Donations(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error)
	DonationSummary(ctx context.Context, accountID string) (*model.DonationSummary, error)
	SetTotal(ctx context.Context, accountID string, total decimal.Decimal) (*model.Account, error)
}

// RewardFacade exposes reward tiers and progression.
type RewardFacade interface {
	RewardTiers(ctx context.Context) ([]model.RewardTier, error)
	RewardProgress(ctx context.Context, accountID string) (*model.Progress, error)
}

// LeaderboardFacade exposes ranking queries.
type LeaderboardFacade interface {
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	Standing(ctx context.Context, accountID string) (*model.LeaderboardEntry, error)
}

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	AuthFacade
	AccountFacade
	DonationFacade
	RewardFacade
	LeaderboardFacade
	HealthChecker
}
