package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	"github.com/polkiloo/fundraiser/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type PortalFacade struct {
	provisioning *usecase.ProvisioningUseCase
	ledger       *usecase.LedgerUseCase
	rewards      *usecase.RewardsUseCase
	leaderboard  *usecase.LeaderboardUseCase
	identities   repository.IdentityRepository
	health       HealthChecker
}

func NewPortalFacade(
	provisioning *usecase.ProvisioningUseCase,
	ledger *usecase.LedgerUseCase,
	rewards *usecase.RewardsUseCase,
	leaderboard *usecase.LeaderboardUseCase,
	identities repository.IdentityRepository,
	health HealthChecker,
) *PortalFacade {
	return &PortalFacade{
		provisioning: provisioning,
		ledger:       ledger,
		rewards:      rewards,
		leaderboard:  leaderboard,
		identities:   identities,
		health:       health,
	}
}

func (f *PortalFacade) Register(ctx context.Context, email, password, displayName string) (*model.Account, string, error) {
	account, session, err := f.provisioning.Register(ctx, email, password, displayName)
	if err != nil {
		return nil, "", err
	}
	return account, session.Token, nil
}

func (f *PortalFacade) Authenticate(ctx context.Context, email, password string) (*model.Account, string, error) {
	account, session, err := f.provisioning.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	return account, session.Token, nil
}

func (f *PortalFacade) SignOut(ctx context.Context, token string) error {
	return f.provisioning.SignOut(ctx, token)
}

func (f *PortalFacade) ParseToken(token string) (string, error) {
	return f.provisioning.ParseToken(token)
}

func (f *PortalFacade) CurrentAccount(ctx context.Context, token string) (*model.Account, error) {
	return f.provisioning.CurrentAccount(ctx, token)
}

func (f *PortalFacade) Account(ctx context.Context, accountID string) (*model.Account, error) {
	return f.provisioning.AccountByID(ctx, accountID)
}

func (f *PortalFacade) LookupReferral(ctx context.Context, code string) (*model.Account, error) {
	return f.provisioning.LookupReferral(ctx, code)
}

func (f *PortalFacade) RecordDonation(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	return f.ledger.RecordDonation(ctx, accountID, amount)
}

func (f *PortalFacade) Donations(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error) {
	return f.ledger.History(ctx, accountID, limit)
}

func (f *PortalFacade) DonationSummary(ctx context.Context, accountID string) (*model.DonationSummary, error) {
	return f.ledger.Summary(ctx, accountID)
}

func (f *PortalFacade) SetTotal(ctx context.Context, accountID string, total decimal.Decimal) (*model.Account, error) {
	return f.ledger.SetTotal(ctx, accountID, total)
}

func (f *PortalFacade) RewardTiers(ctx context.Context) ([]model.RewardTier, error) {
	return f.rewards.Tiers(ctx)
}

func (f *PortalFacade) RewardProgress(ctx context.Context, accountID string) (*model.Progress, error) {
	return f.rewards.Progress(ctx, accountID)
}

func (f *PortalFacade) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return f.leaderboard.Leaderboard(ctx, limit)
}

func (f *PortalFacade) Standing(ctx context.Context, accountID string) (*model.LeaderboardEntry, error) {
	return f.leaderboard.Standing(ctx, accountID)
}

func (f *PortalFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *PortalFacade) OrphanIdentities(ctx context.Context, limit int) ([]model.Identity, error) {
	return f.identities.ListWithoutAccount(ctx, limit)
}

func (f *PortalFacade) ProvisionIdentity(ctx context.Context, identityID, email string) (*model.Account, error) {
	return f.provisioning.ProvisionIdentity(ctx, identityID, email)
}
