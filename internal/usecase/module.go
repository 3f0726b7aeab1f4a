package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/adapter/identity"
	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	pkgAuth "github.com/polkiloo/fundraiser/internal/pkg/auth"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
	"github.com/polkiloo/fundraiser/internal/pkg/referral"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newReferralGenerator,
	newProvisioningUseCase,
	newLedgerUseCase,
	newLeaderboardUseCase,
	NewRewardsUseCase,
)

func newReferralGenerator(accounts repository.AccountRepository, cfg *config.Config) CodeGenerator {
	return referral.NewGenerator(accounts, referral.WithAttempts(cfg.ReferralAttempts))
}

type provisioningParams struct {
	fx.In

	Identities identity.Provider
	Accounts   repository.AccountRepository
	Referrals  CodeGenerator
	Tokens     pkgAuth.Strategy
	Revoked    *pkgAuth.RevocationList
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	Config     *config.Config
}

func newProvisioningUseCase(p provisioningParams) *ProvisioningUseCase {
	return NewProvisioningUseCase(p.Identities, p.Accounts, p.Referrals, p.Tokens, p.Revoked, p.Metrics, p.Logger,
		ProvisioningOptions{MinPasswordLength: p.Config.MinPasswordLength})
}

type ledgerParams struct {
	fx.In

	Accounts repository.AccountRepository
	Ledger   repository.LedgerRepository
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Config   *config.Config
}

func newLedgerUseCase(p ledgerParams) *LedgerUseCase {
	return NewLedgerUseCase(p.Accounts, p.Ledger, p.Metrics, p.Logger, LedgerOptions{
		RetryLimit:  p.Config.LedgerRetryLimit,
		TrendWindow: p.Config.TrendWindow,
	})
}

func newLeaderboardUseCase(ledger repository.LedgerRepository, cfg *config.Config) *LeaderboardUseCase {
	return NewLeaderboardUseCase(ledger, cfg.TrendWindow)
}
