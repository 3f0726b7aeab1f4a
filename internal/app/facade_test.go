package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	pkgAuth "github.com/polkiloo/fundraiser/internal/pkg/auth"
	"github.com/polkiloo/fundraiser/internal/pkg/referral"
	testhelpers "github.com/polkiloo/fundraiser/internal/test"
	"github.com/polkiloo/fundraiser/internal/usecase"
)

type facadeFixture struct {
	facade     *PortalFacade
	accounts   *testhelpers.AccountStore
	identities *testhelpers.IdentityRepositoryStub
	rewards    *testhelpers.RewardRepositoryStub
}

func newFacade(health HealthChecker) facadeFixture {
	accounts := testhelpers.NewAccountStore()
	identities := testhelpers.NewIdentityRepositoryStub()
	rewards := &testhelpers.RewardRepositoryStub{Tiers: []model.RewardTier{
		{ID: "bronze", TargetAmount: decimal.NewFromInt(100), Category: model.RewardCategoryMilestone},
		{ID: "silver", TargetAmount: decimal.NewFromInt(500), Category: model.RewardCategoryAchievement},
	}}
	logger := testLogger()

	provider := testhelpers.IdentityProviderStub{
		CreateFn: func(ctx context.Context, email, credential string) (string, error) {
			identity, err := identities.Create(ctx, email, "hash:"+credential)
			if err != nil {
				return "", err
			}
			return identity.ID, nil
		},
		AuthenticateFn: func(ctx context.Context, email, credential string) (string, error) {
			identity, err := identities.GetByEmail(ctx, email)
			if err != nil || identity.PasswordHash != "hash:"+credential {
				return "", domainErrors.ErrInvalidCredentials
			}
			return identity.ID, nil
		},
	}

	provisioning := usecase.NewProvisioningUseCase(provider, accounts, referral.NewGenerator(accounts),
		testhelpers.StrategyStub{}, pkgAuth.NewRevocationList(pkgAuth.Options{}), nil, logger, usecase.ProvisioningOptions{})
	ledger := usecase.NewLedgerUseCase(accounts, accounts, nil, logger, usecase.LedgerOptions{})
	rewardsUC := usecase.NewRewardsUseCase(rewards, accounts)
	board := usecase.NewLeaderboardUseCase(accounts, time.Hour)

	return facadeFixture{
		facade:     NewPortalFacade(provisioning, ledger, rewardsUC, board, identities, health),
		accounts:   accounts,
		identities: identities,
		rewards:    rewards,
	}
}

func TestPortalFacadeAuth(t *testing.T) {
	f := newFacade(testhelpers.HealthCheckerStub{})
	ctx := context.Background()

	account, token, err := f.facade.Register(ctx, "user@example.com", "secret1", "User")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token:"+account.ID {
		t.Fatalf("unexpected token %q", token)
	}

	again, token, err := f.facade.Authenticate(ctx, "user@example.com", "secret1")
	if err != nil || again.ID != account.ID {
		t.Fatalf("authenticate returned %+v %v", again, err)
	}

	id, err := f.facade.ParseToken(token)
	if err != nil || id != account.ID {
		t.Fatalf("parse token returned %q %v", id, err)
	}
	current, err := f.facade.CurrentAccount(ctx, token)
	if err != nil || current.ID != account.ID {
		t.Fatalf("current account returned %+v %v", current, err)
	}
	byID, err := f.facade.Account(ctx, account.ID)
	if err != nil || byID.Email != "user@example.com" {
		t.Fatalf("account returned %+v %v", byID, err)
	}
	owner, err := f.facade.LookupReferral(ctx, account.ReferralCode)
	if err != nil || owner.ID != account.ID {
		t.Fatalf("lookup referral returned %+v %v", owner, err)
	}

	if err := f.facade.SignOut(ctx, token); err != nil {
		t.Fatalf("sign out returned error: %v", err)
	}
	if _, err := f.facade.ParseToken(token); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected revoked token, got %v", err)
	}

	if _, _, err := f.facade.Authenticate(ctx, "user@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := f.facade.Register(ctx, "user@example.com", "secret1", ""); !errors.Is(err, domainErrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestPortalFacadeLedgerRewardsAndLeaderboard(t *testing.T) {
	f := newFacade(testhelpers.HealthCheckerStub{})
	ctx := context.Background()

	alice, _, err := f.facade.Register(ctx, "alice@example.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bob, _, err := f.facade.Register(ctx, "bob@example.com", "secret1", "Bob")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if _, err := f.facade.RecordDonation(ctx, alice.ID, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("record donation: %v", err)
	}
	if _, err := f.facade.RecordDonation(ctx, bob.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("record donation: %v", err)
	}
	if _, err := f.facade.RecordDonation(ctx, bob.ID, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	history, err := f.facade.Donations(ctx, alice.ID, 10)
	if err != nil || len(history) != 1 {
		t.Fatalf("donations returned %+v %v", history, err)
	}
	summary, err := f.facade.DonationSummary(ctx, alice.ID)
	if err != nil || summary.Account.ID != alice.ID || summary.HasPriorData {
		t.Fatalf("summary returned %+v %v", summary, err)
	}

	progress, err := f.facade.RewardProgress(ctx, alice.ID)
	if err != nil || len(progress.Unlocked) != 1 || progress.Percent != 50 {
		t.Fatalf("progress returned %+v %v", progress, err)
	}
	tiers, err := f.facade.RewardTiers(ctx)
	if err != nil || len(tiers) != 2 {
		t.Fatalf("tiers returned %+v %v", tiers, err)
	}

	entries, err := f.facade.Leaderboard(ctx, 0)
	if err != nil || len(entries) != 2 || entries[0].Account.ID != alice.ID {
		t.Fatalf("leaderboard returned %+v %v", entries, err)
	}
	standing, err := f.facade.Standing(ctx, bob.ID)
	if err != nil || standing.Rank != 2 {
		t.Fatalf("standing returned %+v %v", standing, err)
	}

	updated, err := f.facade.SetTotal(ctx, bob.ID, decimal.NewFromInt(1000))
	if err != nil || !updated.TotalRaised.Equal(decimal.NewFromInt(1000)) || updated.DonationCount != 1 {
		t.Fatalf("set total returned %+v %v", updated, err)
	}
}

func TestPortalFacadeReconcileAndHealth(t *testing.T) {
	f := newFacade(testhelpers.HealthCheckerStub{Err: errors.New("db down")})
	ctx := context.Background()

	f.identities.Orphans = []model.Identity{{ID: "orphan-1", Email: "orphan@example.com"}}
	orphans, err := f.facade.OrphanIdentities(ctx, 10)
	if err != nil || len(orphans) != 1 {
		t.Fatalf("orphan identities returned %+v %v", orphans, err)
	}
	account, err := f.facade.ProvisionIdentity(ctx, orphans[0].ID, orphans[0].Email)
	if err != nil || account.DisplayName != "orphan" {
		t.Fatalf("provision identity returned %+v %v", account, err)
	}

	if err := f.facade.HealthCheck(ctx); err == nil {
		t.Fatal("expected health check error")
	}
}
