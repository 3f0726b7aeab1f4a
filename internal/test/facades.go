package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// IdentityProviderStub simulates an identity capability.
type IdentityProviderStub struct {
	AuthenticateFn func(context.Context, string, string) (string, error)
	CreateFn       func(context.Context, string, string) (string, error)
	ID             string
	Err            error
}

// AuthenticateIdentity returns the configured identity id.
func (s IdentityProviderStub) AuthenticateIdentity(ctx context.Context, email, credential string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, credential)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// CreateIdentity returns the configured identity id.
func (s IdentityProviderStub) CreateIdentity(ctx context.Context, email, credential string) (string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, email, credential)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// CodeGeneratorStub hands out referral codes from a queue.
type CodeGeneratorStub struct {
	mu    sync.Mutex
	Codes []string
	Err   error
	Calls int
}

// Generate pops the next configured code, repeating the last one when exhausted.
func (s *CodeGeneratorStub) Generate(ctx context.Context, displayName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Codes) == 0 {
		return "intern1000", nil
	}
	code := s.Codes[0]
	if len(s.Codes) > 1 {
		s.Codes = s.Codes[1:]
	}
	return code, nil
}

// AccountFacadeStub provides controllable behaviour for account endpoints.
type AccountFacadeStub struct {
	AccountFn  func(context.Context, string) (*model.Account, error)
	ReferralFn func(context.Context, string) (*model.Account, error)
}

// Account returns the configured account.
func (s AccountFacadeStub) Account(ctx context.Context, accountID string) (*model.Account, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, accountID)
	}
	return &model.Account{ID: accountID, Email: "intern@example.com", DisplayName: "intern", ReferralCode: "intern1234"}, nil
}

// LookupReferral returns the account owning code.
func (s AccountFacadeStub) LookupReferral(ctx context.Context, code string) (*model.Account, error) {
	if s.ReferralFn != nil {
		return s.ReferralFn(ctx, code)
	}
	return &model.Account{ID: "acc-1", DisplayName: "intern", ReferralCode: code}, nil
}

// DonationFacadeStub simulates ledger operations.
type DonationFacadeStub struct {
	RecordFn  func(context.Context, string, decimal.Decimal) (*model.Account, error)
	HistoryFn func(context.Context, string, int) ([]model.DonationEvent, error)
	SummaryFn func(context.Context, string) (*model.DonationSummary, error)
	SetFn     func(context.Context, string, decimal.Decimal) (*model.Account, error)
}

// RecordDonation executes configured handler or returns an updated account.
func (s DonationFacadeStub) RecordDonation(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, accountID, amount)
	}
	return &model.Account{ID: accountID, TotalRaised: amount, DonationCount: 1, Version: 1}, nil
}

// Donations returns preconfigured history.
func (s DonationFacadeStub) Donations(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, accountID, limit)
	}
	return []model.DonationEvent{{ID: 1, AccountID: accountID, Amount: decimal.NewFromInt(10), OccurredAt: time.Unix(0, 0).UTC()}}, nil
}

// DonationSummary returns configured summary data.
func (s DonationFacadeStub) DonationSummary(ctx context.Context, accountID string) (*model.DonationSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, accountID)
	}
	return &model.DonationSummary{Account: model.Account{ID: accountID}}, nil
}

// SetTotal executes configured override handler.
func (s DonationFacadeStub) SetTotal(ctx context.Context, accountID string, total decimal.Decimal) (*model.Account, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, accountID, total)
	}
	return &model.Account{ID: accountID, TotalRaised: total}, nil
}

// RewardFacadeStub simulates reward queries.
type RewardFacadeStub struct {
	TiersFn    func(context.Context) ([]model.RewardTier, error)
	ProgressFn func(context.Context, string) (*model.Progress, error)
}

// RewardTiers returns configured tiers.
func (s RewardFacadeStub) RewardTiers(ctx context.Context) ([]model.RewardTier, error) {
	if s.TiersFn != nil {
		return s.TiersFn(ctx)
	}
	return []model.RewardTier{{ID: "t1", Title: "First", TargetAmount: decimal.NewFromInt(100), Category: model.RewardCategoryMilestone}}, nil
}

// RewardProgress returns configured progress.
func (s RewardFacadeStub) RewardProgress(ctx context.Context, accountID string) (*model.Progress, error) {
	if s.ProgressFn != nil {
		return s.ProgressFn(ctx, accountID)
	}
	return &model.Progress{Unlocked: []model.RewardTier{}, Percent: 50, Target: decimal.NewFromInt(100), Remaining: decimal.NewFromInt(50)}, nil
}

// LeaderboardFacadeStub simulates ranking queries.
type LeaderboardFacadeStub struct {
	LeaderboardFn func(context.Context, int) ([]model.LeaderboardEntry, error)
	StandingFn    func(context.Context, string) (*model.LeaderboardEntry, error)
}

// Leaderboard returns configured entries.
func (s LeaderboardFacadeStub) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if s.LeaderboardFn != nil {
		return s.LeaderboardFn(ctx, limit)
	}
	return []model.LeaderboardEntry{{Rank: 1, Account: model.Account{ID: "acc-1", DisplayName: "intern"}}}, nil
}

// Standing returns the configured entry.
func (s LeaderboardFacadeStub) Standing(ctx context.Context, accountID string) (*model.LeaderboardEntry, error) {
	if s.StandingFn != nil {
		return s.StandingFn(ctx, accountID)
	}
	return &model.LeaderboardEntry{Rank: 1, Account: model.Account{ID: accountID}}, nil
}

// HealthCheckerStub reports configured storage health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// PortalFacadeStub aggregates facade dependencies for HTTP layer tests.
type PortalFacadeStub struct {
	AuthFacadeStub
	AccountFacadeStub
	DonationFacadeStub
	RewardFacadeStub
	LeaderboardFacadeStub
	HealthCheckerStub
}

// ReconcilerFacadeStub mimics worker interactions with the portal facade.
type ReconcilerFacadeStub struct {
	Batches     [][]model.Identity
	OrphansFn   func(context.Context, int) ([]model.Identity, error)
	ProvisionFn func(context.Context, string, string) (*model.Account, error)
	Provisioned []string
	mu          sync.Mutex
	callCount   int32
}

// OrphanIdentities returns batches from the configured queue.
func (s *ReconcilerFacadeStub) OrphanIdentities(ctx context.Context, limit int) ([]model.Identity, error) {
	if s.OrphansFn != nil {
		return s.OrphansFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// ProvisionIdentity records provisioning requests.
func (s *ReconcilerFacadeStub) ProvisionIdentity(ctx context.Context, identityID, email string) (*model.Account, error) {
	s.mu.Lock()
	s.Provisioned = append(s.Provisioned, identityID)
	s.mu.Unlock()
	if s.ProvisionFn != nil {
		return s.ProvisionFn(ctx, identityID, email)
	}
	return &model.Account{ID: identityID, Email: email}, nil
}

// ProvisionedIDs returns a copy of provisioned identity ids.
func (s *ReconcilerFacadeStub) ProvisionedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Provisioned))
	copy(out, s.Provisioned)
	return out
}
