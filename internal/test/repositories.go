package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
)

// AccountStore is an in-memory account and ledger store.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	events   []model.DonationEvent
	nextID   int64

	// ForcedConflicts makes the next ApplyDonation calls fail as if aborted by a concurrent writer.
	ForcedConflicts int
	InsertFn        func(context.Context, model.Account) (*model.Account, bool, error)
	GetErr          error
	ListErr         error
	ApplyCalls      int
	InsertCalls     int
}

// NewAccountStore seeds a store with accounts.
func NewAccountStore(accounts ...model.Account) *AccountStore {
	s := &AccountStore{accounts: make(map[string]model.Account)}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	return s
}

// Put stores or replaces an account.
func (s *AccountStore) Put(account model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accounts == nil {
		s.accounts = make(map[string]model.Account)
	}
	s.accounts[account.ID] = account
}

// Len reports the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// Events returns a copy of recorded donation events in insertion order.
func (s *AccountStore) Events() []model.DonationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DonationEvent, len(s.events))
	copy(out, s.events)
	return out
}

// AddEvent appends a donation event without touching account totals.
func (s *AccountStore) AddEvent(accountID string, amount decimal.Decimal, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.events = append(s.events, model.DonationEvent{ID: s.nextID, AccountID: accountID, Amount: amount, OccurredAt: at})
}

func (s *AccountStore) find(match func(model.Account) bool) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, a := range s.accounts {
		if match(a) {
			account := a
			return &account, nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

// GetByID returns the account with id.
func (s *AccountStore) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return s.find(func(a model.Account) bool { return a.ID == id })
}

// GetByReferralCode returns the account owning code.
func (s *AccountStore) GetByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	return s.find(func(a model.Account) bool { return a.ReferralCode == code })
}

// ReferralCodeExists reports whether code is assigned.
func (s *AccountStore) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.GetByReferralCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if err == domainErrors.ErrAccountNotFound {
		return false, nil
	}
	return false, err
}

// InsertIfAbsent stores account unless its id exists, enforcing email and referral uniqueness.
func (s *AccountStore) InsertIfAbsent(ctx context.Context, account model.Account) (*model.Account, bool, error) {
	if s.InsertFn != nil {
		s.mu.Lock()
		s.InsertCalls++
		s.mu.Unlock()
		return s.InsertFn(ctx, account)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCalls++
	if s.accounts == nil {
		s.accounts = make(map[string]model.Account)
	}
	if existing, ok := s.accounts[account.ID]; ok {
		return &existing, false, nil
	}
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return nil, false, domainErrors.ErrEmailTaken
		}
		if a.ReferralCode == account.ReferralCode {
			return nil, false, domainErrors.ErrReferralCodeTaken
		}
	}
	s.accounts[account.ID] = account
	return &account, true, nil
}

// SetTotal overrides the total and bumps the version.
func (s *AccountStore) SetTotal(ctx context.Context, id string, total decimal.Decimal) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	a.TotalRaised = total
	a.Version++
	s.accounts[id] = a
	return &a, nil
}

// ApplyDonation increments totals relative to the stored account.
func (s *AccountStore) ApplyDonation(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ApplyCalls++
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	if s.ForcedConflicts > 0 {
		s.ForcedConflicts--
		return nil, domainErrors.ErrConcurrentUpdateConflict
	}
	a.TotalRaised = a.TotalRaised.Add(amount)
	a.DonationCount++
	a.Version++
	s.accounts[accountID] = a
	s.nextID++
	s.events = append(s.events, model.DonationEvent{ID: s.nextID, AccountID: accountID, Amount: amount, OccurredAt: at})
	return &a, nil
}

// History returns the newest events of an account first.
func (s *AccountStore) History(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.DonationEvent, 0)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].AccountID == accountID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

// SumInWindow sums event amounts with from <= OccurredAt < to.
func (s *AccountStore) SumInWindow(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range s.events {
		if e.AccountID == accountID && !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// Standings returns every account with its two window sums. Events at or after now are ignored.
func (s *AccountStore) Standings(ctx context.Context, previousFrom, currentFrom, now time.Time) ([]model.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]model.Standing, 0, len(s.accounts))
	for _, a := range s.accounts {
		st := model.Standing{Account: a, CurrentWindow: decimal.Zero, PreviousWindow: decimal.Zero}
		for _, e := range s.events {
			if e.AccountID != a.ID || !e.OccurredAt.Before(now) {
				continue
			}
			switch {
			case !e.OccurredAt.Before(currentFrom):
				st.CurrentWindow = st.CurrentWindow.Add(e.Amount)
			case !e.OccurredAt.Before(previousFrom):
				st.PreviousWindow = st.PreviousWindow.Add(e.Amount)
			}
		}
		out = append(out, st)
	}
	return out, nil
}

// IdentityRepositoryStub stores identities in-memory for tests.
type IdentityRepositoryStub struct {
	mu         sync.Mutex
	Identities map[string]*model.Identity
	Orphans    []model.Identity
	Err        error
	ListFn     func(context.Context, int) ([]model.Identity, error)
}

// NewIdentityRepositoryStub constructs stub repository with initialized maps.
func NewIdentityRepositoryStub() *IdentityRepositoryStub {
	return &IdentityRepositoryStub{Identities: make(map[string]*model.Identity)}
}

// Create registers identity unless the email exists or stub has explicit error.
func (s *IdentityRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identities == nil {
		s.Identities = make(map[string]*model.Identity)
	}
	if _, exists := s.Identities[email]; exists {
		return nil, domainErrors.ErrEmailTaken
	}
	identity := &model.Identity{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	s.Identities[email] = identity
	return identity, nil
}

// GetByEmail fetches identity by email or returns not found.
func (s *IdentityRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if identity, ok := s.Identities[email]; ok {
		return identity, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListWithoutAccount returns configured orphan identities.
func (s *IdentityRepositoryStub) ListWithoutAccount(ctx context.Context, limit int) ([]model.Identity, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if limit < len(s.Orphans) {
		return s.Orphans[:limit], nil
	}
	return s.Orphans, nil
}

// RewardRepositoryStub lets tests control reward tiers.
type RewardRepositoryStub struct {
	Tiers    []model.RewardTier
	Err      error
	Upserted []model.RewardTier
	UpsertFn func(context.Context, []model.RewardTier) error
}

// ListByTarget returns configured tiers.
func (s *RewardRepositoryStub) ListByTarget(ctx context.Context) ([]model.RewardTier, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Tiers, nil
}

// Upsert records stored tiers.
func (s *RewardRepositoryStub) Upsert(ctx context.Context, tiers []model.RewardTier) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, tiers)
	}
	if s.Err != nil {
		return s.Err
	}
	s.Upserted = append(s.Upserted, tiers...)
	return nil
}

var (
	_ repository.AccountRepository  = (*AccountStore)(nil)
	_ repository.LedgerRepository   = (*AccountStore)(nil)
	_ repository.IdentityRepository = (*IdentityRepositoryStub)(nil)
	_ repository.RewardRepository   = (*RewardRepositoryStub)(nil)
)
