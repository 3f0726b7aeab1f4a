package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// AccountRepository describes persistence operations for fundraiser accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByReferralCode(ctx context.Context, code string) (*model.Account, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	// InsertIfAbsent stores account unless one with the same ID exists. The returned flag is
	// false when the stored row was provisioned earlier; the stored row is returned in that case.
	InsertIfAbsent(ctx context.Context, account model.Account) (*model.Account, bool, error)
	SetTotal(ctx context.Context, id string, total decimal.Decimal) (*model.Account, error)
}

// LedgerRepository applies donations against account totals.
type LedgerRepository interface {
	// ApplyDonation atomically increments totals relative to the stored row and appends a donation
	// event. ErrConcurrentUpdateConflict reports a transaction aborted by a concurrent writer; nothing
	// is mutated in that case.
	ApplyDonation(ctx context.Context, accountID string, amount decimal.Decimal, at time.Time) (*model.Account, error)
	History(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error)
	SumInWindow(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)
	// Standings returns every account with event sums for [currentFrom, now) and
	// [previousFrom, currentFrom) in a single consistent read.
	Standings(ctx context.Context, previousFrom, currentFrom, now time.Time) ([]model.Standing, error)
}
