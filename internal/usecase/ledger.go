package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
)

const (
	defaultLedgerRetryLimit = 5
	defaultTrendWindow      = 30 * 24 * time.Hour
	defaultHistoryLimit     = 50
	maxHistoryLimit         = 500
)

// LedgerOptions tunes retry and trend settings. Zero values fall back to defaults.
type LedgerOptions struct {
	RetryLimit  int
	TrendWindow time.Duration
}

// LedgerUseCase applies donations to account totals.
type LedgerUseCase struct {
	accounts   repository.AccountRepository
	ledger     repository.LedgerRepository
	metrics    *metrics.Metrics
	logger     *slog.Logger
	retryLimit int
	window     time.Duration
	now        func() time.Time
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(accounts repository.AccountRepository, ledger repository.LedgerRepository, m *metrics.Metrics, logger *slog.Logger, opts LedgerOptions) *LedgerUseCase {
	retryLimit := opts.RetryLimit
	if retryLimit <= 0 {
		retryLimit = defaultLedgerRetryLimit
	}
	window := opts.TrendWindow
	if window <= 0 {
		window = defaultTrendWindow
	}
	return &LedgerUseCase{
		accounts:   accounts,
		ledger:     ledger,
		metrics:    m,
		logger:     logger,
		retryLimit: retryLimit,
		window:     window,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RecordDonation adds amount to the account total and donation count exactly once.
// Transactions aborted by a concurrent writer are retried up to the configured limit.
func (u *LedgerUseCase) RecordDonation(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}

	for attempt := 0; ; attempt++ {
		updated, err := u.ledger.ApplyDonation(ctx, accountID, amount, u.now())
		if err == nil {
			u.metrics.DonationRecorded()
			return updated, nil
		}
		if !errors.Is(err, domainErrors.ErrConcurrentUpdateConflict) {
			return nil, err
		}

		u.metrics.LedgerConflict()
		if attempt >= u.retryLimit {
			u.logger.Warn("donation retries exhausted",
				slog.String("account_id", accountID),
				slog.Int("attempts", attempt+1),
			)
			return nil, domainErrors.ErrConcurrentUpdateConflict
		}
		u.logger.Info("retrying donation after concurrent update",
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt+1),
		)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

// SetTotal overrides the account total for administrative corrections. The donation count is
// left unchanged.
func (u *LedgerUseCase) SetTotal(ctx context.Context, accountID string, total decimal.Decimal) (*model.Account, error) {
	if total.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	account, err := u.accounts.SetTotal(ctx, accountID, total)
	if err != nil {
		return nil, err
	}
	u.logger.Info("account total overridden",
		slog.String("account_id", accountID),
		slog.String("total", total.String()),
	)
	return account, nil
}

// History returns the newest donation events of an account.
func (u *LedgerUseCase) History(ctx context.Context, accountID string, limit int) ([]model.DonationEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return u.ledger.History(ctx, accountID, limit)
}

// Summary reports the account totals with its current and previous trend window sums.
func (u *LedgerUseCase) Summary(ctx context.Context, accountID string) (*model.DonationSummary, error) {
	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	currentFrom := now.Add(-u.window)
	previousFrom := currentFrom.Add(-u.window)

	current, err := u.ledger.SumInWindow(ctx, accountID, currentFrom, now)
	if err != nil {
		return nil, err
	}
	previous, err := u.ledger.SumInWindow(ctx, accountID, previousFrom, currentFrom)
	if err != nil {
		return nil, err
	}

	change, hasPrior := TrendChange(current, previous)
	return &model.DonationSummary{
		Account:        *account,
		WindowStart:    currentFrom,
		CurrentWindow:  current,
		PreviousWindow: previous,
		PercentChange:  change,
		HasPriorData:   hasPrior,
	}, nil
}
