package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
)

// LeaderboardUseCase ranks accounts from a single consistent ledger snapshot.
type LeaderboardUseCase struct {
	ledger repository.LedgerRepository
	window time.Duration
	now    func() time.Time
}

// NewLeaderboardUseCase constructs LeaderboardUseCase.
func NewLeaderboardUseCase(ledger repository.LedgerRepository, window time.Duration) *LeaderboardUseCase {
	if window <= 0 {
		window = defaultTrendWindow
	}
	return &LeaderboardUseCase{
		ledger: ledger,
		window: window,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Leaderboard returns ranked entries. A positive limit truncates the result after ranking.
func (u *LeaderboardUseCase) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries, err := u.rank(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// Standing returns the ranked entry of a single account.
func (u *LeaderboardUseCase) Standing(ctx context.Context, accountID string) (*model.LeaderboardEntry, error) {
	entries, err := u.rank(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Account.ID == accountID {
			return &entries[i], nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

func (u *LeaderboardUseCase) rank(ctx context.Context) ([]model.LeaderboardEntry, error) {
	now := u.now()
	currentFrom := now.Add(-u.window)
	previousFrom := currentFrom.Add(-u.window)

	standings, err := u.ledger.Standings(ctx, previousFrom, currentFrom, now)
	if err != nil {
		return nil, err
	}
	return RankStandings(standings), nil
}
