package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// RankStandings orders standings by total raised descending, then join date and id ascending,
// and assigns sequential ranks starting at 1. Ties never share a rank.
func RankStandings(standings []model.Standing) []model.LeaderboardEntry {
	sorted := make([]model.Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Account, sorted[j].Account
		if cmp := a.TotalRaised.Cmp(b.TotalRaised); cmp != 0 {
			return cmp > 0
		}
		if !a.JoinDate.Equal(b.JoinDate) {
			return a.JoinDate.Before(b.JoinDate)
		}
		return a.ID < b.ID
	})

	entries := make([]model.LeaderboardEntry, len(sorted))
	for i, s := range sorted {
		change, hasPrior := TrendChange(s.CurrentWindow, s.PreviousWindow)
		entries[i] = model.LeaderboardEntry{
			Rank:          i + 1,
			Account:       s.Account,
			MonthlyRaised: s.CurrentWindow,
			PercentChange: change,
			HasPriorData:  hasPrior,
		}
	}
	return entries
}

// TrendChange returns the percentage change from previous to current. Without prior data the
// change is 0 and the flag is false.
func TrendChange(current, previous decimal.Decimal) (float64, bool) {
	if !previous.IsPositive() {
		return 0, false
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64(), true
}
