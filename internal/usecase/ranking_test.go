package usecase

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

func standing(id string, total int64, joined time.Time) model.Standing {
	return model.Standing{
		Account:        model.Account{ID: id, TotalRaised: decimal.NewFromInt(total), JoinDate: joined},
		CurrentWindow:  decimal.Zero,
		PreviousWindow: decimal.Zero,
	}
}

func TestRankStandingsDistinctTotalsAreDense(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	const n = 50
	standings := make([]model.Standing, 0, n)
	for _, i := range rand.Perm(n) {
		standings = append(standings, standing(fmt.Sprintf("acc-%02d", i), int64(i*10), base))
	}

	entries := RankStandings(standings)
	require.Len(t, entries, n)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.True(t, entries[i-1].Account.TotalRaised.GreaterThan(e.Account.TotalRaised))
		}
	}
}

func TestRankStandingsBreaksTiesByJoinDateThenID(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)

	entries := RankStandings([]model.Standing{
		standing("zed", 100, late),
		standing("bea", 100, late),
		standing("amy", 100, early),
		standing("top", 500, late),
	})

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Account.ID
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []string{"top", "amy", "bea", "zed"}, ids)
}

func TestRankStandingsTrend(t *testing.T) {
	s := standing("acc", 300, time.Now())
	s.CurrentWindow = decimal.NewFromInt(150)
	s.PreviousWindow = decimal.NewFromInt(100)
	fresh := standing("new", 50, time.Now())
	fresh.CurrentWindow = decimal.NewFromInt(50)

	entries := RankStandings([]model.Standing{fresh, s})
	require.Len(t, entries, 2)

	assert.Equal(t, "acc", entries[0].Account.ID)
	assert.True(t, entries[0].MonthlyRaised.Equal(decimal.NewFromInt(150)))
	assert.InDelta(t, 50, entries[0].PercentChange, 1e-9)
	assert.True(t, entries[0].HasPriorData)

	assert.Equal(t, "new", entries[1].Account.ID)
	assert.Equal(t, float64(0), entries[1].PercentChange)
	assert.False(t, entries[1].HasPriorData)
}

func TestRankStandingsEmpty(t *testing.T) {
	assert.Empty(t, RankStandings(nil))
}

func TestTrendChange(t *testing.T) {
	change, ok := TrendChange(decimal.NewFromInt(50), decimal.NewFromInt(200))
	assert.True(t, ok)
	assert.InDelta(t, -75, change, 1e-9)

	change, ok = TrendChange(decimal.NewFromInt(10), decimal.Zero)
	assert.False(t, ok)
	assert.Equal(t, float64(0), change)
}
