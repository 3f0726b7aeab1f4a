package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

func tier(id string, target int64) model.RewardTier {
	return model.RewardTier{ID: id, Title: id, TargetAmount: decimal.NewFromInt(target), Category: model.RewardCategoryMilestone}
}

func TestComputeProgressLadder(t *testing.T) {
	tiers := []model.RewardTier{tier("bronze", 1000), tier("silver", 5000)}

	cases := []struct {
		name      string
		total     int64
		percent   float64
		target    int64
		remaining int64
		unlocked  int
		next      string
	}{
		{name: "nothing raised", total: 0, percent: 0, target: 1000, remaining: 1000, unlocked: 0, next: "bronze"},
		{name: "exactly on first target", total: 1000, percent: 0, target: 5000, remaining: 4000, unlocked: 1, next: "silver"},
		{name: "halfway to second", total: 3000, percent: 50, target: 5000, remaining: 2000, unlocked: 1, next: "silver"},
		{name: "everything unlocked", total: 9000, percent: 100, target: 5000, remaining: 0, unlocked: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ComputeProgress(tiers, decimal.NewFromInt(tc.total))
			assert.InDelta(t, tc.percent, p.Percent, 1e-9)
			assert.True(t, p.Target.Equal(decimal.NewFromInt(tc.target)), "target %s", p.Target)
			assert.True(t, p.Remaining.Equal(decimal.NewFromInt(tc.remaining)), "remaining %s", p.Remaining)
			assert.Len(t, p.Unlocked, tc.unlocked)
			if tc.next == "" {
				assert.Nil(t, p.Next)
				return
			}
			require.NotNil(t, p.Next)
			assert.Equal(t, tc.next, p.Next.ID)
		})
	}
}

func TestComputeProgressWithoutTiers(t *testing.T) {
	for _, total := range []int64{0, 1, 12345} {
		p := ComputeProgress(nil, decimal.NewFromInt(total))
		assert.Equal(t, float64(100), p.Percent)
		assert.True(t, p.Target.IsZero())
		assert.True(t, p.Remaining.IsZero())
		assert.Nil(t, p.Next)
		assert.Empty(t, p.Unlocked)
	}
}

func TestComputeProgressSortsUnorderedTiers(t *testing.T) {
	tiers := []model.RewardTier{tier("gold", 10000), tier("bronze", 1000), tier("silver", 5000)}

	p := ComputeProgress(tiers, decimal.NewFromInt(6000))
	require.NotNil(t, p.Next)
	assert.Equal(t, "gold", p.Next.ID)
	require.Len(t, p.Unlocked, 2)
	assert.Equal(t, "bronze", p.Unlocked[0].ID)
	assert.Equal(t, "silver", p.Unlocked[1].ID)
	assert.InDelta(t, 20, p.Percent, 1e-9)
	assert.Equal(t, "gold", tiers[0].ID, "input order must be preserved")
}

func TestComputeProgressFractionalAmounts(t *testing.T) {
	tiers := []model.RewardTier{tier("first", 100)}
	p := ComputeProgress(tiers, decimal.RequireFromString("33.33"))
	assert.InDelta(t, 33.33, p.Percent, 1e-9)
	assert.True(t, p.Remaining.Equal(decimal.RequireFromString("66.67")))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, float64(0), clampPercent(-5))
	assert.Equal(t, float64(100), clampPercent(150))
	assert.Equal(t, 42.5, clampPercent(42.5))
}
