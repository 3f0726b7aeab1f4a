package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeProgress places total on the reward ladder. Tiers are sorted by target on a copy,
// a tier is unlocked once total reaches its target, and percent measures progress from the
// last unlocked target towards the next one.
func ComputeProgress(tiers []model.RewardTier, total decimal.Decimal) model.Progress {
	sorted := make([]model.RewardTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TargetAmount.LessThan(sorted[j].TargetAmount)
	})

	progress := model.Progress{Unlocked: []model.RewardTier{}}
	previous := decimal.Zero
	for i := range sorted {
		tier := sorted[i]
		if tier.TargetAmount.LessThanOrEqual(total) {
			progress.Unlocked = append(progress.Unlocked, tier)
			previous = tier.TargetAmount
			continue
		}
		progress.Next = &tier
		break
	}

	if progress.Next == nil {
		progress.Percent = 100
		progress.Remaining = decimal.Zero
		progress.Target = decimal.Zero
		if n := len(sorted); n > 0 {
			progress.Target = sorted[n-1].TargetAmount
		}
		return progress
	}

	span := progress.Next.TargetAmount.Sub(previous)
	percent := total.Sub(previous).Div(span).Mul(hundred)
	progress.Percent = clampPercent(percent.InexactFloat64())
	progress.Target = progress.Next.TargetAmount
	progress.Remaining = progress.Next.TargetAmount.Sub(total)
	return progress
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
