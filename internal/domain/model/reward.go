package model

import "github.com/shopspring/decimal"

// RewardCategory groups reward tiers for presentation.
type RewardCategory string

const (
	RewardCategoryMilestone   RewardCategory = "milestone"
	RewardCategoryAchievement RewardCategory = "achievement"
	RewardCategoryBonus       RewardCategory = "bonus"
)

// Valid reports whether c is one of the known categories.
func (c RewardCategory) Valid() bool {
	switch c {
	case RewardCategoryMilestone, RewardCategoryAchievement, RewardCategoryBonus:
		return true
	}
	return false
}

// RewardTier is a milestone unlocked once an account raises TargetAmount.
type RewardTier struct {
	ID           string
	Title        string
	Description  string
	TargetAmount decimal.Decimal
	RewardText   string
	Category     RewardCategory
}

// Progress describes how far a total is along the reward tier ladder.
type Progress struct {
	Unlocked  []RewardTier
	Next      *RewardTier
	Percent   float64
	Target    decimal.Decimal
	Remaining decimal.Decimal
}
