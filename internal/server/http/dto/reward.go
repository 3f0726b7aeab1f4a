package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// RewardTierResponse describes a reward milestone.
type RewardTierResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	RewardText   string          `json:"reward"`
	Category     string          `json:"category"`
}

// ProgressResponse describes progression along the reward ladder.
type ProgressResponse struct {
	Unlocked  []RewardTierResponse `json:"unlocked"`
	Next      *RewardTierResponse  `json:"next"`
	Percent   float64              `json:"percent"`
	Target    decimal.Decimal      `json:"target"`
	Remaining decimal.Decimal      `json:"remaining"`
}

func NewRewardTierResponse(t model.RewardTier) RewardTierResponse {
	return RewardTierResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		TargetAmount: t.TargetAmount,
		RewardText:   t.RewardText,
		Category:     string(t.Category),
	}
}

func NewRewardTierResponses(tiers []model.RewardTier) []RewardTierResponse {
	resp := make([]RewardTierResponse, 0, len(tiers))
	for _, t := range tiers {
		resp = append(resp, NewRewardTierResponse(t))
	}
	return resp
}

func NewProgressResponse(p model.Progress) ProgressResponse {
	resp := ProgressResponse{
		Unlocked:  NewRewardTierResponses(p.Unlocked),
		Percent:   p.Percent,
		Target:    p.Target,
		Remaining: p.Remaining,
	}
	if p.Next != nil {
		next := NewRewardTierResponse(*p.Next)
		resp.Next = &next
	}
	return resp
}
