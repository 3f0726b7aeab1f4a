package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// LeaderboardEntryResponse describes one ranked account.
type LeaderboardEntryResponse struct {
	Rank          int             `json:"rank"`
	AccountID     string          `json:"account_id"`
	DisplayName   string          `json:"display_name"`
	AvatarRef     *string         `json:"avatar_ref,omitempty"`
	TotalRaised   decimal.Decimal `json:"total_raised"`
	DonationCount int64           `json:"donation_count"`
	MonthlyRaised decimal.Decimal `json:"monthly_raised"`
	PercentChange float64         `json:"percent_change"`
	HasPriorData  bool            `json:"has_prior_data"`
}

func NewLeaderboardEntryResponse(e model.LeaderboardEntry) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		Rank:          e.Rank,
		AccountID:     e.Account.ID,
		DisplayName:   e.Account.DisplayName,
		AvatarRef:     e.Account.AvatarRef,
		TotalRaised:   e.Account.TotalRaised,
		DonationCount: e.Account.DonationCount,
		MonthlyRaised: e.MonthlyRaised,
		PercentChange: e.PercentChange,
		HasPriorData:  e.HasPriorData,
	}
}
