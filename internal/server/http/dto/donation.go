package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// DonationRequest describes a donation payload. Amount accepts JSON numbers and strings.
type DonationRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SetTotalRequest describes the administrative total override. Total is nil when the field is absent.
type SetTotalRequest struct {
	Total *decimal.Decimal `json:"total"`
}

// DonationResponse describes a donation history entry.
type DonationResponse struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// SummaryResponse aggregates totals with the trend windows.
type SummaryResponse struct {
	TotalRaised    decimal.Decimal `json:"total_raised"`
	DonationCount  int64           `json:"donation_count"`
	WindowStart    time.Time       `json:"window_start"`
	CurrentWindow  decimal.Decimal `json:"current_window"`
	PreviousWindow decimal.Decimal `json:"previous_window"`
	PercentChange  float64         `json:"percent_change"`
	HasPriorData   bool            `json:"has_prior_data"`
}

func NewDonationResponses(events []model.DonationEvent) []DonationResponse {
	resp := make([]DonationResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, DonationResponse{ID: e.ID, Amount: e.Amount, OccurredAt: e.OccurredAt})
	}
	return resp
}

func NewSummaryResponse(s model.DonationSummary) SummaryResponse {
	return SummaryResponse{
		TotalRaised:    s.Account.TotalRaised,
		DonationCount:  s.Account.DonationCount,
		WindowStart:    s.WindowStart,
		CurrentWindow:  s.CurrentWindow,
		PreviousWindow: s.PreviousWindow,
		PercentChange:  s.PercentChange,
		HasPriorData:   s.HasPriorData,
	}
}
