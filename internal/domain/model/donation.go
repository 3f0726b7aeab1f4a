package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationEvent is an append-only record of a single donation.
type DonationEvent struct {
	ID         int64
	AccountID  string
	Amount     decimal.Decimal
	OccurredAt time.Time
}

// DonationSummary aggregates an account's totals with its trend window sums.
type DonationSummary struct {
	Account        Account
	WindowStart    time.Time
	CurrentWindow  decimal.Decimal
	PreviousWindow decimal.Decimal
	PercentChange  float64
	HasPriorData   bool
}
