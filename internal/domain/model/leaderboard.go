package model

import "github.com/shopspring/decimal"

// Standing is an account snapshot with donation sums for the current and previous trend windows.
type Standing struct {
	Account        Account
	CurrentWindow  decimal.Decimal
	PreviousWindow decimal.Decimal
}

// LeaderboardEntry is a derived ranking row. It is recomputed on every query.
type LeaderboardEntry struct {
	Rank          int
	Account       Account
	MonthlyRaised decimal.Decimal
	PercentChange float64
	HasPriorData  bool
}
