package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a provisioned fundraiser profile bound to exactly one identity.
type Account struct {
	ID            string
	Email         string
	DisplayName   string
	ReferralCode  string
	TotalRaised   decimal.Decimal
	DonationCount int64
	JoinDate      time.Time
	AvatarRef     *string
	Version       int64
}
