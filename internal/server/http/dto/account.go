package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/fundraiser/internal/domain/model"
)

// AccountResponse represents the signed-in account.
type AccountResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	DisplayName   string          `json:"display_name"`
	ReferralCode  string          `json:"referral_code"`
	TotalRaised   decimal.Decimal `json:"total_raised"`
	DonationCount int64           `json:"donation_count"`
	JoinDate      time.Time       `json:"join_date"`
	AvatarRef     *string         `json:"avatar_ref,omitempty"`
}

func NewAccountResponse(a model.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		ReferralCode:  a.ReferralCode,
		TotalRaised:   a.TotalRaised,
		DonationCount: a.DonationCount,
		JoinDate:      a.JoinDate,
		AvatarRef:     a.AvatarRef,
	}
}

// ProfileResponse is the public part of an account shown to referral visitors.
type ProfileResponse struct {
	DisplayName  string          `json:"display_name"`
	ReferralCode string          `json:"referral_code"`
	TotalRaised  decimal.Decimal `json:"total_raised"`
	JoinDate     time.Time       `json:"join_date"`
	AvatarRef    *string         `json:"avatar_ref,omitempty"`
}

func NewProfileResponse(a model.Account) ProfileResponse {
	return ProfileResponse{
		DisplayName:  a.DisplayName,
		ReferralCode: a.ReferralCode,
		TotalRaised:  a.TotalRaised,
		JoinDate:     a.JoinDate,
		AvatarRef:    a.AvatarRef,
	}
}
