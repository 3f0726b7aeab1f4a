package model

import "time"

// Identity is a credential record owned by the local identity provider.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an issued session token and the identity it belongs to.
type Session struct {
	IdentityID string
	Token      string
}
