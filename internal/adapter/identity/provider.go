package identity

import "context"

// Provider verifies and creates identities. Both operations return the identity id.
//
// Failures are reported with domain errors: ErrInvalidCredentials from AuthenticateIdentity,
// ErrEmailTaken or ErrWeakCredential from CreateIdentity.
type Provider interface {
	AuthenticateIdentity(ctx context.Context, email, credential string) (string, error)
	CreateIdentity(ctx context.Context, email, credential string) (string, error)
}
