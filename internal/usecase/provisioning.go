package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/polkiloo/fundraiser/internal/adapter/identity"
	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	pkgAuth "github.com/polkiloo/fundraiser/internal/pkg/auth"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
)

// Provisioning sources reported to metrics and logs.
const (
	SourceLogin     = "login"
	SourceRegister  = "register"
	SourceReconcile = "reconcile"
)

const (
	defaultMinPasswordLength = 6
	// referralRaceRetries bounds inserts that lose the referral code uniqueness race.
	referralRaceRetries = 3
)

// CodeGenerator produces unique referral codes.
type CodeGenerator interface {
	Generate(ctx context.Context, displayName string) (string, error)
}

// ProvisioningOptions tunes credential policy. Zero values fall back to defaults.
type ProvisioningOptions struct {
	MinPasswordLength int
}

// ProvisioningUseCase binds identities to accounts and manages explicit session tokens.
type ProvisioningUseCase struct {
	identities identity.Provider
	accounts   repository.AccountRepository
	referrals  CodeGenerator
	tokens     pkgAuth.Strategy
	revoked    *pkgAuth.RevocationList
	metrics    *metrics.Metrics
	logger     *slog.Logger
	minLength  int
	now        func() time.Time
}

// NewProvisioningUseCase constructs ProvisioningUseCase.
func NewProvisioningUseCase(
	identities identity.Provider,
	accounts repository.AccountRepository,
	referrals CodeGenerator,
	tokens pkgAuth.Strategy,
	revoked *pkgAuth.RevocationList,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts ProvisioningOptions,
) *ProvisioningUseCase {
	minLength := opts.MinPasswordLength
	if minLength <= 0 {
		minLength = defaultMinPasswordLength
	}
	return &ProvisioningUseCase{
		identities: identities,
		accounts:   accounts,
		referrals:  referrals,
		tokens:     tokens,
		revoked:    revoked,
		metrics:    m,
		logger:     logger,
		minLength:  minLength,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate verifies credentials and returns the account, provisioning it when missing.
func (u *ProvisioningUseCase) Authenticate(ctx context.Context, email, credential string) (*model.Account, *model.Session, error) {
	email, ok := normalizeEmail(email)
	if !ok || credential == "" {
		return nil, nil, domainErrors.ErrInvalidCredentials
	}

	identityID, err := u.identities.AuthenticateIdentity(ctx, email, credential)
	if err != nil {
		return nil, nil, err
	}

	account, err := u.provision(ctx, identityID, email, "", SourceLogin)
	if err != nil {
		return nil, nil, err
	}

	session, err := u.issueSession(identityID)
	if err != nil {
		return nil, nil, err
	}
	return account, session, nil
}

// Register creates the identity and then its account profile. A profile failure leaves the
// identity in place; the next Authenticate for it provisions the missing account.
func (u *ProvisioningUseCase) Register(ctx context.Context, email, credential, displayName string) (*model.Account, *model.Session, error) {
	email, ok := normalizeEmail(email)
	if !ok {
		return nil, nil, domainErrors.ErrInvalidCredentials
	}
	if len([]rune(credential)) < u.minLength {
		return nil, nil, domainErrors.ErrWeakCredential
	}

	identityID, err := u.identities.CreateIdentity(ctx, email, credential)
	if err != nil {
		return nil, nil, err
	}

	account, err := u.provision(ctx, identityID, email, displayName, SourceRegister)
	if err != nil {
		u.logger.Warn("profile creation failed after identity creation",
			slog.String("identity_id", identityID),
			slog.String("error", err.Error()),
		)
		return nil, nil, domainErrors.Wrap(domainErrors.ErrProfileCreateFailed, err)
	}

	session, err := u.issueSession(identityID)
	if err != nil {
		return nil, nil, err
	}
	return account, session, nil
}

// ProvisionIdentity creates the account for an identity that has none yet.
func (u *ProvisioningUseCase) ProvisionIdentity(ctx context.Context, identityID, email string) (*model.Account, error) {
	email, ok := normalizeEmail(email)
	if !ok {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return u.provision(ctx, identityID, email, "", SourceReconcile)
}

// CurrentAccount resolves the account owning token.
func (u *ProvisioningUseCase) CurrentAccount(ctx context.Context, token string) (*model.Account, error) {
	identityID, err := u.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrNotFound
	}
	return u.AccountByID(ctx, identityID)
}

// AccountByID returns the account for identityID or ErrNotFound.
func (u *ProvisioningUseCase) AccountByID(ctx context.Context, identityID string) (*model.Account, error) {
	account, err := u.accounts.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// SignOut revokes token. Unknown or malformed tokens are ignored.
func (u *ProvisioningUseCase) SignOut(_ context.Context, token string) error {
	if _, err := u.tokens.ParseToken(token); err != nil {
		return nil
	}
	u.revoked.Revoke(token)
	return nil
}

// ParseToken extracts the identity id from a live, unrevoked token.
func (u *ProvisioningUseCase) ParseToken(token string) (string, error) {
	if token == "" || u.revoked.Revoked(token) {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// LookupReferral returns the account that owns a referral code.
func (u *ProvisioningUseCase) LookupReferral(ctx context.Context, code string) (*model.Account, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, domainErrors.ErrNotFound
	}
	account, err := u.accounts.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (u *ProvisioningUseCase) provision(ctx context.Context, identityID, email, displayName, source string) (*model.Account, error) {
	existing, err := u.accounts.GetByID(ctx, identityID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainErrors.ErrAccountNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = localPart(email)
	}

	for attempt := 0; attempt < referralRaceRetries; attempt++ {
		code, err := u.referrals.Generate(ctx, name)
		if err != nil {
			return nil, err
		}

		account, created, err := u.accounts.InsertIfAbsent(ctx, model.Account{
			ID:           identityID,
			Email:        email,
			DisplayName:  name,
			ReferralCode: code,
			JoinDate:     u.now(),
		})
		if errors.Is(err, domainErrors.ErrReferralCodeTaken) {
			u.logger.Debug("referral code taken concurrently", slog.String("code", code))
			continue
		}
		if err != nil {
			return nil, err
		}

		if created {
			u.metrics.AccountProvisioned(source)
			u.logger.Info("account provisioned",
				slog.String("account_id", account.ID),
				slog.String("source", source),
			)
		}
		return account, nil
	}
	return nil, domainErrors.ErrCodeGenerationExhausted
}

func (u *ProvisioningUseCase) issueSession(identityID string) (*model.Session, error) {
	token, err := u.tokens.IssueToken(identityID)
	if err != nil {
		return nil, err
	}
	return &model.Session{IdentityID: identityID, Token: token}, nil
}

func normalizeEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email, true
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
