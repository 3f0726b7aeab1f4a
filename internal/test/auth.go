package test

import (
	"context"
	"errors"

	"github.com/polkiloo/fundraiser/internal/domain/model"
	pkgAuth "github.com/polkiloo/fundraiser/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues tokens of the form "token:<subject>" unless overridden.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

const tokenPrefix = "token:"

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(subject string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(subject)
	}
	return tokenPrefix + subject, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if len(token) <= len(tokenPrefix) || token[:len(tokenPrefix)] != tokenPrefix {
		return "", pkgAuth.ErrInvalidToken
	}
	return token[len(tokenPrefix):], nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      string
	Err     error
	ParseFn func(string) (string, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.Account, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.Account, string, error)
	SignOutFn      func(context.Context, string) error
	ParseFn        func(string) (string, error)
}

// Register returns an account and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, displayName string) (*model.Account, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, displayName)
	}
	return &model.Account{ID: "acc-1", Email: email, DisplayName: displayName}, "token", nil
}

// Authenticate returns an account and token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.Account, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.Account{ID: "acc-1", Email: email}, "token", nil
}

// SignOut revokes the supplied token.
func (s AuthFacadeStub) SignOut(ctx context.Context, token string) error {
	if s.SignOutFn != nil {
		return s.SignOutFn(ctx, token)
	}
	return nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "acc-1", nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
