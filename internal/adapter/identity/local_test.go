package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
	"github.com/polkiloo/fundraiser/internal/pkg/auth"
	testhelpers "github.com/polkiloo/fundraiser/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestLocalProviderCreateAndAuthenticate(t *testing.T) {
	repo := testhelpers.NewIdentityRepositoryStub()
	provider := NewLocalProvider(repo, testhelpers.HasherStub{}, testLogger())
	ctx := context.Background()

	id, err := provider.CreateIdentity(ctx, "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("create identity returned error: %v", err)
	}
	if id == "" {
		t.Fatal("expected identity id")
	}
	if stored := repo.Identities["ann@example.com"]; stored == nil || stored.PasswordHash != "hash:secret1" {
		t.Fatalf("expected hashed credential to be stored, got %+v", stored)
	}

	got, err := provider.AuthenticateIdentity(ctx, "ann@example.com", "secret1")
	if err != nil || got != id {
		t.Fatalf("expected identity %q, got %q %v", id, got, err)
	}
}

func TestLocalProviderRejectsBadCredentials(t *testing.T) {
	repo := testhelpers.NewIdentityRepositoryStub()
	provider := NewLocalProvider(repo, testhelpers.HasherStub{}, testLogger())
	ctx := context.Background()
	if _, err := provider.CreateIdentity(ctx, "bob@example.com", "secret1"); err != nil {
		t.Fatalf("create identity: %v", err)
	}

	if _, err := provider.AuthenticateIdentity(ctx, "bob@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := provider.AuthenticateIdentity(ctx, "nobody@example.com", "secret1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestLocalProviderPropagatesErrors(t *testing.T) {
	ctx := context.Background()

	hashErr := errors.New("hash failed")
	provider := NewLocalProvider(testhelpers.NewIdentityRepositoryStub(), testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", hashErr },
	}, testLogger())
	if _, err := provider.CreateIdentity(ctx, "c@example.com", "secret1"); !errors.Is(err, hashErr) {
		t.Fatalf("expected hash error, got %v", err)
	}

	repo := testhelpers.NewIdentityRepositoryStub()
	repo.Err = errors.New("db down")
	provider = NewLocalProvider(repo, testhelpers.HasherStub{}, testLogger())
	if _, err := provider.CreateIdentity(ctx, "c@example.com", "secret1"); err == nil {
		t.Fatal("expected repository error on create")
	}
	if _, err := provider.AuthenticateIdentity(ctx, "c@example.com", "secret1"); err == nil || errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected raw repository error on authenticate, got %v", err)
	}

	dup := testhelpers.NewIdentityRepositoryStub()
	provider = NewLocalProvider(dup, testhelpers.HasherStub{}, testLogger())
	_, _ = provider.CreateIdentity(ctx, "d@example.com", "secret1")
	if _, err := provider.CreateIdentity(ctx, "d@example.com", "secret2"); !errors.Is(err, domainErrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestLocalProviderWithBcrypt(t *testing.T) {
	ctx := context.Background()
	provider := NewLocalProvider(testhelpers.NewIdentityRepositoryStub(), auth.NewBcryptHasher(bcrypt.MinCost), testLogger())

	id, err := provider.CreateIdentity(ctx, "e@example.com", "secret1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := provider.AuthenticateIdentity(ctx, "e@example.com", "secret1")
	if err != nil || got != id {
		t.Fatalf("expected %q, got %q (%v)", id, got, err)
	}
	if _, err := provider.AuthenticateIdentity(ctx, "e@example.com", "secret2"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	_, err = provider.CreateIdentity(ctx, "f@example.com", strings.Repeat("x", auth.MaxPasswordBytes+1))
	if !errors.Is(err, domainErrors.ErrWeakCredential) {
		t.Fatalf("expected weak credential for oversized password, got %v", err)
	}
}
