package identity

import (
	"testing"

	"github.com/polkiloo/fundraiser/internal/config"
	testhelpers "github.com/polkiloo/fundraiser/internal/test"
)

func TestNewProviderUsesConfig(t *testing.T) {
	local, err := newProvider(providerParams{
		Config:     &config.Config{IdentityProvider: config.IdentityProviderLocal},
		Logger:     testLogger(),
		Identities: testhelpers.NewIdentityRepositoryStub(),
		Hasher:     testhelpers.HasherStub{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := local.(*LocalProvider); !ok {
		t.Fatalf("expected local provider, got %T", local)
	}

	remote, err := newProvider(providerParams{
		Config: &config.Config{IdentityProvider: config.IdentityProviderRemote, IdentityURL: "http://identity.local", IdentityAPIKey: "k"},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rp, ok := remote.(*RemoteProvider)
	if !ok || rp.apiKey != "k" {
		t.Fatalf("expected remote provider with api key, got %T", remote)
	}

	if _, err := newProvider(providerParams{
		Config: &config.Config{IdentityProvider: config.IdentityProviderRemote, IdentityURL: "relative"},
		Logger: testLogger(),
	}); err == nil {
		t.Fatal("expected error for relative remote url")
	}
}
