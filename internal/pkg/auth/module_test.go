package auth

import (
	"testing"
	"time"

	"github.com/polkiloo/fundraiser/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategyHMAC(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		SessionSecret:   "top-secret",
		SessionStrategy: config.SessionStrategyHMAC,
	}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewTokenStrategyJWT(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		SessionSecret:   "top-secret",
		SessionStrategy: config.SessionStrategyJWT,
		SessionTTL:      time.Hour,
	}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if jwtStrategy.ttl != time.Hour {
		t.Fatalf("unexpected ttl: %s", jwtStrategy.ttl)
	}
}

func TestNewRevocationList(t *testing.T) {
	list := newRevocationList(strategyParams{Config: &config.Config{SessionTTL: time.Hour}})
	if list.ttl != time.Hour {
		t.Fatalf("unexpected ttl: %s", list.ttl)
	}
}
