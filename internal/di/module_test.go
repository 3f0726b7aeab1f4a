package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/adapter/identity"
	"github.com/polkiloo/fundraiser/internal/app"
	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/domain/repository"
	"github.com/polkiloo/fundraiser/internal/storage/postgres"
	"github.com/polkiloo/fundraiser/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		SessionSecret:     "secret",
		SessionStrategy:   config.SessionStrategyJWT,
		SessionTTL:        time.Hour,
		IdentityProvider:  config.IdentityProviderLocal,
		MinPasswordLength: 6,
		ReferralAttempts:  5,
		LedgerRetryLimit:  5,
		TrendWindow:       time.Hour,
		ReconcileInterval: time.Hour,
		ReconcileBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewAccountStore()
	identities := test.NewIdentityRepositoryStub()
	rewards := &test.RewardRepositoryStub{}

	var (
		facade *app.PortalFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.AccountRepository)))),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.LedgerRepository)))),
			fx.Replace(fx.Annotate(identities, fx.As(new(repository.IdentityRepository)))),
			fx.Replace(fx.Annotate(rewards, fx.As(new(repository.RewardRepository)))),
			fx.Replace(fx.Annotate(test.IdentityProviderStub{ID: "id-1"}, fx.As(new(identity.Provider)))),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil {
		t.Fatal("expected portal facade and router instances")
	}

	account, token, err := facade.Register(context.Background(), "graph@example.com", "secret1", "Graph")
	if err != nil {
		t.Fatalf("register through graph: %v", err)
	}
	if account.ID != "id-1" || token == "" {
		t.Fatalf("unexpected registration result %+v %q", account, token)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from composed router, got %d", resp.Code)
	}
}
