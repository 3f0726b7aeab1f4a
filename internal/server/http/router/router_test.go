package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
	"github.com/polkiloo/fundraiser/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/fundraiser/internal/test"
)

func newTestEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.PortalFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{ParseFn: func(token string) (string, error) {
			return testhelpers.StrategyStub{}.ParseToken(token)
		}},
		DonationFacadeStub: testhelpers.DonationFacadeStub{HistoryFn: func(context.Context, string, int) ([]model.DonationEvent, error) {
			return nil, nil
		}},
	}
	return Setup(facade, metrics.New(), cfg, logger)
}

func serve(engine *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	engine := newTestEngine(t, &config.Config{AdminToken: "admin"})
	authed := map[string]string{"Authorization": "Bearer token:acc-1", "Content-Type": "application/json"}

	body, _ := json.Marshal(map[string]string{"email": "intern@example.com", "password": "secret1", "display_name": "Intern"})
	cases := []struct {
		name    string
		method  string
		path    string
		body    []byte
		headers map[string]string
		want    int
	}{
		{name: "register", method: http.MethodPost, path: "/api/auth/register", body: body, headers: map[string]string{"Content-Type": "application/json"}, want: http.StatusOK},
		{name: "login", method: http.MethodPost, path: "/api/auth/login", body: body, headers: map[string]string{"Content-Type": "application/json"}, want: http.StatusOK},
		{name: "logout", method: http.MethodPost, path: "/api/auth/logout", headers: authed, want: http.StatusNoContent},
		{name: "logout anonymous", method: http.MethodPost, path: "/api/auth/logout", want: http.StatusUnauthorized},
		{name: "me", method: http.MethodGet, path: "/api/me", headers: authed, want: http.StatusOK},
		{name: "me bad token", method: http.MethodGet, path: "/api/me", headers: map[string]string{"Authorization": "Bearer forged"}, want: http.StatusUnauthorized},
		{name: "donate", method: http.MethodPost, path: "/api/donations", body: []byte(`{"amount":25}`), headers: authed, want: http.StatusOK},
		{name: "history empty", method: http.MethodGet, path: "/api/donations", headers: authed, want: http.StatusNoContent},
		{name: "summary", method: http.MethodGet, path: "/api/donations/summary", headers: authed, want: http.StatusOK},
		{name: "tiers", method: http.MethodGet, path: "/api/rewards", want: http.StatusOK},
		{name: "progress", method: http.MethodGet, path: "/api/rewards/progress", headers: authed, want: http.StatusOK},
		{name: "progress anonymous", method: http.MethodGet, path: "/api/rewards/progress", want: http.StatusUnauthorized},
		{name: "leaderboard", method: http.MethodGet, path: "/api/leaderboard?limit=10", want: http.StatusOK},
		{name: "own standing", method: http.MethodGet, path: "/api/leaderboard/me", headers: authed, want: http.StatusOK},
		{name: "referral", method: http.MethodGet, path: "/api/referrals/intern1234", want: http.StatusOK},
		{name: "admin", method: http.MethodPut, path: "/api/admin/accounts/acc-1/total", body: []byte(`{"total":"10"}`), headers: map[string]string{"X-Admin-Token": "admin"}, want: http.StatusOK},
		{name: "admin wrong token", method: http.MethodPut, path: "/api/admin/accounts/acc-1/total", body: []byte(`{"total":"10"}`), headers: map[string]string{"X-Admin-Token": "nope"}, want: http.StatusUnauthorized},
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "unknown", method: http.MethodGet, path: "/api/unknown", want: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(engine, tc.method, tc.path, tc.body, tc.headers)
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d (%s)", tc.want, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestAdminRoutesDisabledWithoutToken(t *testing.T) {
	engine := newTestEngine(t, &config.Config{})
	resp := serve(engine, http.MethodPut, "/api/admin/accounts/acc-1/total", []byte(`{"total":"10"}`), map[string]string{"X-Admin-Token": ""})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newTestEngine(t, &config.Config{})
	serve(engine, http.MethodGet, "/api/rewards", nil, nil)

	resp := serve(engine, http.MethodGet, "/metrics", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `fundraiser_http_requests_total{method="GET",path="/api/rewards",status="200"} 1`) {
		t.Fatalf("expected request counter in exposition, got:\n%s", resp.Body.String())
	}
}

func TestDonationAmountsRoundTrip(t *testing.T) {
	engine := newTestEngine(t, &config.Config{})
	resp := serve(engine, http.MethodPost, "/api/donations", []byte(`{"amount":"12.34"}`), map[string]string{"Authorization": "Bearer token:acc-1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var account struct {
		TotalRaised decimal.Decimal `json:"total_raised"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !account.TotalRaised.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("expected 12.34, got %s", account.TotalRaised)
	}
}

var _ handlers.PortalFacade = testhelpers.PortalFacadeStub{}

func TestModuleProvidesEngine(t *testing.T) {
	var engine *gin.Engine
	app := fx.New(
		fx.NopLogger,
		fx.Supply(
			&config.Config{},
			slog.New(slog.NewJSONHandler(io.Discard, nil)),
		),
		fx.Provide(func() handlers.PortalFacade { return testhelpers.PortalFacadeStub{} }),
		Module,
		fx.Populate(&engine),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	if engine == nil {
		t.Fatal("expected engine without metrics provider")
	}
	resp := serve(engine, http.MethodGet, "/healthz", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
