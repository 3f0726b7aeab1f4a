package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	m := New()

	m.DonationRecorded()
	m.DonationRecorded()
	m.LedgerConflict()
	m.AccountProvisioned("login")
	m.AccountProvisioned("reconcile")
	m.AccountProvisioned("reconcile")
	m.ReconcileBatch()

	if got := testutil.ToFloat64(m.donations); got != 2 {
		t.Fatalf("expected 2 donations, got %v", got)
	}
	if got := testutil.ToFloat64(m.ledgerConflicts); got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
	if got := testutil.ToFloat64(m.provisioned.WithLabelValues("reconcile")); got != 2 {
		t.Fatalf("expected 2 reconciled accounts, got %v", got)
	}
	if got := testutil.ToFloat64(m.reconcileBatches); got != 1 {
		t.Fatalf("expected 1 batch, got %v", got)
	}
}

func TestObserveRequestAndHandler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/leaderboard", http.StatusOK, 15*time.Millisecond)

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/leaderboard", "200")); got != 1 {
		t.Fatalf("expected request counter 1, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fundraiser_http_requests_total") {
		t.Fatalf("expected request counter in exposition output")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.DonationRecorded()
	m.LedgerConflict()
	m.AccountProvisioned("login")
	m.ReconcileBatch()
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	if m.Registry() != nil {
		t.Fatal("expected nil registry")
	}
}
