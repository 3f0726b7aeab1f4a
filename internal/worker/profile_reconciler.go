package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/fundraiser/internal/domain/model"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
)

// ReconcilerFacade exposes the subset of application functionality required by the worker.
type ReconcilerFacade interface {
	OrphanIdentities(ctx context.Context, limit int) ([]model.Identity, error)
	ProvisionIdentity(ctx context.Context, identityID, email string) (*model.Account, error)
}

// ProfileReconciler periodically provisions accounts for identities that registered but never
// received a profile. Provisioning is idempotent, so an identity seen twice is harmless.
type ProfileReconciler struct {
	facade    ReconcilerFacade
	interval  time.Duration
	batchSize int
	workers   int
	metrics   *metrics.Metrics
	logger    *slog.Logger

	jobs   chan model.Identity
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewProfileReconciler constructs the reconciler worker pool.
func NewProfileReconciler(facade ReconcilerFacade, interval time.Duration, batchSize, workers int, m *metrics.Metrics, logger *slog.Logger) *ProfileReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &ProfileReconciler{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		metrics:   m,
		logger:    logger,
	}
}

// Start launches background reconciliation. Calling Start on a running reconciler is a no-op.
func (p *ProfileReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.jobs = make(chan model.Identity, p.batchSize)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx, p.jobs)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx, p.jobs)
}

// Stop cancels scanning and waits for all workers to finish.
func (p *ProfileReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ProfileReconciler) dispatch(ctx context.Context, jobs chan<- model.Identity) {
	defer p.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.scan(ctx, jobs)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.scan(ctx, jobs)
		}
	}
}

func (p *ProfileReconciler) scan(ctx context.Context, jobs chan<- model.Identity) {
	identities, err := p.facade.OrphanIdentities(ctx, p.batchSize)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Error("scan orphan identities failed", slog.String("error", err.Error()))
		}
		return
	}
	if len(identities) == 0 {
		return
	}

	p.metrics.ReconcileBatch()
	p.logger.Debug("orphan identities found", slog.Int("count", len(identities)))
	for _, identity := range identities {
		select {
		case <-ctx.Done():
			return
		case jobs <- identity:
		}
	}
}

func (p *ProfileReconciler) worker(ctx context.Context, jobs <-chan model.Identity) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case identity, ok := <-jobs:
			if !ok {
				return
			}
			p.reconcile(ctx, identity)
		}
	}
}

func (p *ProfileReconciler) reconcile(ctx context.Context, identity model.Identity) {
	account, err := p.facade.ProvisionIdentity(ctx, identity.ID, identity.Email)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.logger.Error("reconcile profile failed",
			slog.String("identity_id", identity.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	p.logger.Info("orphan profile reconciled",
		slog.String("identity_id", identity.ID),
		slog.String("referral_code", account.ReferralCode),
	)
}
