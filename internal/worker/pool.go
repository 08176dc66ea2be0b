package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/shared"
)

// ErrPermanent marks handler errors that no retry can fix. Such jobs are
// buried at once.
var ErrPermanent = errs.New("permanent job failure")

const maxJobBackoff = 5 * time.Minute

type Handler func(ctx context.Context, job *shared.Job) error

// Pool runs leased jobs on a fixed number of goroutines. A job whose lease
// runs out before it completes is leased again, so handlers must tolerate
// running more than once.
type Pool struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	cfg      config.WorkerConfig
	metrics  *observability.Metrics
	handlers map[string]Handler

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(uow shared.UnitOfWork, clk clock.Clock, cfg config.WorkerConfig, metrics *observability.Metrics) *Pool {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 60 * time.Second
	}
	if cfg.LeaseDuration < cfg.JobTimeout {
		cfg.LeaseDuration = cfg.JobTimeout + cfg.JobTimeout/2
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Pool{
		uow:      uow,
		clock:    clk,
		cfg:      cfg,
		metrics:  metrics,
		handlers: make(map[string]Handler),
	}
}

func (p *Pool) Register(kind string, h Handler) {
	p.handlers[kind] = h
}

func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))
	for i := range p.cfg.Concurrency {
		p.wg.Add(1)
		go p.loop(ctx, i)
	}
	slog.Info("worker pool started", "concurrency", p.cfg.Concurrency)
}

// Stop cancels the loops and waits for in-flight jobs, or for ctx.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		slog.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) loop(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		n, err := p.runBatch(ctx, 1)
		if err != nil && ctx.Err() == nil {
			slog.Error("job lease failed", "worker", id, "error", err)
		}
		if n > 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.cfg.PollInterval):
		}
	}
}

// RunOnce leases up to batch due jobs and handles them in order. It returns
// how many jobs were handled.
func (p *Pool) RunOnce(ctx context.Context, batch int) (int, error) {
	return p.runBatch(ctx, batch)
}

func (p *Pool) runBatch(ctx context.Context, batch int) (int, error) {
	var jobs []*shared.Job
	err := p.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := p.clock.Now()
		var err error
		jobs, err = tx.Jobs().Lease(ctx, now, now.Add(p.cfg.LeaseDuration), batch)
		return err
	})
	if err != nil {
		return 0, err
	}
	for _, job := range jobs {
		p.handle(ctx, job)
	}
	return len(jobs), nil
}

func (p *Pool) handle(ctx context.Context, job *shared.Job) {
	start := time.Now()
	err := p.invoke(ctx, job)
	p.metrics.ObserveJob(job.Kind, time.Since(start), err)

	// record the result even when the pool is shutting down
	ctx = context.WithoutCancel(ctx)
	now := p.clock.Now()
	logArgs := []any{"job_id", job.ID.String(), "kind", job.Kind, "attempt", job.Attempts}

	switch {
	case err == nil:
		err = p.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Jobs().Complete(ctx, job.ID, now)
		})
	case errs.Is(err, ErrPermanent) || job.Attempts >= p.cfg.MaxAttempts:
		slog.Error("burying job", append(logArgs, "error", err.Error())...)
		lastErr := err.Error()
		err = p.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Jobs().Bury(ctx, job.ID, lastErr, now)
		})
	default:
		delay := backoff(job.Attempts)
		slog.Warn("job failed, rescheduling", append(logArgs, "error", err.Error(), "retry_in", delay)...)
		lastErr := err.Error()
		err = p.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Jobs().Reschedule(ctx, job.ID, now.Add(delay), lastErr, now)
		})
	}
	if err != nil {
		// the lease will expire and the job will run again
		slog.Error("failed to record job result", append(logArgs, "error", err.Error())...)
	}
}

func (p *Pool) invoke(ctx context.Context, job *shared.Job) (err error) {
	h, ok := p.handlers[job.Kind]
	if !ok {
		return errs.Mark(errs.New("no handler for job kind "+job.Kind), ErrPermanent)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.JobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job handler panicked", "kind", job.Kind, "panic", r, "stack", string(debug.Stack()))
			err = errs.New(fmt.Sprintf("job handler panicked: %v", r))
		}
	}()
	return h(ctx, job)
}

func backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 9 {
		return maxJobBackoff
	}
	return min(time.Second<<(attempts-1), maxJobBackoff)
}
