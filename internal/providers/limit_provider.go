package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// rateLimitedProvider wraps a DataProvider and enforces a minimum interval
// between upstream calls. The paid API meters requests; spacing calls keeps a
// full pipeline run inside the quota.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// NewRateLimitedProvider returns a DataProvider that spaces calls by the given
// interval. Calls block until the interval elapses.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Name() string {
	if p.next == nil {
		return "rate-limited"
	}
	return p.next.Name()
}

func (p *rateLimitedProvider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	if p.next == nil {
		return domainroster.Snapshot{}, ErrProviderUnavailable
	}
	if err := p.wait(ctx); err != nil {
		return domainroster.Snapshot{}, err
	}
	return p.next.FetchRoster(ctx)
}

func (p *rateLimitedProvider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchStats(ctx, scope)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	p.mu.Lock()
	var delay time.Duration
	if !p.lastCall.IsZero() {
		if elapsed := time.Since(p.lastCall); elapsed < p.interval {
			delay = p.interval - elapsed
		}
	}
	p.lastCall = time.Now().Add(delay)
	p.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	logProviderOp(ctx, p.logger, slog.LevelDebug, p.Name(), "wait", "rate limit wait", "delay_ms", delay.Milliseconds())
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
