package providers

import (
	"context"
	"testing"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

type instantProvider struct{ calls int }

func (p *instantProvider) Name() string { return "instant" }

func (p *instantProvider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	p.calls++
	return domainroster.Snapshot{}, nil
}

func (p *instantProvider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	p.calls++
	return nil, nil
}

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &instantProvider{}
	p := NewRateLimitedProvider(inner, 40*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.FetchRoster(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("three calls finished in %v, want at least 80ms of spacing", elapsed)
	}
	if inner.calls != 3 {
		t.Fatalf("inner called %d times, want 3", inner.calls)
	}
}

func TestRateLimitedProviderHonorsCancellation(t *testing.T) {
	p := NewRateLimitedProvider(&instantProvider{}, time.Minute, nil)

	// First call goes straight through; the second would wait a minute.
	if _, err := p.FetchRoster(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.FetchRoster(ctx); err == nil {
		t.Fatal("expected context deadline error while waiting")
	}
}

func TestRateLimitedProviderNilInner(t *testing.T) {
	p := NewRateLimitedProvider(nil, time.Millisecond, nil)
	if _, err := p.FetchRoster(context.Background()); err != ErrProviderUnavailable {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
