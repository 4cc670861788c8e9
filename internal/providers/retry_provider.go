package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBaseBackoff   = 250 * time.Millisecond
)

// retryingProvider wraps a DataProvider with bounded retry and exponential
// backoff plus jitter. Season mismatches and unsupported scopes are permanent:
// retrying cannot turn wrong-season data into right-season data.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	maxAttempts int
	baseBackoff time.Duration
}

// NewRetryingProvider wraps the given provider with retries. Non-positive
// maxAttempts/base fall back to defaults.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, base time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBaseBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		maxAttempts: maxAttempts,
		baseBackoff: base,
	}
}

func (r *retryingProvider) Name() string {
	return r.inner.Name()
}

func (r *retryingProvider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	var snap domainroster.Snapshot
	err := r.retry(ctx, "roster", func(c context.Context) error {
		var fetchErr error
		snap, fetchErr = r.inner.FetchRoster(c)
		return fetchErr
	})
	if err != nil {
		return domainroster.Snapshot{}, err
	}
	return snap, nil
}

func (r *retryingProvider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	var records []domainstats.Record
	err := r.retry(ctx, "stats:"+string(scope), func(c context.Context) error {
		var fetchErr error
		records, fetchErr = r.inner.FetchStats(c, scope)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func(context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.baseBackoff
	bo.Multiplier = 2.4
	bo.RandomizationFactor = 0.3
	bo.MaxInterval = 5 * time.Second

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn(ctx)
		if r.metrics != nil {
			r.metrics.RecordProviderAttempt(r.inner.Name(), time.Since(start), err)
		}
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok && r.metrics != nil {
			r.metrics.RecordRateLimit(r.inner.Name(), rl.RetryAfter)
		}
		r.logWarn(ctx, op, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.maxAttempts-1)), ctx)
	err := backoff.Retry(operation, policy)
	if err != nil {
		r.logWarn(ctx, op, "provider fetch failed", "attempts", attempt, "err", err)
	}
	return err
}

func isPermanent(err error) bool {
	if errors.Is(err, ErrScopeUnsupported) || errors.Is(err, ErrProviderUnavailable) {
		return true
	}
	_, seasonMismatch := AsSeasonMismatchError(err)
	return seasonMismatch
}

func (r *retryingProvider) logWarn(ctx context.Context, op, msg string, args ...any) {
	logProviderOp(ctx, r.logger, slog.LevelWarn, r.inner.Name(), op, msg, args...)
}
