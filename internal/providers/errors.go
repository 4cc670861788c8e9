package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable marks an adapter that is not configured or not wired.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrUnrecognizedShape marks a payload that parsed as JSON but did not carry
// the structure the adapter expects. Treated like a transport failure: the
// orchestrator moves on to the next adapter.
var ErrUnrecognizedShape = errors.New("unrecognized payload shape")

// ErrScopeUnsupported marks a stat scope an adapter cannot serve at all
// (e.g. a source that only publishes cumulative season splits).
var ErrScopeUnsupported = errors.New("stat scope unsupported by provider")

// IsScopeUnsupported reports whether an error marks a scope the adapter can
// never serve, as opposed to a transient fetch failure.
func IsScopeUnsupported(err error) bool {
	return errors.Is(err, ErrScopeUnsupported)
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// SeasonMismatchError flags upstream data whose embedded season disagrees
// with the configured target season. Adapters never guess across seasons
// silently; the orchestrator decides whether to fall back or abort.
type SeasonMismatchError struct {
	Provider string
	Got      int
	Want     int
}

func (e *SeasonMismatchError) Error() string {
	return fmt.Sprintf("%s: season mismatch: got %d, want %d", e.Provider, e.Got, e.Want)
}

// AsSeasonMismatchError attempts to unwrap an error into a SeasonMismatchError.
func AsSeasonMismatchError(err error) (*SeasonMismatchError, bool) {
	var smErr *SeasonMismatchError
	if errors.As(err, &smErr) {
		return smErr, true
	}
	return nil, false
}
