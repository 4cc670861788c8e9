package providers

import (
	"context"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// RosterProvider defines how an upstream roster is fetched and normalized
// into the canonical snapshot shape.
type RosterProvider interface {
	FetchRoster(ctx context.Context) (domainroster.Snapshot, error)
}

// StatProvider fetches normalized per-player stat records for one scope.
// Records are best-effort: rows the adapter cannot attribute to a player are
// skipped, and membership filtering happens downstream at the roster gate.
type StatProvider interface {
	FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error)
}

// DataProvider combines all adapter capabilities. Name is the stable tag
// recorded in artifacts, logs and metrics.
type DataProvider interface {
	RosterProvider
	StatProvider
	Name() string
}
