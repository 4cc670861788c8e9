package teststubs

import (
	"context"
	"sync/atomic"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	ProviderName string
	Roster       domainroster.Snapshot
	RosterErr    error
	Records      map[domainstats.Scope][]domainstats.Record
	StatsErr     map[domainstats.Scope]error
	RosterCalls  atomic.Int32
	StatsCalls   atomic.Int32
}

// Name returns the configured provider name, defaulting to "stub".
func (s *StubProvider) Name() string {
	if s.ProviderName == "" {
		return "stub"
	}
	return s.ProviderName
}

// FetchRoster returns the configured snapshot and error while tracking calls.
func (s *StubProvider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	_ = ctx
	s.RosterCalls.Add(1)
	if s.RosterErr != nil {
		return domainroster.Snapshot{}, s.RosterErr
	}
	return s.Roster, nil
}

// FetchStats returns configured records for the scope while tracking calls.
func (s *StubProvider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	_ = ctx
	s.StatsCalls.Add(1)
	if err := s.StatsErr[scope]; err != nil {
		return nil, err
	}
	return s.Records[scope], nil
}

// FlakyProvider fails the first FailCount calls of each operation, then
// delegates to the wrapped stub. Used to exercise retry behavior.
type FlakyProvider struct {
	Inner     *StubProvider
	Err       error
	FailCount int32

	rosterFails atomic.Int32
	statsFails  atomic.Int32
}

func (f *FlakyProvider) Name() string {
	return f.Inner.Name()
}

func (f *FlakyProvider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	if f.rosterFails.Add(1) <= f.FailCount {
		return domainroster.Snapshot{}, f.Err
	}
	return f.Inner.FetchRoster(ctx)
}

func (f *FlakyProvider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	if f.statsFails.Add(1) <= f.FailCount {
		return nil, f.Err
	}
	return f.Inner.FetchStats(ctx, scope)
}
