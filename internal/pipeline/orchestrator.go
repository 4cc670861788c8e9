// Package pipeline drives one build: adapters are tried in priority order,
// their output is validated, missing buckets fall back to the on-disk cache,
// and the surviving dataset is published atomically.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cfb-spotlight-pipeline/internal/artifacts"
	"cfb-spotlight-pipeline/internal/config"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/gate"
	"cfb-spotlight-pipeline/internal/logging"
	"cfb-spotlight-pipeline/internal/metrics"
	"cfb-spotlight-pipeline/internal/providers"
)

// State labels the phase a run is in. Published, CacheRestored and Failed are
// terminal; only Failed maps to a non-zero exit.
type State string

const (
	StateTrying        State = "trying"
	StateValidating    State = "validating"
	StatePublished     State = "published"
	StateCacheRestored State = "cache_restored"
	StateFailed        State = "failed"
)

// Pipeline-level counters published in build metadata next to the drop
// reasons from the metrics recorder.
const (
	counterAdapterFailures  = "adapterFailures"
	counterBucketsFromCache = "bucketsFromCache"
	counterBucketsEmpty     = "bucketsEmpty"
)

// Report summarizes one run: the terminal state, which source produced the
// roster and each bucket, and every named counter. It feeds the build-metadata
// artifact and the process exit code.
type Report struct {
	State         State
	RosterSource  string
	BucketSources map[string]string
	Counters      map[string]int
}

// Orchestrator owns the run's explicit state: configuration, the adapter
// chain, the artifact store and writer, and the metrics recorder. Nothing is
// kept in package globals so tests can run pipelines side by side.
type Orchestrator struct {
	cfg      config.Config
	adapters []providers.DataProvider
	store    *artifacts.FSStore
	writer   *artifacts.Writer
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// New constructs an orchestrator over the given adapter chain.
func New(cfg config.Config, adapters []providers.DataProvider, store *artifacts.FSStore, writer *artifacts.Writer, logger *slog.Logger, recorder *metrics.Recorder) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		adapters: adapters,
		store:    store,
		writer:   writer,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// Run executes one full build. It returns an error only for terminal
// failures: a strict-mode season violation, an unusable cache when every
// adapter failed, or a write error during publication. In the Failed state no
// artifact is touched, so the previous dataset keeps serving.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	start := o.now()
	report := Report{
		State:         StateFailed,
		BucketSources: make(map[string]string),
		Counters:      make(map[string]int),
	}

	g, rosterSource, err := o.selectRoster(ctx, &report)
	if err != nil {
		o.finish(&report, start, err)
		return report, err
	}
	if g == nil {
		err := o.restoreFromCache(&report)
		o.finish(&report, start, err)
		return report, err
	}
	report.RosterSource = rosterSource

	buckets, err := o.collectBuckets(ctx, g, &report)
	if err != nil {
		o.finish(&report, start, err)
		return report, err
	}
	o.fillFromCache(buckets, &report)

	if err := o.publish(g, buckets, &report); err != nil {
		report.State = StateFailed
		o.finish(&report, start, err)
		return report, err
	}

	report.State = StatePublished
	o.finish(&report, start, nil)
	return report, nil
}

// selectRoster walks the adapter chain until one returns a roster that passes
// the season lock and size/coverage bounds. A nil gate with a nil error means
// every adapter was exhausted.
func (o *Orchestrator) selectRoster(ctx context.Context, report *Report) (*gate.Gate, string, error) {
	for _, adapter := range o.adapters {
		logging.Info(o.logger, "fetching roster",
			logging.FieldState, string(StateTrying),
			logging.FieldProvider, adapter.Name())

		snap, err := adapter.FetchRoster(ctx)
		if err == nil {
			logging.Info(o.logger, "validating roster",
				logging.FieldState, string(StateValidating),
				logging.FieldProvider, adapter.Name(),
				logging.FieldCount, len(snap.Players))
			err = gate.CheckSeason(snap, o.cfg.Season)
		}
		if err != nil {
			if _, mismatch := providers.AsSeasonMismatchError(err); mismatch && o.cfg.StrictSeason {
				return nil, "", fmt.Errorf("season lock: %w", err)
			}
			report.Counters[counterAdapterFailures]++
			logging.Warn(o.logger, "roster rejected",
				logging.FieldProvider, adapter.Name(), "error", err)
			continue
		}
		if err := gate.CheckBounds(snap); err != nil {
			report.Counters[counterAdapterFailures]++
			logging.Warn(o.logger, "roster rejected",
				logging.FieldProvider, adapter.Name(), "error", err)
			continue
		}
		return gate.New(snap), adapter.Name(), nil
	}
	return nil, "", nil
}

// collectBuckets fills the four required buckets from live adapters. Stats are
// fetched once per (adapter, scope) pair because a single fetch covers both
// sides; each bucket keeps the first adapter that yields a non-empty result.
// The season lock applies here too: a wrong-season stats payload under strict
// mode aborts the run instead of being skipped.
func (o *Orchestrator) collectBuckets(ctx context.Context, g *gate.Gate, report *Report) (map[domainstats.Bucket][]domainstats.Entry, error) {
	blacklist := blacklistSet(o.cfg.Blacklist)
	buckets := make(map[domainstats.Bucket][]domainstats.Entry, len(domainstats.RequiredBuckets()))

	for _, scope := range []domainstats.Scope{domainstats.ScopeLastGame, domainstats.ScopeSeason} {
		for _, adapter := range o.adapters {
			if scopeFilled(buckets, scope) {
				break
			}

			records, err := adapter.FetchStats(ctx, scope)
			if err != nil {
				if _, mismatch := providers.AsSeasonMismatchError(err); mismatch && o.cfg.StrictSeason {
					return nil, fmt.Errorf("season lock: %w", err)
				}
				if !providers.IsScopeUnsupported(err) {
					report.Counters[counterAdapterFailures]++
				}
				logging.Warn(o.logger, "stats fetch skipped",
					logging.FieldProvider, adapter.Name(),
					logging.FieldScope, string(scope), "error", err)
				continue
			}

			for _, side := range []domainstats.Side{domainstats.SideOffense, domainstats.SideDefense} {
				bucket := domainstats.Bucket{Side: side, Scope: scope}
				if len(buckets[bucket]) > 0 {
					continue
				}
				entries := BuildSpotlight(bucket, records, g, blacklist, o.recorder)
				if len(entries) == 0 {
					continue
				}
				buckets[bucket] = entries
				report.BucketSources[bucket.Slug()] = adapter.Name()
				logging.Info(o.logger, "bucket filled",
					logging.FieldBucket, bucket.Slug(),
					logging.FieldSource, adapter.Name(),
					logging.FieldCount, len(entries))
			}
		}
	}
	return buckets, nil
}

// fillFromCache backfills buckets no adapter could serve from the previous
// run's files, but only when the cached dataset targets the same season.
// Buckets with no live and no cache data are published as empty arrays.
func (o *Orchestrator) fillFromCache(buckets map[domainstats.Bucket][]domainstats.Entry, report *Report) {
	cacheUsable := o.cacheMatchesSeason()

	for _, bucket := range domainstats.RequiredBuckets() {
		if len(buckets[bucket]) > 0 {
			continue
		}
		if cacheUsable {
			if entries, err := o.store.LoadSpotlight(bucket); err == nil && len(entries) > 0 {
				buckets[bucket] = entries
				report.BucketSources[bucket.Slug()] = artifacts.SourceCache
				report.Counters[counterBucketsFromCache]++
				logging.Info(o.logger, "bucket restored from cache",
					logging.FieldBucket, bucket.Slug())
				continue
			}
		}
		report.BucketSources[bucket.Slug()] = "none"
		report.Counters[counterBucketsEmpty]++
		logging.Warn(o.logger, "bucket empty", logging.FieldBucket, bucket.Slug())
	}
}

// restoreFromCache is the last line of defense when no adapter produced a
// usable roster: the previous run's files are republished untouched, provided
// they exist and target the right season.
func (o *Orchestrator) restoreFromCache(report *Report) error {
	if !o.store.HasCache() {
		return fmt.Errorf("no adapter produced a roster and no cached dataset exists")
	}
	snap, err := o.store.LoadRoster()
	if err != nil {
		return fmt.Errorf("cached roster unreadable: %w", err)
	}
	if err := gate.CheckSeason(snap, o.cfg.Season); err != nil {
		return fmt.Errorf("cached dataset unusable: %w", err)
	}

	report.RosterSource = artifacts.SourceCache
	buckets := make(map[domainstats.Bucket][]domainstats.Entry)
	for _, bucket := range domainstats.RequiredBuckets() {
		entries, err := o.store.LoadSpotlight(bucket)
		if err != nil {
			entries = nil
		}
		buckets[bucket] = entries
		report.BucketSources[bucket.Slug()] = artifacts.SourceCache
		report.Counters[counterBucketsFromCache]++
	}

	if err := o.publish(gate.New(snap), buckets, report); err != nil {
		return err
	}
	report.State = StateCacheRestored
	return nil
}

// publish writes every artifact: roster, the four buckets, the featured pick
// and build metadata. The build-metadata file is written last so a meta file
// on disk always describes complete artifacts.
func (o *Orchestrator) publish(g *gate.Gate, buckets map[domainstats.Bucket][]domainstats.Entry, report *Report) error {
	if err := o.writer.WriteRoster(g.Snapshot()); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	for _, bucket := range domainstats.RequiredBuckets() {
		if err := o.writer.WriteSpotlight(bucket, buckets[bucket]); err != nil {
			return fmt.Errorf("write %s: %w", bucket.Slug(), err)
		}
	}
	if err := o.writer.WriteFeatured(PickFeatured(buckets)); err != nil {
		return fmt.Errorf("write featured: %w", err)
	}
	return o.writer.WriteBuildMeta(o.buildMeta(report))
}

func (o *Orchestrator) buildMeta(report *Report) artifacts.BuildMeta {
	counters := o.recorder.Drops()
	for name, count := range report.Counters {
		counters[name] = count
	}
	return artifacts.BuildMeta{
		GeneratedAt:  o.now().UTC(),
		Season:       o.cfg.Season,
		TeamID:       o.cfg.TeamID,
		Source:       overallSource(report),
		RosterSource: report.RosterSource,
		Buckets:      report.BucketSources,
		Counters:     counters,
	}
}

// overallSource collapses per-stage provenance into one tag: live when every
// stage came from an adapter, cache when everything was restored, mixed
// otherwise.
func overallSource(report *Report) string {
	live, cached := 0, 0
	if report.RosterSource == artifacts.SourceCache {
		cached++
	} else if report.RosterSource != "" {
		live++
	}
	for _, source := range report.BucketSources {
		switch source {
		case artifacts.SourceCache:
			cached++
		case "none":
		default:
			live++
		}
	}
	switch {
	case cached == 0:
		return artifacts.SourceLive
	case live == 0:
		return artifacts.SourceCache
	default:
		return artifacts.SourceMixed
	}
}

func (o *Orchestrator) cacheMatchesSeason() bool {
	if !o.store.HasCache() {
		return false
	}
	meta, err := o.store.LoadRosterMeta()
	return err == nil && meta.Season == o.cfg.Season
}

func (o *Orchestrator) finish(report *Report, start time.Time, err error) {
	duration := o.now().Sub(start)
	o.recorder.RecordRunOutcome(string(report.State), duration)
	if err != nil {
		logging.Error(o.logger, "pipeline run failed", err,
			logging.FieldState, string(report.State),
			logging.FieldDurationMS, duration.Milliseconds())
		return
	}
	logging.Info(o.logger, "pipeline run finished",
		logging.FieldState, string(report.State),
		logging.FieldSource, overallSource(report),
		logging.FieldDurationMS, duration.Milliseconds())
}

func scopeFilled(buckets map[domainstats.Bucket][]domainstats.Entry, scope domainstats.Scope) bool {
	for _, side := range []domainstats.Side{domainstats.SideOffense, domainstats.SideDefense} {
		if len(buckets[domainstats.Bucket{Side: side, Scope: scope}]) == 0 {
			return false
		}
	}
	return true
}

func blacklistSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if key := gate.NormalizeName(name); key != "" {
			set[key] = true
		}
	}
	return set
}
