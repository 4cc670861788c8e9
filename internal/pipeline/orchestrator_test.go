package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cfb-spotlight-pipeline/internal/artifacts"
	"cfb-spotlight-pipeline/internal/config"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/metrics"
	"cfb-spotlight-pipeline/internal/providers"
	"cfb-spotlight-pipeline/internal/teststubs"
	"cfb-spotlight-pipeline/internal/testutil"
)

func testConfig(dir string) config.Config {
	return config.Config{
		Season:  2025,
		TeamID:  "61",
		DataDir: dir,
	}
}

func newTestOrchestrator(t *testing.T, dir string, cfg config.Config, adapters ...providers.DataProvider) *Orchestrator {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	return New(cfg, adapters,
		artifacts.NewFSStore(dir),
		artifacts.NewWriter(dir, cfg.ForceRebuild),
		logger, metrics.NewRecorder())
}

func fullRecords() map[domainstats.Scope][]domainstats.Record {
	records := make(map[domainstats.Scope][]domainstats.Record)
	for _, scope := range []domainstats.Scope{domainstats.ScopeLastGame, domainstats.ScopeSeason} {
		records[scope] = []domainstats.Record{
			testutil.SampleRecord(1000, "Player 000", domainstats.SideOffense, scope, testutil.OffenseLine(300, 3)),
			testutil.SampleRecord(1001, "Player 001", domainstats.SideOffense, scope, testutil.OffenseLine(120, 1)),
			testutil.SampleRecord(1005, "Player 005", domainstats.SideDefense, scope, testutil.DefenseLine(9, 2)),
			testutil.SampleRecord(1006, "Player 006", domainstats.SideDefense, scope, testutil.DefenseLine(6, 0)),
		}
	}
	return records
}

func healthyStub(name string) *teststubs.StubProvider {
	return &teststubs.StubProvider{
		ProviderName: name,
		Roster:       testutil.SampleRoster(2025, 70),
		Records:      fullRecords(),
	}
}

func TestRunPublishesFromLiveAdapter(t *testing.T) {
	dir := t.TempDir()
	orch := newTestOrchestrator(t, dir, testConfig(dir), healthyStub("primary"))

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != StatePublished {
		t.Fatalf("state = %s, want %s", report.State, StatePublished)
	}
	if report.RosterSource != "primary" {
		t.Fatalf("roster source = %q, want primary", report.RosterSource)
	}

	for _, name := range []string{
		artifacts.RosterFile, artifacts.RosterMetaFile,
		artifacts.FeaturedFile, artifacts.BuildMetaFile,
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("artifact %s missing: %v", name, err)
		}
	}
	for _, bucket := range domainstats.RequiredBuckets() {
		if _, err := os.Stat(filepath.Join(dir, artifacts.SpotlightFile(bucket))); err != nil {
			t.Fatalf("bucket file %s missing: %v", bucket.Slug(), err)
		}
		if report.BucketSources[bucket.Slug()] != "primary" {
			t.Fatalf("bucket %s source = %q, want primary", bucket.Slug(), report.BucketSources[bucket.Slug()])
		}
	}

	meta, err := artifacts.NewFSStore(dir).LoadBuildMeta()
	if err != nil {
		t.Fatalf("load build meta: %v", err)
	}
	if meta.Source != artifacts.SourceLive {
		t.Fatalf("build meta source = %q, want live", meta.Source)
	}
	if meta.Season != 2025 || meta.TeamID != "61" {
		t.Fatalf("build meta identity: %+v", meta)
	}
}

func TestRunFallsThroughToNextAdapterForRoster(t *testing.T) {
	dir := t.TempDir()
	broken := &teststubs.StubProvider{ProviderName: "broken", RosterErr: errors.New("boom")}
	orch := newTestOrchestrator(t, dir, testConfig(dir), broken, healthyStub("backup"))

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RosterSource != "backup" {
		t.Fatalf("roster source = %q, want backup", report.RosterSource)
	}
	if report.Counters[counterAdapterFailures] == 0 {
		t.Fatal("adapter failure not counted")
	}
}

func TestRunRejectsWrongSeasonRoster(t *testing.T) {
	dir := t.TempDir()
	stale := &teststubs.StubProvider{
		ProviderName: "stale",
		Roster:       testutil.SampleRoster(2024, 70),
		Records:      fullRecords(),
	}
	orch := newTestOrchestrator(t, dir, testConfig(dir), stale, healthyStub("fresh"))

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RosterSource != "fresh" {
		t.Fatalf("roster source = %q, want fresh", report.RosterSource)
	}
}

func TestRunStrictSeasonAborts(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.StrictSeason = true
	stale := &teststubs.StubProvider{
		ProviderName: "stale",
		Roster:       testutil.SampleRoster(2024, 70),
	}
	orch := newTestOrchestrator(t, dir, cfg, stale, healthyStub("fresh"))

	report, err := orch.Run(context.Background())
	if err == nil {
		t.Fatal("expected strict season abort")
	}
	if report.State != StateFailed {
		t.Fatalf("state = %s, want %s", report.State, StateFailed)
	}
	if _, statErr := os.Stat(filepath.Join(dir, artifacts.RosterFile)); !os.IsNotExist(statErr) {
		t.Fatal("strict abort must not write artifacts")
	}
}

func TestRunStrictSeasonAbortsOnStaleStats(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.StrictSeason = true
	stale := healthyStub("stale")
	stale.StatsErr = map[domainstats.Scope]error{
		domainstats.ScopeLastGame: &providers.SeasonMismatchError{Provider: "stale", Got: 2024, Want: 2025},
		domainstats.ScopeSeason:   &providers.SeasonMismatchError{Provider: "stale", Got: 2024, Want: 2025},
	}
	orch := newTestOrchestrator(t, dir, cfg, stale)

	report, err := orch.Run(context.Background())
	if err == nil {
		t.Fatal("wrong-season stats must abort a strict run")
	}
	if report.State != StateFailed {
		t.Fatalf("state = %s, want %s", report.State, StateFailed)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("strict abort must not write artifacts, found %d files", len(entries))
	}
}

func TestRunStaleStatsFallThroughWithoutStrictMode(t *testing.T) {
	dir := t.TempDir()
	stale := healthyStub("stale")
	stale.StatsErr = map[domainstats.Scope]error{
		domainstats.ScopeLastGame: &providers.SeasonMismatchError{Provider: "stale", Got: 2024, Want: 2025},
		domainstats.ScopeSeason:   &providers.SeasonMismatchError{Provider: "stale", Got: 2024, Want: 2025},
	}
	orch := newTestOrchestrator(t, dir, testConfig(dir), stale, healthyStub("fresh"))

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != StatePublished {
		t.Fatalf("state = %s, want %s", report.State, StatePublished)
	}
	for _, bucket := range domainstats.RequiredBuckets() {
		if got := report.BucketSources[bucket.Slug()]; got != "fresh" {
			t.Fatalf("bucket %s source = %q, want fresh", bucket.Slug(), got)
		}
	}
	if report.Counters[counterAdapterFailures] == 0 {
		t.Fatal("stale stats must count as adapter failures")
	}
}

func TestRunPerBucketCacheFallback(t *testing.T) {
	dir := t.TempDir()

	// Seed the cache with a fully live run.
	if _, err := newTestOrchestrator(t, dir, testConfig(dir), healthyStub("seed")).Run(context.Background()); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	// Second run: the adapter only serves cumulative season stats.
	seasonOnly := healthyStub("seasononly")
	seasonOnly.StatsErr = map[domainstats.Scope]error{
		domainstats.ScopeLastGame: providers.ErrScopeUnsupported,
	}
	report, err := newTestOrchestrator(t, dir, testConfig(dir), seasonOnly).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != StatePublished {
		t.Fatalf("state = %s, want %s", report.State, StatePublished)
	}
	if got := report.BucketSources["offense-last-game"]; got != artifacts.SourceCache {
		t.Fatalf("offense-last-game source = %q, want cache", got)
	}
	if got := report.BucketSources["offense-season"]; got != "seasononly" {
		t.Fatalf("offense-season source = %q, want seasononly", got)
	}
	if report.Counters[counterBucketsFromCache] != 2 {
		t.Fatalf("bucketsFromCache = %d, want 2", report.Counters[counterBucketsFromCache])
	}

	meta, err := artifacts.NewFSStore(dir).LoadBuildMeta()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Source != artifacts.SourceMixed {
		t.Fatalf("build meta source = %q, want mixed", meta.Source)
	}

	// Cached buckets keep their entries rather than going empty.
	entries, err := artifacts.NewFSStore(dir).LoadSpotlight(domainstats.Bucket{
		Side: domainstats.SideOffense, Scope: domainstats.ScopeLastGame,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("cached bucket published empty")
	}
}

func TestRunIgnoresWrongSeasonCacheForBuckets(t *testing.T) {
	dir := t.TempDir()

	// Seed a 2024 cache.
	cfg2024 := testConfig(dir)
	cfg2024.Season = 2024
	seed := &teststubs.StubProvider{
		ProviderName: "seed",
		Roster:       testutil.SampleRoster(2024, 70),
		Records:      fullRecords(),
	}
	if _, err := newTestOrchestrator(t, dir, cfg2024, seed).Run(context.Background()); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	// 2025 run with no last-game stats must not borrow 2024 buckets.
	seasonOnly := healthyStub("seasononly")
	seasonOnly.StatsErr = map[domainstats.Scope]error{
		domainstats.ScopeLastGame: providers.ErrScopeUnsupported,
	}
	report, err := newTestOrchestrator(t, dir, testConfig(dir), seasonOnly).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := report.BucketSources["offense-last-game"]; got != "none" {
		t.Fatalf("offense-last-game source = %q, want none", got)
	}
	if report.Counters[counterBucketsEmpty] != 2 {
		t.Fatalf("bucketsEmpty = %d, want 2", report.Counters[counterBucketsEmpty])
	}
}

func TestRunEmptyBucketPublishesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	offenseOnly := healthyStub("offenseonly")
	for scope := range offenseOnly.Records {
		records := offenseOnly.Records[scope]
		kept := records[:0]
		for _, r := range records {
			if r.Side == domainstats.SideOffense {
				kept = append(kept, r)
			}
		}
		offenseOnly.Records[scope] = kept
	}

	report, err := newTestOrchestrator(t, dir, testConfig(dir), offenseOnly).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != StatePublished {
		t.Fatalf("state = %s", report.State)
	}

	data, err := os.ReadFile(filepath.Join(dir, "spotlight-defense-season.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("empty bucket file = %q, want []", data)
	}
}

func TestRunRestoresFromCacheWhenAllAdaptersFail(t *testing.T) {
	dir := t.TempDir()
	if _, err := newTestOrchestrator(t, dir, testConfig(dir), healthyStub("seed")).Run(context.Background()); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	broken := &teststubs.StubProvider{ProviderName: "broken", RosterErr: errors.New("boom")}
	report, err := newTestOrchestrator(t, dir, testConfig(dir), broken).Run(context.Background())
	if err != nil {
		t.Fatalf("cache restore must succeed: %v", err)
	}
	if report.State != StateCacheRestored {
		t.Fatalf("state = %s, want %s", report.State, StateCacheRestored)
	}
	if report.RosterSource != artifacts.SourceCache {
		t.Fatalf("roster source = %q, want cache", report.RosterSource)
	}

	meta, err := artifacts.NewFSStore(dir).LoadBuildMeta()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Source != artifacts.SourceCache {
		t.Fatalf("build meta source = %q, want cache", meta.Source)
	}
}

func TestRunFailsWithoutAdaptersOrCache(t *testing.T) {
	dir := t.TempDir()
	broken := &teststubs.StubProvider{ProviderName: "broken", RosterErr: errors.New("boom")}

	report, err := newTestOrchestrator(t, dir, testConfig(dir), broken).Run(context.Background())
	if err == nil {
		t.Fatal("expected failure with no cache")
	}
	if report.State != StateFailed {
		t.Fatalf("state = %s, want %s", report.State, StateFailed)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("failed run must not write artifacts, found %d files", len(entries))
	}
}

func TestRunFailsOnWrongSeasonCache(t *testing.T) {
	dir := t.TempDir()
	cfg2024 := testConfig(dir)
	cfg2024.Season = 2024
	seed := &teststubs.StubProvider{
		ProviderName: "seed",
		Roster:       testutil.SampleRoster(2024, 70),
		Records:      fullRecords(),
	}
	if _, err := newTestOrchestrator(t, dir, cfg2024, seed).Run(context.Background()); err != nil {
		t.Fatalf("seed run: %v", err)
	}
	before := snapshotFiles(t, dir)

	broken := &teststubs.StubProvider{ProviderName: "broken", RosterErr: errors.New("boom")}
	report, err := newTestOrchestrator(t, dir, testConfig(dir), broken).Run(context.Background())
	if err == nil {
		t.Fatal("stale cache must not satisfy a new season")
	}
	if report.State != StateFailed {
		t.Fatalf("state = %s, want %s", report.State, StateFailed)
	}

	// A failed run leaves the previous generation byte for byte intact.
	after := snapshotFiles(t, dir)
	if len(after) != len(before) {
		t.Fatalf("file count changed: %d before, %d after", len(before), len(after))
	}
	for name, data := range before {
		if !bytes.Equal(after[name], data) {
			t.Fatalf("failed run altered %s", name)
		}
	}
}

// snapshotFiles reads every file in dir so tests can assert nothing changed.
func snapshotFiles(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	files := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatal(err)
		}
		files[entry.Name()] = data
	}
	return files
}

func TestRunRejectsUndersizedRoster(t *testing.T) {
	dir := t.TempDir()
	thin := &teststubs.StubProvider{
		ProviderName: "thin",
		Roster:       testutil.SampleRoster(2025, 10),
	}
	orch := newTestOrchestrator(t, dir, testConfig(dir), thin, healthyStub("full"))

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RosterSource != "full" {
		t.Fatalf("roster source = %q, want full", report.RosterSource)
	}
}

func TestRunFeaturedIsGlobalMax(t *testing.T) {
	dir := t.TempDir()
	if _, err := newTestOrchestrator(t, dir, testConfig(dir), healthyStub("primary")).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	featured, err := artifacts.NewFSStore(dir).LoadFeatured()
	if err != nil {
		t.Fatal(err)
	}
	if featured == nil {
		t.Fatal("expected a featured entry")
	}
	// Player 000's 300yd/3TD line (24) beats every defensive line in the fixture.
	if featured.Name != "Player 000" {
		t.Fatalf("featured = %q, want Player 000", featured.Name)
	}
}
