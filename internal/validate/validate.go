// Package validate checks a published dataset after the fact: the same
// invariants the pipeline enforces while building, re-verified from the files
// on disk so a bad deploy is caught before the site serves it.
package validate

import (
	"fmt"
	"log/slog"

	"cfb-spotlight-pipeline/internal/artifacts"
	"cfb-spotlight-pipeline/internal/config"
	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/gate"
	"cfb-spotlight-pipeline/internal/logging"
)

// MaxUnresolvedRate bounds the share of a spotlight file's entries that may
// fail to cross-reference the roster before that file is rejected.
const MaxUnresolvedRate = 0.05

// Issue is one failed check, attributed to the artifact file it concerns.
type Issue struct {
	File   string
	Check  string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.File, i.Check, i.Detail)
}

// Result collects every issue found in one validation pass.
type Result struct {
	Issues []Issue
}

// OK reports whether the dataset passed every check.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// Validator re-checks a published dataset against the target season and team.
type Validator struct {
	store     *artifacts.FSStore
	season    int
	teamID    string
	blacklist map[string]bool
	logger    *slog.Logger
}

// New constructs a validator over the artifacts in cfg.DataDir.
func New(cfg config.Config, store *artifacts.FSStore, logger *slog.Logger) *Validator {
	blacklist := make(map[string]bool, len(cfg.Blacklist))
	for _, name := range cfg.Blacklist {
		if key := gate.NormalizeName(name); key != "" {
			blacklist[key] = true
		}
	}
	return &Validator{
		store:     store,
		season:    cfg.Season,
		teamID:    cfg.TeamID,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Run validates the full dataset and returns every issue found. The returned
// error is reserved for an unreadable roster, without which no other check
// can run.
func (v *Validator) Run() (Result, error) {
	var result Result

	snapshot, err := v.store.LoadRoster()
	if err != nil {
		return result, fmt.Errorf("load roster: %w", err)
	}
	v.checkRoster(&result, snapshot)

	g := gate.New(snapshot)
	for _, bucket := range domainstats.RequiredBuckets() {
		entries, err := v.store.LoadSpotlight(bucket)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				File:   artifacts.SpotlightFile(bucket),
				Check:  "readable",
				Detail: err.Error(),
			})
			continue
		}
		v.checkBucket(&result, bucket, entries, g)
	}

	v.checkFeatured(&result, g)
	v.checkBuildMeta(&result)

	logging.Info(v.logger, "validation finished",
		logging.FieldCount, len(result.Issues),
		logging.FieldSeason, v.season,
		logging.FieldTeam, v.teamID)
	return result, nil
}

func (v *Validator) checkRoster(result *Result, snapshot domainroster.Snapshot) {
	if snapshot.Season != v.season {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.RosterMetaFile,
			Check:  "season",
			Detail: fmt.Sprintf("got %d, want %d", snapshot.Season, v.season),
		})
	}
	if snapshot.TeamID != v.teamID {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.RosterMetaFile,
			Check:  "team",
			Detail: fmt.Sprintf("got %q, want %q", snapshot.TeamID, v.teamID),
		})
	}
	if err := gate.CheckBounds(snapshot); err != nil {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.RosterFile,
			Check:  "bounds",
			Detail: err.Error(),
		})
	}
	for _, p := range snapshot.Players {
		if v.blacklist[gate.NormalizeName(p.Name)] {
			result.Issues = append(result.Issues, Issue{
				File:   artifacts.RosterFile,
				Check:  "blacklist",
				Detail: fmt.Sprintf("player %q is blacklisted", p.Name),
			})
		}
	}
}

// checkBucket validates one spotlight file, including the per-file cap on
// entries that fail to resolve against the roster.
func (v *Validator) checkBucket(result *Result, bucket domainstats.Bucket, entries []domainstats.Entry, g *gate.Gate) {
	file := artifacts.SpotlightFile(bucket)

	if len(entries) > domainstats.SpotlightSize {
		result.Issues = append(result.Issues, Issue{
			File:   file,
			Check:  "size",
			Detail: fmt.Sprintf("%d entries, max %d", len(entries), domainstats.SpotlightSize),
		})
	}

	unresolved := 0
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		ref := domainstats.PlayerRef{ID: entry.ID, Name: entry.Name}
		if !g.IsMember(ref) {
			unresolved++
		}

		key := entryKey(entry)
		if seen[key] {
			result.Issues = append(result.Issues, Issue{
				File:   file,
				Check:  "uniqueness",
				Detail: fmt.Sprintf("duplicate entry %q", entry.Name),
			})
		}
		seen[key] = true

		if i > 0 && entries[i-1].Score < entry.Score {
			result.Issues = append(result.Issues, Issue{
				File:   file,
				Check:  "ordering",
				Detail: fmt.Sprintf("entry %d outranks entry %d", i, i-1),
			})
		}
		if entry.Side != bucket.Side || entry.Scope != bucket.Scope {
			result.Issues = append(result.Issues, Issue{
				File:   file,
				Check:  "bucket identity",
				Detail: fmt.Sprintf("entry %q tagged %s/%s", entry.Name, entry.Side, entry.Scope),
			})
		}
		if v.blacklist[gate.NormalizeName(entry.Name)] {
			result.Issues = append(result.Issues, Issue{
				File:   file,
				Check:  "blacklist",
				Detail: fmt.Sprintf("entry %q is blacklisted", entry.Name),
			})
		}
	}

	if len(entries) > 0 {
		if rate := float64(unresolved) / float64(len(entries)); rate > MaxUnresolvedRate {
			result.Issues = append(result.Issues, Issue{
				File:   file,
				Check:  "roster cross-reference",
				Detail: fmt.Sprintf("%d of %d entries unresolved (%.0f%% > %.0f%%)", unresolved, len(entries), rate*100, MaxUnresolvedRate*100),
			})
		}
	}
}

func (v *Validator) checkFeatured(result *Result, g *gate.Gate) {
	entry, err := v.store.LoadFeatured()
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.FeaturedFile,
			Check:  "readable",
			Detail: err.Error(),
		})
		return
	}
	if entry == nil {
		return
	}
	if !g.IsMember(domainstats.PlayerRef{ID: entry.ID, Name: entry.Name}) {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.FeaturedFile,
			Check:  "roster cross-reference",
			Detail: fmt.Sprintf("featured %q not on roster", entry.Name),
		})
	}
	if v.blacklist[gate.NormalizeName(entry.Name)] {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.FeaturedFile,
			Check:  "blacklist",
			Detail: fmt.Sprintf("featured %q is blacklisted", entry.Name),
		})
	}
}

func (v *Validator) checkBuildMeta(result *Result) {
	meta, err := v.store.LoadBuildMeta()
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.BuildMetaFile,
			Check:  "readable",
			Detail: err.Error(),
		})
		return
	}
	if meta.Season != v.season {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.BuildMetaFile,
			Check:  "season",
			Detail: fmt.Sprintf("got %d, want %d", meta.Season, v.season),
		})
	}
	if meta.TeamID != v.teamID {
		result.Issues = append(result.Issues, Issue{
			File:   artifacts.BuildMetaFile,
			Check:  "team",
			Detail: fmt.Sprintf("got %q, want %q", meta.TeamID, v.teamID),
		})
	}
	for _, bucket := range domainstats.RequiredBuckets() {
		if _, ok := meta.Buckets[bucket.Slug()]; !ok {
			result.Issues = append(result.Issues, Issue{
				File:   artifacts.BuildMetaFile,
				Check:  "bucket provenance",
				Detail: fmt.Sprintf("no source recorded for %s", bucket.Slug()),
			})
		}
	}
}

func entryKey(e domainstats.Entry) string {
	if e.ID != nil {
		return fmt.Sprintf("id:%d", *e.ID)
	}
	return "name:" + gate.NormalizeName(e.Name)
}
