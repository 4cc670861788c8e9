// Package gate restricts every published stat to currently-rostered,
// correct-season players. It is the pipeline's membership ground truth.
package gate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/providers"
)

// Bounds violations keep a snapshot out of the pipeline entirely; a rejected
// snapshot is treated as absent, never partially accepted.
var (
	ErrRosterTooSmall = errors.New("roster below minimum size")
	ErrRosterTooLarge = errors.New("roster above maximum size")
	ErrLowIDCoverage  = errors.New("roster id coverage below threshold")
)

// Gate indexes a roster snapshot for membership resolution: numeric id first,
// then case-insensitive whitespace-normalized name.
type Gate struct {
	mu       sync.RWMutex
	snapshot domainroster.Snapshot
	byID     map[int]domainroster.Player
	byName   map[string]domainroster.Player
}

// New builds a Gate over the given snapshot.
func New(snapshot domainroster.Snapshot) *Gate {
	g := &Gate{}
	g.Set(snapshot)
	return g
}

// Set replaces the indexed snapshot wholesale.
func (g *Gate) Set(snapshot domainroster.Snapshot) {
	byID := make(map[int]domainroster.Player, len(snapshot.Players))
	byName := make(map[string]domainroster.Player, len(snapshot.Players))
	for _, p := range snapshot.Players {
		if p.UpstreamID != nil {
			byID[*p.UpstreamID] = p
		}
		if key := NormalizeName(p.Name); key != "" {
			if _, taken := byName[key]; !taken {
				byName[key] = p
			}
		}
	}

	g.mu.Lock()
	g.snapshot = snapshot
	g.byID = byID
	g.byName = byName
	g.mu.Unlock()
}

// Snapshot returns the currently indexed roster snapshot.
func (g *Gate) Snapshot() domainroster.Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot
}

// Resolve looks a player reference up against the roster: by numeric id when
// the ref carries one, otherwise by normalized name.
func (g *Gate) Resolve(ref domainstats.PlayerRef) (domainroster.Player, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if ref.ID != nil {
		if p, ok := g.byID[*ref.ID]; ok {
			return p, true
		}
	}
	if key := NormalizeName(ref.Name); key != "" {
		if p, ok := g.byName[key]; ok {
			return p, true
		}
	}
	return domainroster.Player{}, false
}

// IsMember reports whether the reference resolves to a rostered player.
func (g *Gate) IsMember(ref domainstats.PlayerRef) bool {
	_, ok := g.Resolve(ref)
	return ok
}

// NormalizeName lowercases a player name and collapses internal whitespace,
// producing the best-effort dedup key used when no numeric id exists.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// CheckSeason enforces the season identity lock: a snapshot for any other
// season never reaches downstream stages.
func CheckSeason(snapshot domainroster.Snapshot, targetSeason int) error {
	if snapshot.Season != targetSeason {
		return &providers.SeasonMismatchError{
			Provider: snapshot.Source,
			Got:      snapshot.Season,
			Want:     targetSeason,
		}
	}
	return nil
}

// CheckBounds enforces the roster size and id-coverage invariants.
func CheckBounds(snapshot domainroster.Snapshot) error {
	n := len(snapshot.Players)
	if n < domainroster.MinPlayers {
		return fmt.Errorf("%w: %d < %d", ErrRosterTooSmall, n, domainroster.MinPlayers)
	}
	if n > domainroster.MaxPlayers {
		return fmt.Errorf("%w: %d > %d", ErrRosterTooLarge, n, domainroster.MaxPlayers)
	}
	if coverage := snapshot.IDCoverage(); coverage < domainroster.MinIDCoverage {
		return fmt.Errorf("%w: %.0f%% < %.0f%%", ErrLowIDCoverage, coverage*100, domainroster.MinIDCoverage*100)
	}
	return nil
}
