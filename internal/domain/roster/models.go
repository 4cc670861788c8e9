package roster

import "time"

// Snapshot size bounds and identity-coverage floor for an accepted roster.
const (
	MinPlayers    = 65
	MaxPlayers    = 150
	MinIDCoverage = 0.9
)

// Player is the canonical roster identity record. UpstreamID may be nil for
// walk-ons that the upstream has not assigned a numeric identifier yet; those
// players are resolvable by name only.
type Player struct {
	UpstreamID  *int   `json:"id,omitempty"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	Jersey      string `json:"jersey,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      int    `json:"weight,omitempty"`
	Class       string `json:"class,omitempty"`
	HeadshotURL string `json:"headshotUrl,omitempty"`
	ProfileURL  string `json:"profileUrl,omitempty"`
}

// HasID reports whether the player carries a resolvable numeric identifier.
func (p Player) HasID() bool {
	return p.UpstreamID != nil
}

// Meta is the roster metadata published alongside the player list.
type Meta struct {
	TeamID      string    `json:"teamId"`
	Season      int       `json:"season"`
	GeneratedAt time.Time `json:"generatedAt"`
	Source      string    `json:"source"`
}

// Snapshot is the season's roster ground truth. It is replaced wholesale by
// each successful refresh and read-only to every downstream stage.
type Snapshot struct {
	TeamID      string    `json:"teamId"`
	Season      int       `json:"season"`
	Players     []Player  `json:"players"`
	GeneratedAt time.Time `json:"generatedAt"`
	Source      string    `json:"source"`
}

// Meta extracts the metadata view of the snapshot.
func (s Snapshot) Meta() Meta {
	return Meta{
		TeamID:      s.TeamID,
		Season:      s.Season,
		GeneratedAt: s.GeneratedAt,
		Source:      s.Source,
	}
}

// IDCoverage returns the fraction of players carrying a numeric upstream id.
func (s Snapshot) IDCoverage() float64 {
	if len(s.Players) == 0 {
		return 0
	}
	withID := 0
	for _, p := range s.Players {
		if p.HasID() {
			withID++
		}
	}
	return float64(withID) / float64(len(s.Players))
}

// WithinBounds reports whether the snapshot satisfies the roster size and
// id-coverage invariants.
func (s Snapshot) WithinBounds() bool {
	n := len(s.Players)
	return n >= MinPlayers && n <= MaxPlayers && s.IDCoverage() >= MinIDCoverage
}
