package stats

import "strings"

// Side partitions players into the two ranking groups.
type Side string

const (
	SideOffense Side = "offense"
	SideDefense Side = "defense"
)

// Scope selects the ranking window.
type Scope string

const (
	ScopeLastGame Scope = "last_game"
	ScopeSeason   Scope = "season"
)

// SpotlightSize caps every published spotlight array.
const SpotlightSize = 3

// PlayerRef is a weak reference into the roster snapshot: numeric id when the
// upstream row carries one, otherwise name only.
type PlayerRef struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Statline maps canonical short stat codes to display strings.
type Statline map[string]string

// Clone returns an independent copy of the statline.
func (l Statline) Clone() Statline {
	out := make(Statline, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Record is one player's normalized performance for a (side, scope) pair.
type Record struct {
	Player   PlayerRef `json:"player"`
	Side     Side      `json:"side"`
	Scope    Scope     `json:"scope"`
	Statline Statline  `json:"statline"`
	Score    float64   `json:"score"`
	Source   string    `json:"source"`
}

// Entry is the published spotlight shape: a record joined against its roster
// identity. The front end reads these fields directly.
type Entry struct {
	ID          *int     `json:"id,omitempty"`
	Name        string   `json:"name"`
	Position    string   `json:"position,omitempty"`
	HeadshotURL string   `json:"headshotUrl,omitempty"`
	ProfileURL  string   `json:"profileUrl,omitempty"`
	Side        Side     `json:"side"`
	Scope       Scope    `json:"scope"`
	Statline    Statline `json:"statline"`
	Score       float64  `json:"score"`
	Source      string   `json:"source,omitempty"`
}

// Bucket identifies one required (side, scope) spotlight output.
type Bucket struct {
	Side  Side
	Scope Scope
}

// Slug returns the bucket's file-name-safe identifier, e.g. "offense-last-game".
func (b Bucket) Slug() string {
	return string(b.Side) + "-" + strings.ReplaceAll(string(b.Scope), "_", "-")
}

// RequiredBuckets lists every (side, scope) pair the pipeline must publish.
func RequiredBuckets() []Bucket {
	return []Bucket{
		{Side: SideOffense, Scope: ScopeLastGame},
		{Side: SideOffense, Scope: ScopeSeason},
		{Side: SideDefense, Scope: ScopeLastGame},
		{Side: SideDefense, Scope: ScopeSeason},
	}
}

var positionSides = map[string]Side{
	"QB": SideOffense, "RB": SideOffense, "FB": SideOffense, "WR": SideOffense,
	"TE": SideOffense, "OL": SideOffense, "OT": SideOffense, "OG": SideOffense,
	"C": SideOffense, "HB": SideOffense, "TB": SideOffense,
	"DL": SideDefense, "DE": SideDefense, "DT": SideDefense, "NT": SideDefense,
	"EDGE": SideDefense, "LB": SideDefense, "ILB": SideDefense, "OLB": SideDefense,
	"MLB": SideDefense, "DB": SideDefense, "CB": SideDefense, "S": SideDefense,
	"FS": SideDefense, "SS": SideDefense, "NB": SideDefense,
}

// SideForPosition maps a roster position code to its ranking side. Specialists
// (kickers, punters, long snappers) belong to neither and report ok=false.
func SideForPosition(position string) (Side, bool) {
	side, ok := positionSides[strings.ToUpper(strings.TrimSpace(position))]
	return side, ok
}
