package artifacts

import "time"

// Source tags recorded in build metadata.
const (
	SourceLive  = "live"
	SourceCache = "cache"
	SourceMixed = "mixed"
)

// BuildMeta records how a run produced the published files: which stage each
// bucket came from and every named drop/skip counter. Operators and the
// dataset validator read this instead of reverse-engineering logs.
type BuildMeta struct {
	GeneratedAt  time.Time         `json:"generatedAt"`
	Season       int               `json:"season"`
	TeamID       string            `json:"teamId"`
	Source       string            `json:"source"`
	RosterSource string            `json:"rosterSource"`
	Buckets      map[string]string `json:"buckets"`
	Counters     map[string]int    `json:"counters"`
}
