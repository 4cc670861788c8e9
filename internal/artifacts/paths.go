package artifacts

import (
	"path/filepath"

	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Published file names. The static front end reads these paths directly, so
// they are part of the external contract and never change shape mid-season.
const (
	RosterFile     = "roster.json"
	RosterMetaFile = "roster-meta.json"
	FeaturedFile   = "spotlight-featured.json"
	BuildMetaFile  = "build-meta.json"
)

// SpotlightFile returns the file name for one (side, scope) bucket,
// e.g. spotlight-offense-last-game.json.
func SpotlightFile(bucket domainstats.Bucket) string {
	return "spotlight-" + bucket.Slug() + ".json"
}

// RosterPath returns the absolute roster path under basePath.
func RosterPath(basePath string) string {
	return filepath.Join(basePath, RosterFile)
}

// RosterMetaPath returns the absolute roster metadata path under basePath.
func RosterMetaPath(basePath string) string {
	return filepath.Join(basePath, RosterMetaFile)
}

// SpotlightPath returns the absolute bucket path under basePath.
func SpotlightPath(basePath string, bucket domainstats.Bucket) string {
	return filepath.Join(basePath, SpotlightFile(bucket))
}

// FeaturedPath returns the absolute featured-pick path under basePath.
func FeaturedPath(basePath string) string {
	return filepath.Join(basePath, FeaturedFile)
}

// BuildMetaPath returns the absolute build metadata path under basePath.
func BuildMetaPath(basePath string) string {
	return filepath.Join(basePath, BuildMetaFile)
}
