package config

import (
	"strings"
	"time"
)

// Config holds runtime configuration for one pipeline run.
type Config struct {
	Season          int
	TeamID          string
	DataDir         string
	StrictSeason    bool
	ForceRebuild    bool
	AdapterPriority []string
	Blacklist       []string
	HTTPTimeout     Duration
	Retry           RetryConfig
	SportsData      SportsDataConfig
	ESPN            ESPNConfig
	Mirror          MirrorConfig
	Metrics         MetricsConfig
}

// RetryConfig tunes the per-adapter retry wrapper.
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Season:          intEnvOrDefault(envSeason, defaultSeason(time.Now())),
		TeamID:          envOrDefault(envTeamID, defaultTeamID),
		DataDir:         envOrDefault(envDataDir, defaultDataDir),
		StrictSeason:    boolEnvOrDefault(envStrictSeason, false),
		ForceRebuild:    boolEnvOrDefault(envForceRebuild, false),
		AdapterPriority: listEnvOrDefault(envAdapterPriority, strings.Split(defaultAdapterPriority, ",")),
		Blacklist:       listEnvOrDefault(envBlacklist, nil),
		HTTPTimeout:     durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
		Retry: RetryConfig{
			MaxAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
			BaseBackoff: durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
		},
		SportsData: loadSportsData(),
		ESPN:       loadESPN(),
		Mirror:     loadMirror(),
		Metrics:    loadMetrics(),
	}
}

// defaultSeason picks the season a run most likely targets: the college
// football season starting in the fall of the current year, or the previous
// year's season during the spring lull.
func defaultSeason(now time.Time) int {
	if now.Month() >= time.June {
		return now.Year()
	}
	return now.Year() - 1
}
