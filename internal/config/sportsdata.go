package config

import "time"

const (
	envSportsDataBaseURL  = "SPORTSDATA_BASE_URL"
	envSportsDataAPIKey   = "SPORTSDATA_API_KEY"
	envSportsDataInterval = "SPORTSDATA_MIN_INTERVAL"

	defaultSportsDataBaseURL = "https://api.sportsdata.io/v3/cfb"
	// Spacing between paid-API calls; the metered plan allows one call per second.
	defaultSportsDataInterval = 1100 * Duration(time.Millisecond)
)

// SportsDataConfig controls how we talk to the paid stats API.
type SportsDataConfig struct {
	BaseURL     string
	APIKey      string
	MinInterval Duration
}

func loadSportsData() SportsDataConfig {
	return SportsDataConfig{
		BaseURL:     envOrDefault(envSportsDataBaseURL, defaultSportsDataBaseURL),
		APIKey:      envOrDefault(envSportsDataAPIKey, ""),
		MinInterval: durationEnvOrDefault(envSportsDataInterval, defaultSportsDataInterval),
	}
}
