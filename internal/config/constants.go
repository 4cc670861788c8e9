package config

import "time"

const (
	envSeason          = "TARGET_SEASON"
	envTeamID          = "TEAM_ID"
	envDataDir         = "DATA_DIR"
	envStrictSeason    = "STRICT_SEASON"
	envForceRebuild    = "FORCE_REBUILD"
	envAdapterPriority = "ADAPTER_PRIORITY"
	envRetryAttempts   = "RETRY_MAX_ATTEMPTS"
	envRetryBackoff    = "RETRY_BASE_BACKOFF"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envBlacklist       = "PLAYER_BLACKLIST"
	envMetricsOn       = "METRICS_ENABLED"
	envPushgateway     = "PUSHGATEWAY_URL"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultTeamID  = "61"
	defaultDataDir = "data"
	// Adapters are tried most-authoritative-and-freshest first; the on-disk
	// cache is the orchestrator's own last resort and is not an adapter.
	defaultAdapterPriority = "sportsdata,espn,mirror"
	defaultRetryAttempts   = 3
	defaultRetryBackoff    = 250 * Duration(time.Millisecond)
	// Observed upstream latency budget; slow responses are worse than a retry.
	defaultHTTPTimeout = 9 * Duration(time.Second)
)
