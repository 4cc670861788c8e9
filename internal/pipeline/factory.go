package pipeline

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cfb-spotlight-pipeline/internal/config"
	"cfb-spotlight-pipeline/internal/logging"
	"cfb-spotlight-pipeline/internal/metrics"
	"cfb-spotlight-pipeline/internal/providers"
	"cfb-spotlight-pipeline/internal/providers/espn"
	"cfb-spotlight-pipeline/internal/providers/mirror"
	"cfb-spotlight-pipeline/internal/providers/sportsdata"
)

// BuildAdapters assembles the adapter chain in the configured priority order.
// Every adapter is wrapped with retry/backoff; the keyed commercial API also
// gets minimum-interval spacing to honor its plan limits. Adapters missing
// required configuration are skipped, not failed.
func BuildAdapters(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) []providers.DataProvider {
	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeout)}
	chain := make([]providers.DataProvider, 0, len(cfg.AdapterPriority))

	for _, name := range cfg.AdapterPriority {
		var adapter providers.DataProvider
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "sportsdata":
			if cfg.SportsData.APIKey == "" {
				logging.Warn(logger, "adapter skipped: no api key",
					logging.FieldProvider, name)
				continue
			}
			adapter = providers.NewRateLimitedProvider(sportsdata.NewClient(sportsdata.Config{
				BaseURL:    cfg.SportsData.BaseURL,
				APIKey:     cfg.SportsData.APIKey,
				TeamID:     cfg.TeamID,
				Season:     cfg.Season,
				HTTPClient: httpClient,
			}), time.Duration(cfg.SportsData.MinInterval), logger)
		case "espn":
			adapter = espn.NewClient(espn.Config{
				BaseURL:    cfg.ESPN.BaseURL,
				TeamID:     cfg.TeamID,
				Season:     cfg.Season,
				HTTPClient: httpClient,
			})
		case "mirror":
			if cfg.Mirror.URL == "" {
				logging.Warn(logger, "adapter skipped: no mirror url",
					logging.FieldProvider, name)
				continue
			}
			adapter = mirror.New(mirror.Config{
				URL:        cfg.Mirror.URL,
				TeamID:     cfg.TeamID,
				Season:     cfg.Season,
				HTTPClient: httpClient,
			})
		default:
			logging.Warn(logger, "unknown adapter in priority list",
				logging.FieldProvider, name)
			continue
		}
		chain = append(chain, providers.NewRetryingProvider(adapter, logger, recorder,
			cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BaseBackoff)))
	}
	return chain
}
