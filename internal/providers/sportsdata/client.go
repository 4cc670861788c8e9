package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/providers"
)

// Config controls how the sportsdata client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	TeamID     string
	Season     int
	HTTPClient *http.Client
}

// Client fetches rosters and stat rows from the paid stats API and maps them
// to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	teamID     string
	season     int
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a sportsdata client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		teamID:     cfg.TeamID,
		season:     cfg.Season,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// Name returns the adapter tag recorded in logs and artifacts.
func (c *Client) Name() string {
	return providerName
}

// FetchRoster retrieves the team roster for the configured season.
func (c *Client) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	var payload rosterResponse
	path := fmt.Sprintf("/teams/%s/roster", c.teamID)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return domainroster.Snapshot{}, err
	}
	if len(payload.Players) == 0 {
		return domainroster.Snapshot{}, fmt.Errorf("%s roster: %w", providerName, providers.ErrUnrecognizedShape)
	}
	if payload.Season != 0 && payload.Season != c.season {
		return domainroster.Snapshot{}, &providers.SeasonMismatchError{
			Provider: providerName,
			Got:      payload.Season,
			Want:     c.season,
		}
	}
	return mapRoster(payload, c.teamID, c.season, c.now().UTC()), nil
}

// FetchStats retrieves per-player stat rows for the given scope.
func (c *Client) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	var payload statsResponse
	path := fmt.Sprintf("/teams/%s/stats", c.teamID)
	path += "?scope=" + string(scope) + "&season=" + strconv.Itoa(c.season)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	if payload.Rows == nil {
		return nil, fmt.Errorf("%s stats: %w", providerName, providers.ErrUnrecognizedShape)
	}
	if payload.Season != 0 && payload.Season != c.season {
		return nil, &providers.SeasonMismatchError{
			Provider: providerName,
			Got:      payload.Season,
			Want:     c.season,
		}
	}
	return mapStatRows(payload.Rows, scope), nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode: %w (%v)", providerName, providers.ErrUnrecognizedShape, err)
	}
	return nil
}

func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
