package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/providers"
)

// Config controls how the espn client reaches the public network API.
type Config struct {
	BaseURL    string
	TeamID     string
	Season     int
	HTTPClient *http.Client
}

// Client fetches the team page (roster plus season stat splits) from the
// public network API. The network only publishes cumulative season splits,
// so last-game stats are out of this adapter's reach.
type Client struct {
	baseURL    string
	teamID     string
	season     int
	httpClient httpDoer
	now        func() time.Time
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs an espn client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := httpDoer(cfg.HTTPClient)
	if cfg.HTTPClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		teamID:     cfg.TeamID,
		season:     cfg.Season,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Name returns the adapter tag recorded in logs and artifacts.
func (c *Client) Name() string {
	return providerName
}

// FetchRoster retrieves the team page and maps its athletes to the canonical
// roster shape.
func (c *Client) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	payload, err := c.fetchTeam(ctx)
	if err != nil {
		return domainroster.Snapshot{}, err
	}
	return mapRoster(payload, c.teamID, c.season, c.now().UTC()), nil
}

// FetchStats maps each athlete's season stat splits into normalized records.
// ScopeLastGame is unsupported: the team page carries no per-game lines.
func (c *Client) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	if scope != domainstats.ScopeSeason {
		return nil, fmt.Errorf("%s: %s: %w", providerName, scope, providers.ErrScopeUnsupported)
	}
	payload, err := c.fetchTeam(ctx)
	if err != nil {
		return nil, err
	}
	return mapSeasonStats(payload), nil
}

func (c *Client) fetchTeam(ctx context.Context) (teamResponse, error) {
	url := fmt.Sprintf("%s/teams/%s?enable=roster,stats", c.baseURL, c.teamID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return teamResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return teamResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return teamResponse{}, fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload teamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return teamResponse{}, fmt.Errorf("%s: decode: %w (%v)", providerName, providers.ErrUnrecognizedShape, err)
	}
	if len(payload.Team.Athletes) == 0 {
		return teamResponse{}, fmt.Errorf("%s: empty athletes: %w", providerName, providers.ErrUnrecognizedShape)
	}
	if payload.Season.Year != 0 && payload.Season.Year != c.season {
		return teamResponse{}, &providers.SeasonMismatchError{
			Provider: providerName,
			Got:      payload.Season.Year,
			Want:     c.season,
		}
	}
	return payload, nil
}
