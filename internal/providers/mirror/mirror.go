// Package mirror serves the static dataset mirror: a single JSON snapshot of
// roster and stat rows hosted at a fixed URL (e.g. a raw file in the site
// repo). It is the last network source tried before the on-disk cache.
package mirror

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
	"cfb-spotlight-pipeline/internal/stats"
)

const (
	providerName       = "mirror"
	defaultHTTPTimeout = 9 * time.Second
)

type payload struct {
	Season int                   `json:"season"`
	TeamID string                `json:"teamId"`
	Roster []domainroster.Player `json:"roster"`
	Stats  map[string][]statRow  `json:"stats"`
}

type statRow = map[string]any

// Config controls the mirror provider.
type Config struct {
	URL        string
	TeamID     string
	Season     int
	HTTPClient *http.Client
}

// Provider fetches and caches the mirror snapshot for the duration of a run;
// the same blob serves the roster and both stat scopes.
type Provider struct {
	url        string
	teamID     string
	season     int
	httpClient *http.Client
	now        func() time.Time

	cached *payload
}

// New constructs a mirror provider. An empty URL leaves the provider
// unavailable, which the orchestrator skips past.
func New(cfg Config) *Provider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Provider{
		url:        cfg.URL,
		teamID:     cfg.TeamID,
		season:     cfg.Season,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Name returns the adapter tag recorded in logs and artifacts.
func (p *Provider) Name() string {
	return providerName
}

// FetchRoster returns the mirror's roster for the configured season.
func (p *Provider) FetchRoster(ctx context.Context) (domainroster.Snapshot, error) {
	blob, err := p.fetch(ctx)
	if err != nil {
		return domainroster.Snapshot{}, err
	}
	return domainroster.Snapshot{
		TeamID:      p.teamID,
		Season:      blob.Season,
		Players:     blob.Roster,
		GeneratedAt: p.now().UTC(),
		Source:      providerName,
	}, nil
}

// FetchStats normalizes the mirror's raw stat rows for the given scope.
func (p *Provider) FetchStats(ctx context.Context, scope domainstats.Scope) ([]domainstats.Record, error) {
	blob, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	rows, ok := blob.Stats[string(scope)]
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", providerName, scope, providers.ErrScopeUnsupported)
	}

	records := make([]domainstats.Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := mapRow(row, scope)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p *Provider) fetch(ctx context.Context) (*payload, error) {
	if p.cached != nil {
		return p.cached, nil
	}
	if p.url == "" {
		return nil, providers.ErrProviderUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var blob payload
	if err := json.NewDecoder(resp.Body).Decode(&blob); err != nil {
		return nil, fmt.Errorf("%s: decode: %w (%v)", providerName, providers.ErrUnrecognizedShape, err)
	}
	if len(blob.Roster) == 0 {
		return nil, fmt.Errorf("%s: empty roster: %w", providerName, providers.ErrUnrecognizedShape)
	}
	if blob.Season != 0 && blob.Season != p.season {
		return nil, &providers.SeasonMismatchError{
			Provider: providerName,
			Got:      blob.Season,
			Want:     p.season,
		}
	}

	p.cached = &blob
	return p.cached, nil
}

func mapRow(row statRow, scope domainstats.Scope) (domainstats.Record, bool) {
	ref := domainstats.PlayerRef{}
	for _, key := range []string{"playerId", "player_id", "id"} {
		if raw, ok := row[key]; ok {
			if v, numeric := stats.NumericValue(raw); numeric && v > 0 {
				id := int(v)
				ref.ID = &id
				break
			}
		}
	}
	if raw, ok := row["name"].(string); ok {
		ref.Name = raw
	}
	if ref.ID == nil && ref.Name == "" {
		return domainstats.Record{}, false
	}

	position, _ := row["position"].(string)
	side, ok := domainstats.SideForPosition(position)
	if !ok {
		return domainstats.Record{}, false
	}

	return domainstats.Record{
		Player:   ref,
		Side:     side,
		Scope:    scope,
		Statline: stats.Normalize(row, side),
		Source:   providerName,
	}, true
}
