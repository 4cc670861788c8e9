package sportsdata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"cfb-spotlight-pipeline/internal/providers"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func clientWith(t *testing.T, fn roundTripperFunc) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL: "https://stats.example.test/v3/cfb",
		APIKey:  "secret-key",
		TeamID:  "61",
		Season:  2025,
		HTTPClient: &http.Client{
			Transport: fn,
			Timeout:   time.Second,
		},
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestFetchRosterMapsResponse(t *testing.T) {
	var capturedPath, capturedAuth string
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		capturedAuth = req.Header.Get("Authorization")
		return jsonResponse(200, `{
			"season": 2025,
			"teamId": "61",
			"players": [
				{"playerId": 101, "name": "Quinn Back", "position": "qb", "jersey": "7", "classYear": "Senior"},
				{"playerId": 0, "firstName": "Walk", "lastName": "On", "position": "WR"}
			]
		}`), nil
	})

	snap, err := client.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster: %v", err)
	}
	if capturedPath != "/v3/cfb/teams/61/roster" {
		t.Fatalf("path = %q", capturedPath)
	}
	if capturedAuth != "Bearer secret-key" {
		t.Fatalf("auth header = %q", capturedAuth)
	}
	if snap.Season != 2025 || snap.TeamID != "61" || snap.Source != "sportsdata" {
		t.Fatalf("snapshot identity: %+v", snap)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(snap.Players))
	}
	if snap.Players[0].Position != "QB" {
		t.Fatalf("position not upcased: %q", snap.Players[0].Position)
	}
	if snap.Players[0].UpstreamID == nil || *snap.Players[0].UpstreamID != 101 {
		t.Fatalf("player id not mapped: %+v", snap.Players[0])
	}
	if snap.Players[1].UpstreamID != nil {
		t.Fatal("zero upstream id must map to nil")
	}
	if snap.Players[1].Name != "Walk On" {
		t.Fatalf("name fallback: %q", snap.Players[1].Name)
	}
}

func TestFetchRosterEmptyPlayersIsUnrecognized(t *testing.T) {
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"season": 2025, "players": []}`), nil
	})
	_, err := client.FetchRoster(context.Background())
	if !errors.Is(err, providers.ErrUnrecognizedShape) {
		t.Fatalf("expected ErrUnrecognizedShape, got %v", err)
	}
}

func TestFetchRosterSeasonMismatch(t *testing.T) {
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"season": 2024, "players": [{"playerId": 1, "name": "A"}]}`), nil
	})
	_, err := client.FetchRoster(context.Background())
	mismatch, ok := providers.AsSeasonMismatchError(err)
	if !ok {
		t.Fatalf("expected SeasonMismatchError, got %v", err)
	}
	if mismatch.Got != 2024 || mismatch.Want != 2025 {
		t.Fatalf("mismatch detail: %+v", mismatch)
	}
}

func TestFetchStatsRateLimited(t *testing.T) {
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(429, `{"message": "slow down"}`)
		resp.Header.Set("Retry-After", "30")
		return resp, nil
	})
	_, err := client.FetchStats(context.Background(), "season")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Fatalf("retry-after = %v, want 30s", rl.RetryAfter)
	}
	if rl.StatusCode != 429 {
		t.Fatalf("status = %d", rl.StatusCode)
	}
}

func TestFetchStatsMapsRows(t *testing.T) {
	var capturedQuery string
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		capturedQuery = req.URL.RawQuery
		return jsonResponse(200, `{
			"season": 2025,
			"scope": "last_game",
			"playerStats": [
				{"playerId": 101, "name": "Quinn Back", "position": "QB", "passingYards": 287, "passingTouchdowns": 3},
				{"position": "QB", "passingYards": 10},
				{"playerId": 55, "name": "Specialist", "position": "K", "fieldGoals": 2}
			]
		}`), nil
	})

	records, err := client.FetchStats(context.Background(), "last_game")
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	if capturedQuery != "scope=last_game&season=2025" {
		t.Fatalf("query = %q", capturedQuery)
	}
	// The anonymous row and the specialist are skipped at mapping time.
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Player.ID == nil || *rec.Player.ID != 101 {
		t.Fatalf("player ref: %+v", rec.Player)
	}
	if rec.Side != "offense" || rec.Scope != "last_game" {
		t.Fatalf("record bucket: %s/%s", rec.Side, rec.Scope)
	}
	if rec.Statline["passYds"] != "287" || rec.Statline["passTD"] != "3" {
		t.Fatalf("statline: %v", rec.Statline)
	}
}

func TestGetJSONSurfacesServerErrors(t *testing.T) {
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(500, "upstream exploded"), nil
	})
	_, err := client.FetchRoster(context.Background())
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status error, got %v", err)
	}
}
