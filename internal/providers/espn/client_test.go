package espn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/providers"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const teamBody = `{
	"season": {"year": 2025},
	"team": {
		"id": "61",
		"displayName": "Test College",
		"athletes": [
			{
				"id": "4431234",
				"fullName": "Quinn Back",
				"jersey": "7",
				"weight": 215,
				"displayHeight": "6-3",
				"position": {"abbreviation": "QB"},
				"experience": {"displayValue": "Junior"},
				"headshot": {"href": "https://img.example.test/4431234.png"},
				"statistics": {
					"splits": {
						"categories": [
							{"name": "passing", "stats": [
								{"name": "passingYards", "value": 2850},
								{"name": "passingTouchdowns", "value": 24},
								{"name": "interceptions", "value": 5}
							]},
							{"name": "rushing", "stats": [
								{"name": "rushingYards", "value": 320}
							]}
						]
					}
				}
			},
			{
				"id": "4435678",
				"displayName": "Special Teamer",
				"position": {"abbreviation": "K"},
				"statistics": {"splits": {"categories": []}}
			}
		]
	}
}`

func clientWith(t *testing.T, fn roundTripperFunc) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL: "https://site.example.test/cfb",
		TeamID:  "61",
		Season:  2025,
		HTTPClient: &http.Client{
			Transport: fn,
			Timeout:   time.Second,
		},
	})
}

func teamResponder(t *testing.T, body string) roundTripperFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/teams/61") {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.URL.Query().Get("enable") != "roster,stats" {
			t.Fatalf("missing enable parameter: %s", req.URL.RawQuery)
		}
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func TestFetchRosterMapsAthletes(t *testing.T) {
	client := clientWith(t, teamResponder(t, teamBody))

	snap, err := client.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster: %v", err)
	}
	if snap.Season != 2025 || snap.TeamID != "61" || snap.Source != "espn" {
		t.Fatalf("snapshot identity: %+v", snap)
	}
	if len(snap.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(snap.Players))
	}

	qb := snap.Players[0]
	if qb.Name != "Quinn Back" || qb.Position != "QB" || qb.Class != "Junior" {
		t.Fatalf("athlete mapping: %+v", qb)
	}
	if qb.UpstreamID == nil || *qb.UpstreamID != 4431234 {
		t.Fatalf("upstream id: %+v", qb.UpstreamID)
	}
	if !strings.Contains(qb.ProfileURL, "/id/4431234") {
		t.Fatalf("profile url: %q", qb.ProfileURL)
	}
	if qb.HeadshotURL == "" {
		t.Fatal("headshot not mapped")
	}
}

func TestFetchStatsSeasonScopeFlattensCategories(t *testing.T) {
	client := clientWith(t, teamResponder(t, teamBody))

	records, err := client.FetchStats(context.Background(), domainstats.ScopeSeason)
	if err != nil {
		t.Fatalf("FetchStats: %v", err)
	}
	// The kicker has no ranking side and is skipped.
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Side != domainstats.SideOffense || rec.Scope != domainstats.ScopeSeason {
		t.Fatalf("record bucket: %s/%s", rec.Side, rec.Scope)
	}
	if rec.Statline["passYds"] != "2850" || rec.Statline["rushYds"] != "320" {
		t.Fatalf("statline: %v", rec.Statline)
	}
	if rec.Statline["int"] != "5" {
		t.Fatalf("interceptions not normalized: %v", rec.Statline)
	}
	if rec.Player.ID == nil || *rec.Player.ID != 4431234 {
		t.Fatalf("player ref: %+v", rec.Player)
	}
}

func TestFetchStatsLastGameUnsupported(t *testing.T) {
	calls := 0
	client := clientWith(t, func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("must not be reached")
	})

	_, err := client.FetchStats(context.Background(), domainstats.ScopeLastGame)
	if !providers.IsScopeUnsupported(err) {
		t.Fatalf("expected ErrScopeUnsupported, got %v", err)
	}
	if calls != 0 {
		t.Fatal("unsupported scope must not hit the network")
	}
}

func TestFetchRosterSeasonMismatch(t *testing.T) {
	stale := strings.Replace(teamBody, `"year": 2025`, `"year": 2024`, 1)
	client := clientWith(t, teamResponder(t, stale))

	_, err := client.FetchRoster(context.Background())
	mismatch, ok := providers.AsSeasonMismatchError(err)
	if !ok {
		t.Fatalf("expected SeasonMismatchError, got %v", err)
	}
	if mismatch.Got != 2024 {
		t.Fatalf("mismatch detail: %+v", mismatch)
	}
}

func TestFetchRosterEmptyAthletes(t *testing.T) {
	client := clientWith(t, teamResponder(t, `{"season": {"year": 2025}, "team": {"id": "61", "athletes": []}}`))
	_, err := client.FetchRoster(context.Background())
	if !errors.Is(err, providers.ErrUnrecognizedShape) {
		t.Fatalf("expected ErrUnrecognizedShape, got %v", err)
	}
}

func TestAthleteNameFallbacks(t *testing.T) {
	cases := []struct {
		name string
		in   athlete
		want string
	}{
		{"full name wins", athlete{FullName: "Full Name", DisplayName: "Display"}, "Full Name"},
		{"display second", athlete{DisplayName: "Display Name"}, "Display Name"},
		{"first last", athlete{FirstName: "First", LastName: "Last"}, "First Last"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := athleteName(tc.in); got != tc.want {
				t.Fatalf("athleteName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFlattenCategoriesFirstValueWins(t *testing.T) {
	row := flattenCategories([]category{
		{Name: "passing", Stats: []statItem{{Name: "teamGamesPlayed", Value: 12}}},
		{Name: "rushing", Stats: []statItem{{Name: "teamGamesPlayed", Value: 99}}},
	})
	if row["teamGamesPlayed"] != float64(12) {
		t.Fatalf("duplicate stat names must keep the first value, got %v", row["teamGamesPlayed"])
	}
}
