package espn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/stats"
)

func mapRoster(payload teamResponse, teamID string, season int, generatedAt time.Time) domainroster.Snapshot {
	players := make([]domainroster.Player, 0, len(payload.Team.Athletes))
	for _, a := range payload.Team.Athletes {
		players = append(players, mapAthlete(a))
	}
	return domainroster.Snapshot{
		TeamID:      teamID,
		Season:      season,
		Players:     players,
		GeneratedAt: generatedAt,
		Source:      providerName,
	}
}

func mapAthlete(a athlete) domainroster.Player {
	p := domainroster.Player{
		Name:        athleteName(a),
		Position:    strings.ToUpper(strings.TrimSpace(a.Position.Abbreviation)),
		Jersey:      a.Jersey,
		Height:      a.DisplayHeight,
		Weight:      int(a.Weight),
		Class:       a.Class.DisplayValue,
		HeadshotURL: a.Headshot.Href,
	}
	if id, err := strconv.Atoi(a.ID); err == nil && id > 0 {
		p.UpstreamID = &id
		p.ProfileURL = fmt.Sprintf(profileURLFormat, id)
	}
	return p
}

func athleteName(a athlete) string {
	if a.FullName != "" {
		return a.FullName
	}
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// mapSeasonStats flattens each athlete's stat categories into one row and
// runs it through the normalizer, so the network's stat names flow through
// the same alternate-key lists as every other source.
func mapSeasonStats(payload teamResponse) []domainstats.Record {
	records := make([]domainstats.Record, 0, len(payload.Team.Athletes))
	for _, a := range payload.Team.Athletes {
		side, ok := domainstats.SideForPosition(a.Position.Abbreviation)
		if !ok {
			continue
		}
		row := flattenCategories(a.Statistics.Splits.Categories)
		if len(row) == 0 {
			continue
		}

		rec := domainstats.Record{
			Player:   domainstats.PlayerRef{Name: athleteName(a)},
			Side:     side,
			Scope:    domainstats.ScopeSeason,
			Statline: stats.Normalize(row, side),
			Source:   providerName,
		}
		if id, err := strconv.Atoi(a.ID); err == nil && id > 0 {
			rec.Player.ID = &id
		}
		records = append(records, rec)
	}
	return records
}

func flattenCategories(categories []category) map[string]any {
	row := make(map[string]any)
	for _, cat := range categories {
		for _, item := range cat.Stats {
			if _, exists := row[item.Name]; !exists {
				row[item.Name] = item.Value
			}
		}
	}
	return row
}
