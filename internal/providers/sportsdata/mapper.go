package sportsdata

import (
	"strings"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/stats"
)

func mapRoster(payload rosterResponse, teamID string, season int, generatedAt time.Time) domainroster.Snapshot {
	players := make([]domainroster.Player, 0, len(payload.Players))
	for _, row := range payload.Players {
		players = append(players, mapPlayer(row))
	}
	return domainroster.Snapshot{
		TeamID:      teamID,
		Season:      season,
		Players:     players,
		GeneratedAt: generatedAt,
		Source:      providerName,
	}
}

func mapPlayer(row playerRow) domainroster.Player {
	p := domainroster.Player{
		Name:        resolveName(row),
		Position:    strings.ToUpper(strings.TrimSpace(row.Position)),
		Jersey:      row.Jersey,
		Height:      row.Height,
		Weight:      row.Weight,
		Class:       row.Class,
		HeadshotURL: row.Headshot,
	}
	// Zero upstream ids mean "not yet assigned" (walk-ons), not player zero.
	if row.ID > 0 {
		id := row.ID
		p.UpstreamID = &id
	}
	return p
}

func resolveName(row playerRow) string {
	if row.Name != "" {
		return row.Name
	}
	return strings.TrimSpace(row.First + " " + row.Last)
}

func mapStatRows(rows []map[string]any, scope domainstats.Scope) []domainstats.Record {
	records := make([]domainstats.Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := mapStatRow(row, scope)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// mapStatRow attributes one raw row to a player and side, then normalizes it.
// Rows with no attributable player or no rankable position are skipped here;
// roster membership is enforced later at the gate.
func mapStatRow(row map[string]any, scope domainstats.Scope) (domainstats.Record, bool) {
	ref := playerRefFrom(row)
	if ref.ID == nil && ref.Name == "" {
		return domainstats.Record{}, false
	}

	side, ok := sideFrom(row)
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

func playerRefFrom(row map[string]any) domainstats.PlayerRef {
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
	for _, key := range []string{"name", "playerName", "player_name"} {
		if raw, ok := row[key].(string); ok && raw != "" {
			ref.Name = raw
			break
		}
	}
	return ref
}

func sideFrom(row map[string]any) (domainstats.Side, bool) {
	if raw, ok := row["side"].(string); ok {
		switch strings.ToLower(raw) {
		case string(domainstats.SideOffense):
			return domainstats.SideOffense, true
		case string(domainstats.SideDefense):
			return domainstats.SideDefense, true
		}
	}
	if raw, ok := row["position"].(string); ok {
		return domainstats.SideForPosition(raw)
	}
	return "", false
}
