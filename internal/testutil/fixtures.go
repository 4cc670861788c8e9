package testutil

import (
	"fmt"
	"time"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Positions cycled through by SampleRoster so both sides of the ball are
// always represented.
var samplePositions = []string{"QB", "RB", "WR", "TE", "OL", "DL", "LB", "CB", "S"}

// SamplePlayer returns a roster player fixture with an upstream id.
func SamplePlayer(id int, name, position string) domainroster.Player {
	return domainroster.Player{
		UpstreamID: &id,
		Name:       name,
		Position:   position,
		Jersey:     fmt.Sprintf("%d", id%100),
		Height:     "6-2",
		Weight:     210,
		Class:      "Junior",
	}
}

// SampleRoster builds a size-player snapshot for the given season. Every
// player carries an id, so id coverage is 100%.
func SampleRoster(season, size int) domainroster.Snapshot {
	players := make([]domainroster.Player, 0, size)
	for i := 0; i < size; i++ {
		players = append(players, SamplePlayer(
			1000+i,
			fmt.Sprintf("Player %03d", i),
			samplePositions[i%len(samplePositions)],
		))
	}
	return domainroster.Snapshot{
		TeamID:      "61",
		Season:      season,
		Players:     players,
		GeneratedAt: time.Date(season, time.September, 1, 12, 0, 0, 0, time.UTC),
		Source:      "test",
	}
}

// SampleRecord builds a stat record referencing a player by id and name.
func SampleRecord(id int, name string, side domainstats.Side, scope domainstats.Scope, line domainstats.Statline) domainstats.Record {
	return domainstats.Record{
		Player:   domainstats.PlayerRef{ID: &id, Name: name},
		Side:     side,
		Scope:    scope,
		Statline: line,
		Source:   "test",
	}
}

// OffenseLine returns a statline that scores under the offensive weights.
func OffenseLine(passYds, passTD int) domainstats.Statline {
	return domainstats.Statline{
		"passYds": fmt.Sprintf("%d", passYds),
		"passTD":  fmt.Sprintf("%d", passTD),
	}
}

// DefenseLine returns a statline that scores under the defensive weights.
func DefenseLine(tackles, sacks int) domainstats.Statline {
	return domainstats.Statline{
		"tkl":   fmt.Sprintf("%d", tackles),
		"sacks": fmt.Sprintf("%d", sacks),
	}
}
