package testutil

import (
	"testing"

	domainroster "cfb-spotlight-pipeline/internal/domain/roster"
)

func TestSampleRosterIsWithinBounds(t *testing.T) {
	snap := SampleRoster(2025, 70)
	if len(snap.Players) != 70 {
		t.Fatalf("got %d players", len(snap.Players))
	}
	if !snap.WithinBounds() {
		t.Fatal("fixture roster must satisfy size and coverage bounds")
	}
	if snap.IDCoverage() != 1 {
		t.Fatalf("id coverage = %v, want 1", snap.IDCoverage())
	}
}

func TestSampleRosterCoversBothSides(t *testing.T) {
	snap := SampleRoster(2025, 70)
	offense, defense := 0, 0
	for _, p := range snap.Players {
		switch p.Position {
		case "QB", "RB", "WR", "TE", "OL":
			offense++
		case "DL", "LB", "CB", "S":
			defense++
		}
	}
	if offense == 0 || defense == 0 {
		t.Fatalf("fixture roster one-sided: %d offense, %d defense", offense, defense)
	}
}

func TestSamplePlayerCarriesID(t *testing.T) {
	p := SamplePlayer(42, "Some Name", "QB")
	if !p.HasID() || *p.UpstreamID != 42 {
		t.Fatalf("player id: %+v", p)
	}
	var zero domainroster.Player
	if zero.HasID() {
		t.Fatal("zero player must not claim an id")
	}
}

func TestStatlineFixturesScoreAboveZero(t *testing.T) {
	if len(OffenseLine(100, 1)) == 0 || len(DefenseLine(5, 1)) == 0 {
		t.Fatal("fixture statlines must not be empty")
	}
}
