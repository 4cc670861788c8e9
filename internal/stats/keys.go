package stats

import domainstats "cfb-spotlight-pipeline/internal/domain/stats"

// Field describes one canonical statline slot: the short code the front end
// reads, the upstream key spellings tried in order, and the scoring weight.
// A zero weight marks a display-only field.
type Field struct {
	Code    string
	Aliases []string
	Weight  float64
}

// Scoring reports whether the field participates in the score.
func (f Field) Scoring() bool {
	return f.Weight != 0
}

// Alternate key lists are ordered most-specific first; the normalizer takes
// the first present, parseable value. Upstreams disagree on spelling for the
// same stat, so every observed variant is listed.
var offenseFields = []Field{
	{Code: "passYds", Weight: 0.04, Aliases: []string{"passingYards", "pass_yds", "passYards", "yards_passing", "passYds"}},
	{Code: "passTD", Weight: 4, Aliases: []string{"passingTouchdowns", "pass_td", "passingTDs", "passTDs", "passTD"}},
	{Code: "rushYds", Weight: 0.1, Aliases: []string{"rushingYards", "rush_yds", "rushYds", "yards_rushing", "rushYards"}},
	{Code: "rushTD", Weight: 6, Aliases: []string{"rushingTouchdowns", "rush_td", "rushingTDs", "rushTDs", "rushTD"}},
	{Code: "recYds", Weight: 0.1, Aliases: []string{"receivingYards", "rec_yds", "recYds", "yards_receiving", "recYards"}},
	{Code: "recTD", Weight: 6, Aliases: []string{"receivingTouchdowns", "rec_td", "receivingTDs", "recTDs", "recTD"}},
	{Code: "int", Weight: -3, Aliases: []string{"interceptionsThrown", "interceptions_thrown", "pass_int", "interceptions"}},
	{Code: "fumLost", Weight: -2, Aliases: []string{"fumblesLost", "fumbles_lost", "fum_lost", "fumLost"}},
	{Code: "cmp", Aliases: []string{"completions", "pass_cmp", "passingCompletions", "cmp"}},
	{Code: "att", Aliases: []string{"passingAttempts", "pass_att", "attempts", "att"}},
	{Code: "car", Aliases: []string{"rushingAttempts", "rush_att", "carries", "car"}},
	{Code: "rec", Aliases: []string{"receptions", "rec", "catches"}},
}

var defenseFields = []Field{
	{Code: "tkl", Weight: 0.75, Aliases: []string{"totalTackles", "tackles_total", "tot_tackles", "tackles", "tkl"}},
	{Code: "tfl", Weight: 1.5, Aliases: []string{"tacklesForLoss", "tackles_for_loss", "tfl", "tacklesLoss"}},
	{Code: "sacks", Weight: 3, Aliases: []string{"sacks", "qb_sacks", "sack"}},
	{Code: "int", Weight: 5, Aliases: []string{"defensiveInterceptions", "def_int", "interceptions", "ints"}},
	{Code: "pd", Weight: 1, Aliases: []string{"passesDefended", "passes_defended", "passBreakups", "pass_breakups", "pd"}},
	{Code: "ff", Weight: 2.5, Aliases: []string{"forcedFumbles", "forced_fumbles", "fumblesForced", "ff"}},
	{Code: "fr", Weight: 2.5, Aliases: []string{"fumbleRecoveries", "fumbles_recovered", "fumblesRecovered", "fr"}},
	{Code: "defTD", Weight: 6, Aliases: []string{"defensiveTouchdowns", "def_td", "defTDs", "defTD"}},
	{Code: "solo", Aliases: []string{"soloTackles", "solo_tackles", "solo"}},
}

// FieldsFor returns the canonical field table for a side.
func FieldsFor(side domainstats.Side) []Field {
	if side == domainstats.SideDefense {
		return defenseFields
	}
	return offenseFields
}
