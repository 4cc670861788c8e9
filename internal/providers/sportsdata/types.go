package sportsdata

// Upstream payload shapes for the paid stats API. Stat rows stay untyped
// (map[string]any) because the vendor has renamed stat keys across plan
// versions; the normalizer's alternate-key lists absorb that churn.

type rosterResponse struct {
	Season  int         `json:"season"`
	TeamID  string      `json:"teamId"`
	Players []playerRow `json:"players"`
}

type playerRow struct {
	ID       int    `json:"playerId"`
	Name     string `json:"name"`
	First    string `json:"firstName"`
	Last     string `json:"lastName"`
	Position string `json:"position"`
	Jersey   string `json:"jersey"`
	Height   string `json:"height"`
	Weight   int    `json:"weight"`
	Class    string `json:"classYear"`
	Headshot string `json:"headshotUrl"`
}

type statsResponse struct {
	Season int              `json:"season"`
	Scope  string           `json:"scope"`
	Rows   []map[string]any `json:"playerStats"`
}
