package stats

import (
	"math"

	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Score collapses a statline into one comparable rank value for its side
// using fixed linear weights. Missing scoring fields count as zero. Scores
// at or below zero mean "insufficient signal" and callers exclude those
// records from ranking.
func Score(line domainstats.Statline, side domainstats.Side) float64 {
	total := 0.0
	for _, field := range FieldsFor(side) {
		if !field.Scoring() {
			continue
		}
		raw, ok := line[field.Code]
		if !ok {
			continue
		}
		v, ok := ParseStat(raw)
		if !ok {
			continue
		}
		total += field.Weight * v
	}
	// Two decimal places keeps rank values stable across float formatting.
	return math.Round(total*100) / 100
}
