package pipeline

import (
	"sort"
	"strconv"
	"strings"

	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
	"cfb-spotlight-pipeline/internal/gate"
	"cfb-spotlight-pipeline/internal/metrics"
	"cfb-spotlight-pipeline/internal/stats"
)

// BuildSpotlight scores, gates, dedupes and ranks the records that belong to
// one bucket. Every skip is counted under a named reason; none is an error.
// blacklist keys are normalized names (see gate.NormalizeName) and are
// filtered before the top-N cap so a replacement player can surface.
func BuildSpotlight(bucket domainstats.Bucket, records []domainstats.Record, g *gate.Gate, blacklist map[string]bool, recorder *metrics.Recorder) []domainstats.Entry {
	best := make(map[string]domainstats.Entry)
	for _, r := range records {
		if r.Side != bucket.Side || r.Scope != bucket.Scope {
			continue
		}

		score := stats.Score(r.Statline, r.Side)
		if score <= 0 {
			recorder.RecordDrop(metrics.DropZeroScore)
			continue
		}

		player, ok := g.Resolve(r.Player)
		if !ok {
			if r.Player.ID == nil && strings.TrimSpace(r.Player.Name) == "" {
				recorder.RecordDrop(metrics.DropMissingID)
			} else {
				recorder.RecordDrop(metrics.DropNotOnRoster)
			}
			continue
		}
		if blacklist[gate.NormalizeName(player.Name)] {
			recorder.RecordDrop(metrics.DropBlacklisted)
			continue
		}

		entry := domainstats.Entry{
			ID:          player.UpstreamID,
			Name:        player.Name,
			Position:    player.Position,
			HeadshotURL: player.HeadshotURL,
			ProfileURL:  player.ProfileURL,
			Side:        bucket.Side,
			Scope:       bucket.Scope,
			Statline:    r.Statline.Clone(),
			Score:       score,
			Source:      r.Source,
		}

		key := identityKey(entry)
		if prev, seen := best[key]; !seen || entry.Score > prev.Score {
			best[key] = entry
		}
	}

	entries := make([]domainstats.Entry, 0, len(best))
	for _, e := range best {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > domainstats.SpotlightSize {
		entries = entries[:domainstats.SpotlightSize]
	}
	return entries
}

// PickFeatured selects the single cross-cutting hero entry: the highest score
// across every bucket, with ties resolved by bucket priority (offense before
// defense, last game before season).
func PickFeatured(buckets map[domainstats.Bucket][]domainstats.Entry) *domainstats.Entry {
	var featured *domainstats.Entry
	for _, bucket := range domainstats.RequiredBuckets() {
		for i := range buckets[bucket] {
			entry := buckets[bucket][i]
			if featured == nil || entry.Score > featured.Score {
				picked := entry
				featured = &picked
			}
		}
	}
	return featured
}

func identityKey(e domainstats.Entry) string {
	if e.ID != nil {
		return "id:" + strconv.Itoa(*e.ID)
	}
	return "name:" + gate.NormalizeName(e.Name)
}
