package stats

import (
	"strconv"

	domainstats "cfb-spotlight-pipeline/internal/domain/stats"
)

// Normalize maps one upstream stat row onto the canonical statline for the
// given side. The first present alternate key wins per field. Fields with no
// resolvable source key are omitted rather than defaulted; a row with no
// recognizable keys yields an empty statline, which the scorer later excludes.
// Normalize never fails and is idempotent over its output.
func Normalize(row map[string]any, side domainstats.Side) domainstats.Statline {
	line := make(domainstats.Statline)
	for _, field := range FieldsFor(side) {
		for _, alias := range field.Aliases {
			raw, ok := row[alias]
			if !ok {
				continue
			}
			if v, numeric := NumericValue(raw); numeric {
				line[field.Code] = FormatStat(v)
				break
			}
		}
	}
	return line
}

// NumericValue coerces a heterogeneous JSON value into a float64. Upstreams
// return flat numbers, numeric strings, or nested objects keyed by an
// aggregate; nested objects are resolved through the usual aggregate keys.
func NumericValue(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]any:
		for _, key := range []string{"total", "value", "all", "count"} {
			if inner, exists := v[key]; exists && inner != nil {
				return NumericValue(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// FormatStat renders a stat value as its display string, keeping integers
// free of a trailing ".0".
func FormatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseStat reads a display string back into its numeric value.
func ParseStat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
