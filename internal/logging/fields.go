package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldOp         = "op"
	FieldSeason     = "season"
	FieldTeam       = "team_id"
	FieldBucket     = "bucket"
	FieldScope      = "scope"
	FieldState      = "state"
	FieldSource     = "source"
	FieldCount      = "count"
	FieldPath       = "path"
	FieldDurationMS = "duration_ms"
)
