package metrics

// Drop reasons surfaced in build metadata. Every skipped record increments
// exactly one of these so best-effort filtering stays countable.
const (
	DropMissingID   = "droppedForMissingId"
	DropNotOnRoster = "droppedNotOnRoster"
	DropZeroScore   = "droppedZeroScore"
	DropUnknownSide = "droppedUnknownSide"
	DropBlacklisted = "droppedBlacklisted"
)
