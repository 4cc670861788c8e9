package providers

import (
	"context"
	"log/slog"

	"cfb-spotlight-pipeline/internal/logging"
)

// logProviderOp emits a log entry if logger is non-nil, tagged with the
// provider name and the operation it concerns ("roster", "stats:<scope>",
// "wait"). Both wrappers log through here so provider lines stay greppable
// by the same keys the orchestrator uses.
func logProviderOp(ctx context.Context, logger *slog.Logger, level slog.Level, provider, op, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldOp, op))
	logger.Log(ctx, level, msg, args...)
}
