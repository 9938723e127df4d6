package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
)

// RunCleanAuditEvents deletes audit events older than days days. With dryRun it only reports
// how many would be removed.
func RunCleanAuditEvents(
	ctx context.Context,
	auditEventUseCase authUseCase.AuditEventUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning audit events",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := auditEventUseCase.DeleteOlderThan(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete audit events: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		}); err != nil {
			return err
		}
	} else {
		verb := "Deleted"
		if dryRun {
			verb = "Dry-run mode: would delete"
		}
		_, _ = fmt.Fprintf(writer, "%s %d audit event(s) older than %d day(s)\n", verb, count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}
