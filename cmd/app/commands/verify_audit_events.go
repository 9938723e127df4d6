package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// RunVerifyAuditEvents checks the HMAC signature of every audit event created in the time
// range. Returns an error when at least one signature does not match so the exit code reflects
// the integrity check.
func RunVerifyAuditEvents(
	ctx context.Context,
	auditEventUseCase authUseCase.AuditEventUseCase,
	logger *slog.Logger,
	writer io.Writer,
	startDate, endDate string,
	format string,
) error {
	start, err := parseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end, err := parseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("verifying audit events",
		slog.Time("start_date", start),
		slog.Time("end_date", end),
	)

	report, err := auditEventUseCase.VerifyBatch(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify audit events: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, map[string]any{
			"total_checked":  report.TotalChecked,
			"signed_count":   report.SignedCount,
			"unsigned_count": report.UnsignedCount,
			"valid_count":    report.ValidCount,
			"invalid_count":  report.InvalidCount,
			"invalid_events": report.InvalidEvents,
			"passed":         report.InvalidCount == 0,
		}); err != nil {
			return err
		}
	} else {
		outputVerifyText(writer, report, start, end)
	}

	logger.Info("verification completed",
		slog.Int64("total_checked", report.TotalChecked),
		slog.Int64("valid", report.ValidCount),
		slog.Int64("invalid", report.InvalidCount),
		slog.Int64("unsigned", report.UnsignedCount),
	)

	if report.InvalidCount > 0 {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.InvalidCount)
	}

	return nil
}

// parseDate accepts "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" (start of day), both in UTC.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"invalid date format (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS): %s",
			value,
		)
	}
	return t, nil
}

func outputVerifyText(writer io.Writer, report *authUseCase.VerificationReport, start, end time.Time) {
	_, _ = fmt.Fprintf(writer, "Audit event integrity verification\n")
	_, _ = fmt.Fprintf(writer, "Time range: %s to %s\n\n", start.Format(dateTimeLayout), end.Format(dateTimeLayout))

	_, _ = fmt.Fprintf(writer, "Total checked:  %d\n", report.TotalChecked)
	_, _ = fmt.Fprintf(writer, "Signed:         %d\n", report.SignedCount)
	_, _ = fmt.Fprintf(writer, "Unsigned:       %d\n", report.UnsignedCount)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", report.ValidCount)
	_, _ = fmt.Fprintf(writer, "Invalid:        %d\n\n", report.InvalidCount)

	switch {
	case report.InvalidCount > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d event(s) failed integrity check\n", report.InvalidCount)
		for _, id := range report.InvalidEvents {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.TotalChecked == 0:
		_, _ = fmt.Fprintf(writer, "Status: no events found in time range\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}
