package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
)

// RunCleanExpiredGrants deletes expired grants older than the specified number of days.
// Supports dry-run mode to preview deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredGrants(
	ctx context.Context,
	adminUseCase grantsUseCase.AdminUseCase,
	logger *slog.Logger,
	w io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	// Validate days parameter
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning expired grants",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	// Execute deletion or count operation
	count, err := adminUseCase.CleanupExpired(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired grants: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanExpiredJSON(w, count, days, dryRun)
	} else {
		outputCleanExpiredText(w, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(w io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(w, "Dry-run mode: Would delete %d expired grant(s) older than %d day(s)\n", count, days)
	} else {
		fmt.Fprintf(w, "Successfully deleted %d expired grant(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(w io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(w, string(jsonBytes))
}
