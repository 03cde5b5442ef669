// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/grants/internal/app"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/notification"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// DeliveryDispatcher enqueues delivery emails for issued grants.
type DeliveryDispatcher interface {
	Dispatch(task notification.DeliveryTask) bool
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// parseTier converts a tier string to grantsDomain.Tier.
// Returns an error if the tier string is invalid.
func parseTier(tier string) (grantsDomain.Tier, error) {
	switch tier {
	case "demo":
		return grantsDomain.TierDemo, nil
	case "lifetime":
		return grantsDomain.TierLifetime, nil
	default:
		return "", fmt.Errorf("invalid tier: %s (valid options: demo, lifetime)", tier)
	}
}
