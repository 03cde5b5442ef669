package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/grants/internal/errors"
)

// parseGrantID parses a textual UUID coming from a CHAR(36) column.
func parseGrantID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to parse grant id")
	}
	return parsed, nil
}
