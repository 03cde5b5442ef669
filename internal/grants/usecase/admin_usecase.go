package usecase

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// adminUseCase implements AdminUseCase for grant administration and maintenance.
type adminUseCase struct {
	grantRepo GrantRepository
}

// List retrieves grants ordered by issuance time with pagination.
func (a *adminUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*grantsDomain.AccessGrant, error) {
	return a.grantRepo.List(ctx, offset, limit)
}

// GetByToken retrieves a single grant by its token without consuming it.
func (a *adminUseCase) GetByToken(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	return a.grantRepo.GetByToken(ctx, token)
}

// CleanupExpired deletes grants whose validity window ended more than the
// given number of days ago. Retention is an operational concern, not part of
// the grant lifecycle: a used or expired grant is logically dead either way.
func (a *adminUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("days must be non-negative, got %d", days))
	}

	before := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return a.grantRepo.DeleteExpired(ctx, before, dryRun)
}

// NewAdminUseCase creates a new admin use case instance.
func NewAdminUseCase(grantRepo GrantRepository) AdminUseCase {
	return &adminUseCase{grantRepo: grantRepo}
}
