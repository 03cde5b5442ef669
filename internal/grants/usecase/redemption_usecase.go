package usecase

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// redemptionUseCase implements RedemptionUseCase for consuming access grants.
type redemptionUseCase struct {
	grantRepo GrantRepository
	now       func() time.Time
}

// Redeem atomically validates and consumes a grant exactly once.
//
// The repository performs the read-check-mark sequence as a single conditional
// update, with expiry part of the same predicate; this method evaluates the
// redemption exactly once per call and never retries. A browser reload after
// a successful redemption observes ErrGrantAlreadyUsed, which is the intended
// anti-replay behavior.
func (r *redemptionUseCase) Redeem(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token cannot be empty")
	}

	return r.grantRepo.Redeem(ctx, token, r.now().UTC())
}

// NewRedemptionUseCase creates a new redemption use case instance.
func NewRedemptionUseCase(grantRepo GrantRepository) RedemptionUseCase {
	return &redemptionUseCase{
		grantRepo: grantRepo,
		now:       time.Now,
	}
}
