package usecase

import (
	"context"
	"errors"
	"time"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/metrics"
)

// issuerUseCaseWithMetrics decorates IssuerUseCase with metrics instrumentation.
type issuerUseCaseWithMetrics struct {
	next    IssuerUseCase
	metrics metrics.BusinessMetrics
}

// NewIssuerUseCaseWithMetrics wraps an IssuerUseCase with metrics recording.
func NewIssuerUseCaseWithMetrics(useCase IssuerUseCase, m metrics.BusinessMetrics) IssuerUseCase {
	return &issuerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for grant issuance operations. Redelivered events are
// tracked under their own status so duplicate webhook volume stays visible.
func (i *issuerUseCaseWithMetrics) Issue(
	ctx context.Context,
	paymentID, ownerEmail string,
	tier grantsDomain.Tier,
) (*grantsDomain.AccessGrant, bool, error) {
	start := time.Now()
	grant, created, err := i.next.Issue(ctx, paymentID, ownerEmail, tier)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !created:
		status = "duplicate"
	}

	i.metrics.RecordOperation(ctx, "grants", "grant_issue", status)
	i.metrics.RecordDuration(ctx, "grants", "grant_issue", time.Since(start), status)

	return grant, created, err
}

// redemptionUseCaseWithMetrics decorates RedemptionUseCase with metrics instrumentation.
type redemptionUseCaseWithMetrics struct {
	next    RedemptionUseCase
	metrics metrics.BusinessMetrics
}

// NewRedemptionUseCaseWithMetrics wraps a RedemptionUseCase with metrics recording.
func NewRedemptionUseCaseWithMetrics(useCase RedemptionUseCase, m metrics.BusinessMetrics) RedemptionUseCase {
	return &redemptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Redeem records metrics for grant redemption operations, labelling the
// expected terminal outcomes separately from real errors.
func (r *redemptionUseCaseWithMetrics) Redeem(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	start := time.Now()
	grant, err := r.next.Redeem(ctx, token)

	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, grantsDomain.ErrGrantNotFound):
		status = "not_found"
	case errors.Is(err, grantsDomain.ErrGrantAlreadyUsed):
		status = "already_used"
	case errors.Is(err, grantsDomain.ErrGrantExpired):
		status = "expired"
	default:
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "grants", "grant_redeem", status)
	r.metrics.RecordDuration(ctx, "grants", "grant_redeem", time.Since(start), status)

	return grant, err
}
