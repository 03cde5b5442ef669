// Package usecase defines the interfaces and implementations for the access
// grant lifecycle: idempotent issuance after a confirmed payment and atomic
// single-use redemption.
package usecase

import (
	"context"
	"time"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// GrantRepository defines the interface for AccessGrant persistence operations.
//
// Create must behave as insert-if-absent on payment_id (ErrDuplicatePayment on
// redelivery) and Redeem must be a storage-level conditional update so that
// concurrent redemption attempts on the same token have exactly one winner.
type GrantRepository interface {
	Create(ctx context.Context, grant *grantsDomain.AccessGrant) error
	GetByToken(ctx context.Context, token string) (*grantsDomain.AccessGrant, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*grantsDomain.AccessGrant, error)
	Redeem(ctx context.Context, token string, now time.Time) (*grantsDomain.AccessGrant, error)
	List(ctx context.Context, offset, limit int) ([]*grantsDomain.AccessGrant, error)
	DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// IssuerUseCase defines the interface for grant issuance business logic.
type IssuerUseCase interface {
	// Issue creates an access grant for a confirmed payment. The returned bool
	// reports first issuance: false means a grant already existed for the
	// payment id and the existing grant is returned unchanged. Notification
	// dispatch is the caller's responsibility and only appropriate when the
	// grant was created by this call.
	Issue(ctx context.Context, paymentID, ownerEmail string, tier grantsDomain.Tier) (*grantsDomain.AccessGrant, bool, error)
}

// RedemptionUseCase defines the interface for grant redemption business logic.
type RedemptionUseCase interface {
	// Redeem atomically validates and consumes a grant exactly once. Terminal
	// outcomes are ErrGrantNotFound, ErrGrantAlreadyUsed and ErrGrantExpired.
	Redeem(ctx context.Context, token string) (*grantsDomain.AccessGrant, error)
}

// AdminUseCase defines the interface for grant administration operations.
type AdminUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*grantsDomain.AccessGrant, error)
	GetByToken(ctx context.Context, token string) (*grantsDomain.AccessGrant, error)
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
