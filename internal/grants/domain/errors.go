// Package domain defines core domain models and errors for access grants.
package domain

import (
	"github.com/allisson/grants/internal/errors"
)

// Grant-specific error definitions.
var (
	// ErrGrantNotFound indicates no grant exists for the presented token.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "grant not found")

	// ErrGrantAlreadyUsed indicates the grant was already redeemed.
	ErrGrantAlreadyUsed = errors.Wrap(errors.ErrForbidden, "grant already used")

	// ErrGrantExpired indicates the grant's validity window has passed.
	ErrGrantExpired = errors.Wrap(errors.ErrForbidden, "grant expired")

	// ErrDuplicatePayment indicates a grant already exists for the payment id.
	// Benign: upstream gateways redeliver notifications.
	ErrDuplicatePayment = errors.Wrap(errors.ErrConflict, "grant already issued for payment")

	// ErrTokenCollision indicates the generated token already exists; the store
	// rejects on collision rather than silently overwriting.
	ErrTokenCollision = errors.Wrap(errors.ErrConflict, "token collision")
)
