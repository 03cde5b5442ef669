package domain

import (
	"github.com/allisson/grants/internal/errors"
)

// Payment gateway error definitions.
var (
	// ErrUpstreamLookup indicates the gateway could not be reached or answered
	// with a server error. Transient: the gateway redelivers the notification
	// and the payment_id constraint makes redelivery safe.
	ErrUpstreamLookup = errors.Wrap(errors.ErrUnavailable, "payment lookup failed")

	// ErrPaymentNotFound indicates the gateway has no payment with the given id.
	ErrPaymentNotFound = errors.Wrap(errors.ErrNotFound, "payment not found")

	// ErrInvalidSignature indicates the webhook signature header failed
	// verification.
	ErrInvalidSignature = errors.Wrap(errors.ErrForbidden, "invalid webhook signature")
)
