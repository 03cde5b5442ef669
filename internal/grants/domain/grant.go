// Package domain defines the core domain models for access grants. An access
// grant is a single-use, time-boxed capability that authorizes exactly one
// product retrieval after a confirmed payment.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessGrant represents a single-use access capability issued for a confirmed payment.
type AccessGrant struct {
	// ID is the unique identifier for this grant.
	ID uuid.UUID
	// Token is the opaque random value the buyer presents to redeem the grant.
	Token string
	// OwnerEmail is the buyer address the access link is delivered to.
	OwnerEmail string
	// PaymentID is the upstream payment event identifier; unique per grant.
	PaymentID string
	// Tier is the product tier resolved at issuance, immutable thereafter.
	Tier Tier
	// IssuedAt is the UTC timestamp when the grant was created.
	IssuedAt time.Time
	// ExpiresAt is the UTC timestamp after which the grant cannot be redeemed.
	ExpiresAt time.Time
	// Used reports whether the grant has been redeemed.
	Used bool
	// UsedAt is the UTC timestamp of redemption (nil while unredeemed).
	UsedAt *time.Time
}

// Redeemable reports whether the grant can still be redeemed at the given time.
func (g *AccessGrant) Redeemable(now time.Time) bool {
	return !g.Used && !now.After(g.ExpiresAt)
}

// Expired reports whether the grant's validity window has passed.
func (g *AccessGrant) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}
