package domain

import (
	"errors"
)

// Tier defines the product class a grant authorizes.
type Tier string

const (
	TierDemo     Tier = "demo"
	TierLifetime Tier = "lifetime"
)

// Validate checks if the tier is valid.
func (t Tier) Validate() error {
	switch t {
	case TierDemo, TierLifetime:
		return nil
	default:
		return errors.New("invalid tier")
	}
}

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}
