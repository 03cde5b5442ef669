package service

import (
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// Classifier maps a confirmed payment's attributes to a product tier.
type Classifier interface {
	Classify(referenceCode string, amount float64) grantsDomain.Tier
}

// ClassifierConfig holds the tier resolution policy.
type ClassifierConfig struct {
	// LifetimeCode is the reference code marking a lifetime purchase.
	LifetimeCode string
	// DemoCode is the reference code marking a demo purchase.
	DemoCode string
	// AmountCutoff is the amount above which code-less payments resolve to lifetime.
	AmountCutoff float64
}

// classifier implements the two-stage tier resolution policy: an explicit
// reference code wins; without one, the amount heuristic decides. Upstream
// payloads are not guaranteed to carry the reference code, so both stages
// must be kept.
type classifier struct {
	config ClassifierConfig
}

// Classify resolves the product tier for a payment. Deterministic and total:
// an unrecognized reference code falls back to demo so that a malformed
// payload under-delivers rather than over-delivers.
func (c *classifier) Classify(referenceCode string, amount float64) grantsDomain.Tier {
	switch referenceCode {
	case c.config.LifetimeCode:
		return grantsDomain.TierLifetime
	case c.config.DemoCode:
		return grantsDomain.TierDemo
	case "":
		if amount > c.config.AmountCutoff {
			return grantsDomain.TierLifetime
		}
		return grantsDomain.TierDemo
	default:
		return grantsDomain.TierDemo
	}
}

// NewClassifier creates a new Classifier with the given policy.
func NewClassifier(config ClassifierConfig) Classifier {
	return &classifier{config: config}
}
