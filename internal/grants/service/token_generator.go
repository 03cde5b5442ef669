// Package service provides domain services for access grants: token
// generation and product-tier classification.
package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/grants/internal/errors"
)

// tokenLength is the token size in bytes (128 bits). Collision probability is
// treated as negligible; the store still rejects on collision.
const tokenLength = 16

// TokenGenerator creates opaque access tokens.
type TokenGenerator interface {
	Generate() (string, error)
}

// tokenGenerator implements TokenGenerator with crypto/rand.
type tokenGenerator struct{}

// Generate creates a new cryptographically secure 16-byte random token.
// The token is base64 URL-encoded for easy transmission and storage.
func (t *tokenGenerator) Generate() (string, error) {
	randomBytes := make([]byte, tokenLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}

	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// NewTokenGenerator creates a new TokenGenerator instance.
func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{}
}
