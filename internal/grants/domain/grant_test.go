package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessGrant_Redeemable(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		grant    AccessGrant
		expected bool
	}{
		{
			name:     "unused and unexpired",
			grant:    AccessGrant{Used: false, ExpiresAt: now.Add(time.Hour)},
			expected: true,
		},
		{
			name:     "already used",
			grant:    AccessGrant{Used: true, ExpiresAt: now.Add(time.Hour)},
			expected: false,
		},
		{
			name:     "expired but unused",
			grant:    AccessGrant{Used: false, ExpiresAt: now.Add(-time.Hour)},
			expected: false,
		},
		{
			name:     "expires exactly now",
			grant:    AccessGrant{Used: false, ExpiresAt: now},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.grant.Redeemable(now))
		})
	}
}

func TestAccessGrant_Expired(t *testing.T) {
	now := time.Now().UTC()

	grant := AccessGrant{ExpiresAt: now.Add(-25 * time.Hour)}
	assert.True(t, grant.Expired(now))

	grant = AccessGrant{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, grant.Expired(now))
}

func TestTier_Validate(t *testing.T) {
	assert.NoError(t, TierDemo.Validate())
	assert.NoError(t, TierLifetime.Validate())
	assert.Error(t, Tier("premium").Validate())
	assert.Error(t, Tier("").Validate())
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "demo", TierDemo.String())
	assert.Equal(t, "lifetime", TierLifetime.String())
}
