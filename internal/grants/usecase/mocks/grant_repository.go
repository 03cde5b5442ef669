// Package mocks provides mock implementations for testing use cases and handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

// Create mocks the Create method of GrantRepository.
func (m *MockGrantRepository) Create(ctx context.Context, grant *grantsDomain.AccessGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// GetByToken mocks the GetByToken method of GrantRepository.
func (m *MockGrantRepository) GetByToken(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantsDomain.AccessGrant), args.Error(1)
}

// GetByPaymentID mocks the GetByPaymentID method of GrantRepository.
func (m *MockGrantRepository) GetByPaymentID(
	ctx context.Context,
	paymentID string,
) (*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantsDomain.AccessGrant), args.Error(1)
}

// Redeem mocks the Redeem method of GrantRepository.
func (m *MockGrantRepository) Redeem(
	ctx context.Context,
	token string,
	now time.Time,
) (*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantsDomain.AccessGrant), args.Error(1)
}

// List mocks the List method of GrantRepository.
func (m *MockGrantRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grantsDomain.AccessGrant), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of GrantRepository.
func (m *MockGrantRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, before, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
