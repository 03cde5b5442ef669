package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// MockIssuerUseCase is a mock implementation of IssuerUseCase for testing.
type MockIssuerUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of IssuerUseCase.
func (m *MockIssuerUseCase) Issue(
	ctx context.Context,
	paymentID, ownerEmail string,
	tier grantsDomain.Tier,
) (*grantsDomain.AccessGrant, bool, error) {
	args := m.Called(ctx, paymentID, ownerEmail, tier)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*grantsDomain.AccessGrant), args.Bool(1), args.Error(2)
}

// MockAdminUseCase is a mock implementation of AdminUseCase for testing.
type MockAdminUseCase struct {
	mock.Mock
}

// List mocks the List method of AdminUseCase.
func (m *MockAdminUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grantsDomain.AccessGrant), args.Error(1)
}

// GetByToken mocks the GetByToken method of AdminUseCase.
func (m *MockAdminUseCase) GetByToken(
	ctx context.Context,
	token string,
) (*grantsDomain.AccessGrant, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grantsDomain.AccessGrant), args.Error(1)
}

// CleanupExpired mocks the CleanupExpired method of AdminUseCase.
func (m *MockAdminUseCase) CleanupExpired(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
