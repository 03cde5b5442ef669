// Package mocks provides mock implementations for testing the webhook handler.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/notification"
	paymentsDomain "github.com/allisson/grants/internal/payments/domain"
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

// MockClassifier is a mock implementation of Classifier for testing.
type MockClassifier struct {
	mock.Mock
}

// Classify mocks the Classify method of Classifier.
func (m *MockClassifier) Classify(referenceCode string, amount float64) grantsDomain.Tier {
	args := m.Called(referenceCode, amount)
	return args.Get(0).(grantsDomain.Tier)
}

// MockGatewayClient is a mock implementation of the gateway Client for testing.
type MockGatewayClient struct {
	mock.Mock
}

// GetPayment mocks the GetPayment method of Client.
func (m *MockGatewayClient) GetPayment(
	ctx context.Context,
	id string,
) (*paymentsDomain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentsDomain.Payment), args.Error(1)
}

// MockSignatureVerifier is a mock implementation of SignatureVerifier for testing.
type MockSignatureVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of SignatureVerifier.
func (m *MockSignatureVerifier) Verify(header, requestID, dataID string) error {
	args := m.Called(header, requestID, dataID)
	return args.Error(0)
}

// Enabled mocks the Enabled method of SignatureVerifier.
func (m *MockSignatureVerifier) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockDispatcher is a mock implementation of Dispatcher for testing.
type MockDispatcher struct {
	mock.Mock
}

// Dispatch mocks the Dispatch method of Dispatcher.
func (m *MockDispatcher) Dispatch(task notification.DeliveryTask) bool {
	args := m.Called(task)
	return args.Bool(0)
}
