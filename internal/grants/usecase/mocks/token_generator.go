package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockTokenGenerator is a mock implementation of TokenGenerator for testing.
type MockTokenGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method of TokenGenerator.
func (m *MockTokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
