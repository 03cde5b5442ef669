package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	grantsMocks "github.com/allisson/grants/internal/grants/usecase/mocks"
	"github.com/allisson/grants/internal/notification"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(task notification.DeliveryTask) bool {
	args := m.Called(task)
	return args.Bool(0)
}

func TestRunIssueGrant(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	baseURL := "https://shop.example.com"

	grant := &grantsDomain.AccessGrant{
		ID:         uuid.Must(uuid.NewV7()),
		Token:      "test-token",
		OwnerEmail: "buyer@example.com",
		PaymentID:  "pay-1",
		Tier:       grantsDomain.TierLifetime,
		IssuedAt:   time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().Add(24 * time.Hour),
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		mockUseCase.On("Issue", ctx, "pay-1", "buyer@example.com", grantsDomain.TierLifetime).
			Return(grant, true, nil)
		dispatcher := &mockDispatcher{}

		var out bytes.Buffer
		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &out,
			"pay-1", "buyer@example.com", "lifetime", false, baseURL, "text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Grant issued successfully")
		require.Contains(t, out.String(), "test-token")
		require.Contains(t, out.String(), baseURL+"/v1/access?token=test-token")
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		mockUseCase.On("Issue", ctx, "pay-1", "buyer@example.com", grantsDomain.TierLifetime).
			Return(grant, true, nil)
		dispatcher := &mockDispatcher{}

		var out bytes.Buffer
		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &out,
			"pay-1", "buyer@example.com", "lifetime", false, baseURL, "json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"token": "test-token"`)
		require.Contains(t, out.String(), `"created": true`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("notify-enqueues-delivery", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		mockUseCase.On("Issue", ctx, "pay-1", "buyer@example.com", grantsDomain.TierLifetime).
			Return(grant, true, nil)
		dispatcher := &mockDispatcher{}
		dispatcher.On("Dispatch", notification.DeliveryTask{
			OwnerEmail: "buyer@example.com",
			Tier:       grantsDomain.TierLifetime,
			Link:       baseURL + "/v1/access?token=test-token",
		}).Return(true)

		var out bytes.Buffer
		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &out,
			"pay-1", "buyer@example.com", "lifetime", true, baseURL, "text",
		)

		require.NoError(t, err)
		dispatcher.AssertExpectations(t)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("notify-skipped-for-existing-grant", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		mockUseCase.On("Issue", ctx, "pay-1", "buyer@example.com", grantsDomain.TierLifetime).
			Return(grant, false, nil)
		dispatcher := &mockDispatcher{}

		var out bytes.Buffer
		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &out,
			"pay-1", "buyer@example.com", "lifetime", true, baseURL, "text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "already existed")
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-tier", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		dispatcher := &mockDispatcher{}

		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &bytes.Buffer{},
			"pay-1", "buyer@example.com", "platinum", false, baseURL, "text",
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tier")
	})

	t.Run("issuance-error", func(t *testing.T) {
		mockUseCase := &grantsMocks.MockIssuerUseCase{}
		mockUseCase.On("Issue", ctx, "pay-1", "buyer@example.com", grantsDomain.TierDemo).
			Return(nil, false, errors.New("boom"))
		dispatcher := &mockDispatcher{}

		err := RunIssueGrant(
			ctx, mockUseCase, dispatcher, logger, &bytes.Buffer{},
			"pay-1", "buyer@example.com", "demo", false, baseURL, "text",
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to issue grant")
		mockUseCase.AssertExpectations(t)
	})
}
