package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/grants/usecase/mocks"
)

// recordingMetrics captures recorded statuses for assertions.
type recordingMetrics struct {
	operations []string
	durations  []string
}

func (r *recordingMetrics) RecordOperation(_ context.Context, _, _, status string) {
	r.operations = append(r.operations, status)
}

func (r *recordingMetrics) RecordDuration(
	_ context.Context,
	_, _ string,
	_ time.Duration,
	status string,
) {
	r.durations = append(r.durations, status)
}

func TestIssuerUseCaseWithMetrics_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessStatus", func(t *testing.T) {
		grantRepo := new(mocks.MockGrantRepository)
		tokenGenerator := new(mocks.MockTokenGenerator)
		recorder := &recordingMetrics{}
		useCase := NewIssuerUseCaseWithMetrics(
			NewIssuerUseCase(grantRepo, tokenGenerator, 24*time.Hour),
			recorder,
		)

		tokenGenerator.On("Generate").Return("dG9rZW4", nil)
		grantRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessGrant")).Return(nil)

		_, created, err := useCase.Issue(ctx, "PAY-123", "buyer@example.com", grantsDomain.TierDemo)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, []string{"success"}, recorder.operations)
		assert.Equal(t, []string{"success"}, recorder.durations)
	})

	t.Run("DuplicateStatus", func(t *testing.T) {
		grantRepo := new(mocks.MockGrantRepository)
		tokenGenerator := new(mocks.MockTokenGenerator)
		recorder := &recordingMetrics{}
		useCase := NewIssuerUseCaseWithMetrics(
			NewIssuerUseCase(grantRepo, tokenGenerator, 24*time.Hour),
			recorder,
		)

		existing := &grantsDomain.AccessGrant{Token: "ZXhpc3Rpbmc", PaymentID: "PAY-123"}
		tokenGenerator.On("Generate").Return("dG9rZW4", nil)
		grantRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessGrant")).
			Return(grantsDomain.ErrDuplicatePayment)
		grantRepo.On("GetByPaymentID", ctx, "PAY-123").Return(existing, nil)

		_, created, err := useCase.Issue(ctx, "PAY-123", "buyer@example.com", grantsDomain.TierDemo)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, []string{"duplicate"}, recorder.operations)
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		grantRepo := new(mocks.MockGrantRepository)
		tokenGenerator := new(mocks.MockTokenGenerator)
		recorder := &recordingMetrics{}
		useCase := NewIssuerUseCaseWithMetrics(
			NewIssuerUseCase(grantRepo, tokenGenerator, 24*time.Hour),
			recorder,
		)

		tokenGenerator.On("Generate").Return("dG9rZW4", nil)
		grantRepo.On("Create", ctx, mock.AnythingOfType("*domain.AccessGrant")).
			Return(errors.New("connection refused"))

		_, _, err := useCase.Issue(ctx, "PAY-123", "buyer@example.com", grantsDomain.TierDemo)

		require.Error(t, err)
		assert.Equal(t, []string{"error"}, recorder.operations)
	})
}

func TestRedemptionUseCaseWithMetrics_Redeem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		repoErr        error
		expectedStatus string
	}{
		{name: "Success", repoErr: nil, expectedStatus: "success"},
		{name: "NotFound", repoErr: grantsDomain.ErrGrantNotFound, expectedStatus: "not_found"},
		{name: "AlreadyUsed", repoErr: grantsDomain.ErrGrantAlreadyUsed, expectedStatus: "already_used"},
		{name: "Expired", repoErr: grantsDomain.ErrGrantExpired, expectedStatus: "expired"},
		{name: "UnexpectedError", repoErr: errors.New("connection refused"), expectedStatus: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grantRepo := new(mocks.MockGrantRepository)
			recorder := &recordingMetrics{}
			useCase := NewRedemptionUseCaseWithMetrics(NewRedemptionUseCase(grantRepo), recorder)

			if tt.repoErr == nil {
				redeemed := &grantsDomain.AccessGrant{Token: "dG9rZW4", Used: true}
				grantRepo.On("Redeem", ctx, "dG9rZW4", mock.AnythingOfType("time.Time")).
					Return(redeemed, nil)
			} else {
				grantRepo.On("Redeem", ctx, "dG9rZW4", mock.AnythingOfType("time.Time")).
					Return(nil, tt.repoErr)
			}

			_, err := useCase.Redeem(ctx, "dG9rZW4")

			if tt.repoErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.repoErr)
			}
			assert.Equal(t, []string{tt.expectedStatus}, recorder.operations)
			assert.Equal(t, []string{tt.expectedStatus}, recorder.durations)
		})
	}
}
