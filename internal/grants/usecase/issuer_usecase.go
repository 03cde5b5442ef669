package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	grantsService "github.com/allisson/grants/internal/grants/service"
	appValidation "github.com/allisson/grants/internal/validation"
)

// issuerUseCase implements IssuerUseCase for creating access grants.
type issuerUseCase struct {
	grantRepo      GrantRepository
	tokenGenerator grantsService.TokenGenerator
	grantTTL       time.Duration
}

// Issue creates an access grant for a confirmed payment.
//
// The insert is guarded by the payment_id uniqueness constraint: a
// redelivered webhook maps to ErrDuplicatePayment, in which case the existing
// grant is re-read and returned with created=false so the caller skips
// notification dispatch. The duplicate check lives in storage rather than in
// memory because the single-winner contract must hold across process
// instances.
func (i *issuerUseCase) Issue(
	ctx context.Context,
	paymentID, ownerEmail string,
	tier grantsDomain.Tier,
) (*grantsDomain.AccessGrant, bool, error) {
	if err := i.validateIssueInput(paymentID, ownerEmail, tier); err != nil {
		return nil, false, err
	}

	token, err := i.tokenGenerator.Generate()
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	grant := &grantsDomain.AccessGrant{
		ID:         uuid.Must(uuid.NewV7()),
		Token:      token,
		OwnerEmail: ownerEmail,
		PaymentID:  paymentID,
		Tier:       tier,
		IssuedAt:   now,
		ExpiresAt:  now.Add(i.grantTTL),
		Used:       false,
	}

	err = i.grantRepo.Create(ctx, grant)
	if err == nil {
		return grant, true, nil
	}

	if errors.Is(err, grantsDomain.ErrDuplicatePayment) {
		existing, getErr := i.grantRepo.GetByPaymentID(ctx, paymentID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}

	return nil, false, err
}

// validateIssueInput validates the issuance parameters:
// - Payment ID must be present, not blank and carry no surrounding whitespace
// - Owner email must be present and a valid email address
// - Tier must be a known product tier
//
// Payment IDs are the idempotency key, so a padded variant of an already
// seen ID must be rejected rather than stored as a second grant.
func (i *issuerUseCase) validateIssueInput(
	paymentID, ownerEmail string,
	tier grantsDomain.Tier,
) error {
	err := validation.Errors{
		"payment_id": validation.Validate(paymentID,
			validation.Required.Error("payment id is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
		),
		"owner_email": validation.Validate(ownerEmail,
			validation.Required.Error("owner email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
	}.Filter()
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if err := tier.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	return nil
}

// NewIssuerUseCase creates a new issuer use case instance.
func NewIssuerUseCase(
	grantRepo GrantRepository,
	tokenGenerator grantsService.TokenGenerator,
	grantTTL time.Duration,
) IssuerUseCase {
	return &issuerUseCase{
		grantRepo:      grantRepo,
		tokenGenerator: tokenGenerator,
		grantTTL:       grantTTL,
	}
}
