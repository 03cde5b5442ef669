// Package gateway implements the outbound integration with the payment
// gateway: payment lookup over its REST API and webhook signature
// verification.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/allisson/grants/internal/errors"
	paymentsDomain "github.com/allisson/grants/internal/payments/domain"
)

// Client fetches payments from the gateway. Webhook notifications carry only
// the payment id; the authoritative state always comes from this lookup.
type Client interface {
	GetPayment(ctx context.Context, id string) (*paymentsDomain.Payment, error)
}

// httpClient implements Client against the gateway's REST API.
type httpClient struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewClient creates a gateway client with the given base URL, bearer token,
// and request timeout.
func NewClient(baseURL, accessToken string, timeout time.Duration) Client {
	return &httpClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		client:      &http.Client{Timeout: timeout},
	}
}

// paymentPayload mirrors the gateway's payment resource.
type paymentPayload struct {
	ID     json.Number `json:"id"`
	Status string      `json:"status"`
	Payer  struct {
		Email string `json:"email"`
	} `json:"payer"`
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
}

// GetPayment retrieves a payment by id. Transport failures and gateway server
// errors map to ErrUpstreamLookup so callers can treat them as transient and
// rely on webhook redelivery.
func (h *httpClient) GetPayment(ctx context.Context, id string) (*paymentsDomain.Payment, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", h.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build payment request")
	}
	req.Header.Set("Authorization", "Bearer "+h.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(paymentsDomain.ErrUpstreamLookup, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, paymentsDomain.ErrPaymentNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, apperrors.Wrap(
			paymentsDomain.ErrUpstreamLookup,
			fmt.Sprintf("gateway answered %d", resp.StatusCode),
		)
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("gateway answered %d", resp.StatusCode),
		)
	}

	var payload paymentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(paymentsDomain.ErrUpstreamLookup, "failed to decode payment payload")
	}

	return &paymentsDomain.Payment{
		ID:            payload.ID.String(),
		Status:        payload.Status,
		PayerEmail:    payload.Payer.Email,
		ReferenceCode: payload.ExternalReference,
		Amount:        payload.TransactionAmount,
	}, nil
}
