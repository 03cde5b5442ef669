// Package dto provides data transfer objects for grant HTTP responses.
package dto

import (
	"time"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// AccessGrantedResponse is returned on successful redemption.
type AccessGrantedResponse struct {
	Status      string `json:"status"`
	Tier        string `json:"tier"`
	ProductName string `json:"product_name"`
	DownloadURL string `json:"download_url"`
}

// ThanksResponse acknowledges a completed checkout.
type ThanksResponse struct {
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
}

// GrantResponse represents an access grant in admin API responses.
type GrantResponse struct {
	ID         string     `json:"id"`
	Token      string     `json:"token"`
	OwnerEmail string     `json:"owner_email"`
	PaymentID  string     `json:"payment_id"`
	Tier       string     `json:"tier"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Used       bool       `json:"used"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
}

// ListGrantsResponse represents a paginated list of grants in admin API responses.
type ListGrantsResponse struct {
	Data []GrantResponse `json:"data"`
}

// MapGrantToResponse converts a domain grant to an admin API response.
func MapGrantToResponse(grant *grantsDomain.AccessGrant) GrantResponse {
	return GrantResponse{
		ID:         grant.ID.String(),
		Token:      grant.Token,
		OwnerEmail: grant.OwnerEmail,
		PaymentID:  grant.PaymentID,
		Tier:       grant.Tier.String(),
		IssuedAt:   grant.IssuedAt,
		ExpiresAt:  grant.ExpiresAt,
		Used:       grant.Used,
		UsedAt:     grant.UsedAt,
	}
}

// MapGrantsToListResponse converts a slice of domain grants to a list response.
func MapGrantsToListResponse(grants []*grantsDomain.AccessGrant) ListGrantsResponse {
	data := make([]GrantResponse, 0, len(grants))
	for _, grant := range grants {
		data = append(data, MapGrantToResponse(grant))
	}

	return ListGrantsResponse{
		Data: data,
	}
}
