// Package dto provides data transfer objects for webhook ingestion.
package dto

import (
	"encoding/json"

	paymentsDomain "github.com/allisson/grants/internal/payments/domain"
)

// WebhookRequest is the notification envelope posted by the payment gateway.
// The data id arrives as a number or a string depending on the event source,
// so it is decoded as json.Number.
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// ToNotification converts the request to a domain notification.
func (r *WebhookRequest) ToNotification() *paymentsDomain.WebhookNotification {
	return &paymentsDomain.WebhookNotification{
		Type: r.Type,
		ID:   r.Data.ID.String(),
	}
}
