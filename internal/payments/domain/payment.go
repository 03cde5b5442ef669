// Package domain contains the payment types consumed from the payment gateway.
// Payments are owned by the gateway; this module only reads them to decide
// whether an access grant should be issued.
package domain

// Payment statuses reported by the gateway. Only approved payments result in
// grant issuance.
const (
	StatusApproved = "approved"
)

// Payment is the gateway's view of a payment, reduced to the fields grant
// issuance needs.
type Payment struct {
	ID            string
	Status        string
	PayerEmail    string
	ReferenceCode string
	Amount        float64
}

// Approved reports whether the payment reached the approved state.
func (p *Payment) Approved() bool {
	return p.Status == StatusApproved
}

// WebhookNotification is the envelope the gateway posts to the webhook
// endpoint. Only the event type and the payment id are carried; the payment
// itself is always re-fetched from the gateway.
type WebhookNotification struct {
	Type string
	ID   string
}

// IsPayment reports whether the notification refers to a payment event.
func (n *WebhookNotification) IsPayment() bool {
	return n.Type == "payment"
}
