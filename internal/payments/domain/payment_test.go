package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentApproved(t *testing.T) {
	assert.True(t, (&Payment{Status: StatusApproved}).Approved())
	assert.False(t, (&Payment{Status: "pending"}).Approved())
	assert.False(t, (&Payment{Status: "rejected"}).Approved())
}

func TestWebhookNotificationIsPayment(t *testing.T) {
	assert.True(t, (&WebhookNotification{Type: "payment"}).IsPayment())
	assert.False(t, (&WebhookNotification{Type: "plan"}).IsPayment())
	assert.False(t, (&WebhookNotification{}).IsPayment())
}
