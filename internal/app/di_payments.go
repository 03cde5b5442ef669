package app

import (
	"github.com/allisson/grants/internal/payments/gateway"
)

// GatewayClient returns the payment gateway lookup client.
func (c *Container) GatewayClient() gateway.Client {
	c.gatewayClientInit.Do(func() {
		c.gatewayClient = gateway.NewClient(
			c.config.GatewayBaseURL,
			c.config.GatewayAccessToken,
			c.config.GatewayTimeout,
		)
	})
	return c.gatewayClient
}

// SignatureVerifier returns the webhook signature verifier.
// Verification is disabled when no webhook secret is configured.
func (c *Container) SignatureVerifier() gateway.SignatureVerifier {
	c.signatureVerifierInit.Do(func() {
		c.signatureVerifier = gateway.NewSignatureVerifier(c.config.GatewayWebhookSecret)
	})
	return c.signatureVerifier
}
