// Package http provides the webhook ingestion endpoint for payment
// notifications.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	grantsService "github.com/allisson/grants/internal/grants/service"
	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
	"github.com/allisson/grants/internal/notification"
	"github.com/allisson/grants/internal/payments/gateway"
	"github.com/allisson/grants/internal/payments/http/dto"
)

// Dispatcher enqueues delivery tasks for issued grants.
type Dispatcher interface {
	Dispatch(task notification.DeliveryTask) bool
}

// WebhookHandler ingests payment notifications and drives grant issuance.
type WebhookHandler struct {
	issuerUseCase grantsUseCase.IssuerUseCase
	classifier    grantsService.Classifier
	gatewayClient gateway.Client
	verifier      gateway.SignatureVerifier
	dispatcher    Dispatcher
	publicBaseURL string
	logger        *slog.Logger
}

// NewWebhookHandler creates a webhook handler with required dependencies.
func NewWebhookHandler(
	issuerUseCase grantsUseCase.IssuerUseCase,
	classifier grantsService.Classifier,
	gatewayClient gateway.Client,
	verifier gateway.SignatureVerifier,
	dispatcher Dispatcher,
	publicBaseURL string,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		issuerUseCase: issuerUseCase,
		classifier:    classifier,
		gatewayClient: gatewayClient,
		verifier:      verifier,
		dispatcher:    dispatcher,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Handle processes a payment notification.
// POST /v1/webhook
//
// The endpoint always acknowledges with 200 once the payload has been read:
// the gateway retries non-2xx responses aggressively and every failure here
// is either permanent (retrying cannot fix a bad signature) or made safe by
// the payment_id uniqueness constraint (redelivery after a transient failure
// issues nothing twice). Failures are logged, never surfaced.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("webhook payload malformed", slog.Any("error", err))
		h.acknowledge(c)
		return
	}

	notif := req.ToNotification()
	if !notif.IsPayment() {
		h.logger.Info("ignoring non-payment notification", slog.String("type", notif.Type))
		h.acknowledge(c)
		return
	}

	if err := h.verifier.Verify(
		c.GetHeader("x-signature"),
		c.GetHeader("x-request-id"),
		notif.ID,
	); err != nil {
		h.logger.Warn("webhook signature rejected",
			slog.String("payment_id", notif.ID),
			slog.Any("error", err),
		)
		h.acknowledge(c)
		return
	}

	payment, err := h.gatewayClient.GetPayment(c.Request.Context(), notif.ID)
	if err != nil {
		h.logger.Error("payment lookup failed",
			slog.String("payment_id", notif.ID),
			slog.Any("error", err),
		)
		h.acknowledge(c)
		return
	}

	if !payment.Approved() {
		h.logger.Info("ignoring payment not in approved state",
			slog.String("payment_id", payment.ID),
			slog.String("status", payment.Status),
		)
		h.acknowledge(c)
		return
	}

	tier := h.classifier.Classify(payment.ReferenceCode, payment.Amount)

	grant, created, err := h.issuerUseCase.Issue(c.Request.Context(), payment.ID, payment.PayerEmail, tier)
	if err != nil {
		h.logger.Error("grant issuance failed",
			slog.String("payment_id", payment.ID),
			slog.Any("error", err),
		)
		h.acknowledge(c)
		return
	}

	if !created {
		h.logger.Info("payment already has a grant, skipping dispatch",
			slog.String("payment_id", payment.ID),
		)
		h.acknowledge(c)
		return
	}

	task := notification.DeliveryTask{
		OwnerEmail: grant.OwnerEmail,
		Tier:       grant.Tier,
		Link:       fmt.Sprintf("%s/v1/access?token=%s", h.publicBaseURL, grant.Token),
	}
	if !h.dispatcher.Dispatch(task) {
		h.logger.Warn("notification dispatch rejected",
			slog.String("payment_id", payment.ID),
		)
	}

	h.logger.Info("grant issued",
		slog.String("payment_id", payment.ID),
		slog.String("grant_id", grant.ID.String()),
		slog.String("tier", grant.Tier.String()),
	)
	h.acknowledge(c)
}

func (h *WebhookHandler) acknowledge(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
