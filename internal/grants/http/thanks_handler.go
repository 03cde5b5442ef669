package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/grants/internal/grants/http/dto"
)

// ThanksHandler acknowledges a completed checkout. The access link itself is
// delivered by email; this endpoint only tells the buyer to look for it.
type ThanksHandler struct{}

// NewThanksHandler creates a thanks handler.
func NewThanksHandler() *ThanksHandler {
	return &ThanksHandler{}
}

// Handle returns the post-checkout acknowledgment.
// GET /v1/thanks?payment_id=...
func (h *ThanksHandler) Handle(c *gin.Context) {
	paymentID := c.DefaultQuery("payment_id", "N/A")

	c.JSON(http.StatusOK, dto.ThanksResponse{
		PaymentID: paymentID,
		Message:   "Payment approved. Your single-use access link was sent to your email; check your inbox and spam folder.",
	})
}
