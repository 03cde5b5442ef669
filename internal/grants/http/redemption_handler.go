package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/grants/http/dto"
	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
	"github.com/allisson/grants/internal/httputil"
)

// Product describes the deliverable behind a tier.
type Product struct {
	Name string
	URL  string
}

// ProductCatalog maps tiers to their deliverables. Resolved from config at
// startup; redemption only reads it.
type ProductCatalog map[grantsDomain.Tier]Product

// RedemptionHandler handles single-use access link redemption.
type RedemptionHandler struct {
	redemptionUseCase grantsUseCase.RedemptionUseCase
	catalog           ProductCatalog
	logger            *slog.Logger
}

// NewRedemptionHandler creates a redemption handler with required dependencies.
func NewRedemptionHandler(
	redemptionUseCase grantsUseCase.RedemptionUseCase,
	catalog ProductCatalog,
	logger *slog.Logger,
) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionUseCase: redemptionUseCase,
		catalog:           catalog,
		logger:            logger,
	}
}

// Handle redeems an access token.
// GET /v1/access?token=...
//
// Missing, unknown, expired, and already-used tokens all produce the same 403
// payload so a probing client cannot tell which tokens exist.
func (h *RedemptionHandler) Handle(c *gin.Context) {
	token := c.Query("token")

	grant, err := h.redemptionUseCase.Redeem(c.Request.Context(), token)
	if err != nil {
		switch {
		case apperrors.Is(err, grantsDomain.ErrGrantNotFound),
			apperrors.Is(err, grantsDomain.ErrGrantAlreadyUsed),
			apperrors.Is(err, grantsDomain.ErrGrantExpired),
			apperrors.Is(err, apperrors.ErrInvalidInput):
			h.logger.Info("redemption denied", slog.Any("error", err))
			h.deny(c)
		default:
			httputil.HandleErrorGin(c, err, h.logger)
		}
		return
	}

	product := h.catalog[grant.Tier]

	h.logger.Info("grant redeemed",
		slog.String("grant_id", grant.ID.String()),
		slog.String("tier", grant.Tier.String()),
	)

	c.JSON(http.StatusOK, dto.AccessGrantedResponse{
		Status:      "granted",
		Tier:        grant.Tier.String(),
		ProductName: product.Name,
		DownloadURL: product.URL,
	})
}

// deny writes the unified rejection payload.
func (h *RedemptionHandler) deny(c *gin.Context) {
	c.JSON(http.StatusForbidden, httputil.ErrorResponse{
		Error:   "access_denied",
		Message: "Token invalid, expired, or already used",
	})
}
