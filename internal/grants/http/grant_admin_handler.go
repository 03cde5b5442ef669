package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/grants/internal/grants/http/dto"
	grantsUseCase "github.com/allisson/grants/internal/grants/usecase"
	"github.com/allisson/grants/internal/httputil"
)

// GrantAdminHandler handles administrative grant lookups.
type GrantAdminHandler struct {
	adminUseCase grantsUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewGrantAdminHandler creates an admin handler with required dependencies.
func NewGrantAdminHandler(
	adminUseCase grantsUseCase.AdminUseCase,
	logger *slog.Logger,
) *GrantAdminHandler {
	return &GrantAdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// ListHandler lists grants ordered by issuance time.
// GET /v1/grants?offset=0&limit=50
func (h *GrantAdminHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grants, err := h.adminUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantsToListResponse(grants))
}

// GetHandler retrieves a single grant by token without consuming it.
// GET /v1/grants/:token
func (h *GrantAdminHandler) GetHandler(c *gin.Context) {
	token := c.Param("token")

	grant, err := h.adminUseCase.GetByToken(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantToResponse(grant))
}
