package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	grantsDomain "github.com/allisson/grants/internal/grants/domain"
	"github.com/allisson/grants/internal/grants/http/dto"
	"github.com/allisson/grants/internal/grants/http/mocks"
)

func newAdminRouter(useCase *mocks.MockAdminUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewGrantAdminHandler(useCase, logger)

	router := gin.New()
	router.GET("/v1/grants", handler.ListHandler)
	router.GET("/v1/grants/:token", handler.GetHandler)
	return router
}

func adminTestGrant() *grantsDomain.AccessGrant {
	now := time.Now().UTC()
	return &grantsDomain.AccessGrant{
		ID:         uuid.Must(uuid.NewV7()),
		Token:      "dGVzdC10b2tlbi0xMjM",
		OwnerEmail: "buyer@example.com",
		PaymentID:  "PAY-123",
		Tier:       grantsDomain.TierDemo,
		IssuedAt:   now,
		ExpiresAt:  now.Add(24 * time.Hour),
	}
}

func TestGrantAdminHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := new(mocks.MockAdminUseCase)
		router := newAdminRouter(useCase)

		grants := []*grantsDomain.AccessGrant{adminTestGrant(), adminTestGrant()}
		useCase.On("List", mock.Anything, 0, 50).Return(grants, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/grants", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListGrantsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, "buyer@example.com", response.Data[0].OwnerEmail)
	})

	t.Run("CustomPagination", func(t *testing.T) {
		useCase := new(mocks.MockAdminUseCase)
		router := newAdminRouter(useCase)

		useCase.On("List", mock.Anything, 10, 20).Return([]*grantsDomain.AccessGrant{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/grants?offset=10&limit=20", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		useCase := new(mocks.MockAdminUseCase)
		router := newAdminRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/grants?limit=0", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "List")
	})
}

func TestGrantAdminHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := new(mocks.MockAdminUseCase)
		router := newAdminRouter(useCase)

		grant := adminTestGrant()
		useCase.On("GetByToken", mock.Anything, grant.Token).Return(grant, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/grants/"+grant.Token, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GrantResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, grant.ID.String(), response.ID)
		assert.Equal(t, grant.PaymentID, response.PaymentID)
		assert.False(t, response.Used)
	})

	t.Run("NotFound", func(t *testing.T) {
		useCase := new(mocks.MockAdminUseCase)
		router := newAdminRouter(useCase)

		useCase.On("GetByToken", mock.Anything, "bWlzc2luZw").
			Return(nil, grantsDomain.ErrGrantNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/grants/bWlzc2luZw", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestThanksHandler_Handle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/thanks", NewThanksHandler().Handle)

	t.Run("WithPaymentID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/thanks?payment_id=PAY-123", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ThanksResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "PAY-123", response.PaymentID)
		assert.Contains(t, response.Message, "access link")
	})

	t.Run("WithoutPaymentID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/thanks", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ThanksResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "N/A", response.PaymentID)
	})
}
