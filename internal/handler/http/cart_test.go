package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/auth"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/service"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/middleware"
)

// --- Mock CartRepository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Add(ctx context.Context, userID, productID string, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *mockCartRepository) Remove(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func testCartHandler(repo *mockCartRepository) *CartHandler {
	svc := service.NewCartService(repo, testLogger())
	return NewCartHandler(svc, testLogger())
}

func setupCartRouter(handler *CartHandler, jwtManager *auth.JWTManager) *chi.Mux {
	authenticate := middleware.Auth(tokenValidator(jwtManager))

	r := chi.NewRouter()
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON, authenticate)
		r.Get("/", handler.GetCart)
		r.Post("/items", handler.AddCartItem)
		r.Delete("/items/{productID}", handler.RemoveCartItem)
	})
	return r
}

func sampleCartItems() []domain.CartItem {
	now := time.Now().UTC()
	return []domain.CartItem{
		{
			ProductID:         testProductID,
			Title:             "Galaxy S25 Ultra 256GB",
			UnitPrice:         decimal.RequireFromString("799.00"),
			Quantity:          2,
			AvailableQuantity: 14,
			AddedAt:           now,
		},
		{
			ProductID:         "550e8400-e29b-41d4-a716-446655440021",
			Title:             "USB-C 45W Charger",
			UnitPrice:         decimal.RequireFromString("24.90"),
			Quantity:          1,
			AvailableQuantity: 230,
			AddedAt:           now,
		},
	}
}

// ============================================================================
// GET /api/v1/cart
// ============================================================================

func TestGetCart_Success(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Get", mock.Anything, testCustomerID).Return(sampleCartItems(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	// 2 * 799.00 + 24.90
	assert.Equal(t, "1622.90", data["total"])
	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)

	repo.AssertExpectations(t)
}

func TestGetCart_Empty(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Get", mock.Anything, testCustomerID).Return([]domain.CartItem{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "0", data["total"])
}

func TestGetCart_MissingToken(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

// ============================================================================
// POST /api/v1/cart/items
// ============================================================================

func TestAddCartItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Add", mock.Anything, testCustomerID, testProductID, 2).Return(nil)

	body := []byte(`{"product_id":"` + testProductID + `","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestAddCartItem_ZeroQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	body := []byte(`{"product_id":"` + testProductID + `","quantity":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddCartItem_MalformedProductID(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	body := []byte(`{"product_id":"not-a-uuid","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Add", mock.Anything, testCustomerID, testProductID, 1).
		Return(apperrors.NotFound("product", testProductID))

	body := []byte(`{"product_id":"` + testProductID + `","quantity":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// ============================================================================
// DELETE /api/v1/cart/items/{productID}
// ============================================================================

func TestRemoveCartItem_Success(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Remove", mock.Anything, testCustomerID, testProductID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+testProductID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestRemoveCartItem_NotInCart(t *testing.T) {
	repo := new(mockCartRepository)
	jwtManager := testJWTManager()
	router := setupCartRouter(testCartHandler(repo), jwtManager)

	repo.On("Remove", mock.Anything, testCustomerID, testProductID).
		Return(apperrors.NotFound("cart line", testProductID))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+testProductID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
