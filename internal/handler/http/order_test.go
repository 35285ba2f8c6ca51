package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/auth"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/event"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/service"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/httputil"
	pkgkafka "github.com/BUTnghiemtuc/MobiTechPro/pkg/kafka"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/middleware"
)

const (
	testCustomerID = "9f4a1c2e-8d11-4f7a-bb1e-6a2f0c9d3e41"
	testStaffID    = "3c8d5b7a-2e90-4c1d-9f6b-8e4a1d0c2b53"
	testOrderID    = "550e8400-e29b-41d4-a716-446655440001"
	testProductID  = "550e8400-e29b-41d4-a716-446655440020"
)

// --- Mock OrderRepository ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock CheckoutStore ---

type mockCheckoutStore struct {
	mock.Mock
}

func (m *mockCheckoutStore) Checkout(ctx context.Context, userID string, address string) (*domain.Order, error) {
	args := m.Called(ctx, userID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testEventProducer builds a producer against a broker address that is not
// running; publishes fail and the service only logs them.
func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func testOrderHandler(repo *mockOrderRepository, store *mockCheckoutStore) *OrderHandler {
	svc := service.NewOrderService(repo, store, testEventProducer(), testLogger())
	return NewOrderHandler(svc, testLogger())
}

// setupOrderRouter creates a chi router matching the production route layout,
// auth guards included.
func setupOrderRouter(handler *OrderHandler, jwtManager *auth.JWTManager) *chi.Mux {
	authenticate := middleware.Auth(tokenValidator(jwtManager))
	staffOnly := middleware.RequireRole(domain.RoleStaff)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/checkout", handler.Checkout)
			r.Get("/orders", handler.ListMyOrders)
			r.Get("/orders/{id}", handler.GetOrder)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(authenticate, staffOnly)
			r.Get("/", handler.ListAllOrders)
			r.Put("/{id}/status", handler.UpdateOrderStatus)
			r.Delete("/{id}", handler.DeleteOrder)
		})
	})
	return r
}

// asCustomer attaches a bearer token for the test customer account.
func asCustomer(t *testing.T, jwtManager *auth.JWTManager, req *http.Request) {
	t.Helper()
	token, err := jwtManager.GenerateToken(testCustomerID, "linh.tran", domain.RoleCustomer)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

// asStaff attaches a bearer token for the test staff account.
func asStaff(t *testing.T, jwtManager *auth.JWTManager, req *http.Request) {
	t.Helper()
	token, err := jwtManager.GenerateToken(testStaffID, "ops.admin", domain.RoleStaff)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

// decodeResponse reads the response body into the httputil.Response struct.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

type paginatedBody struct {
	Data       []map[string]interface{} `json:"data"`
	TotalCount int                      `json:"total_count"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	TotalPages int                      `json:"total_pages"`
	HasNext    bool                     `json:"has_next"`
}

func decodePaginated(t *testing.T, rec *httptest.ResponseRecorder) paginatedBody {
	t.Helper()
	var resp paginatedBody
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// placedOrder returns a realistic order as produced by a checkout.
func placedOrder() *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		ID:         testOrderID,
		UserID:     testCustomerID,
		Status:     domain.OrderStatusPending,
		Address:    "42 Hang Bai Street, Hoan Kiem, Hanoi",
		TotalPrice: decimal.RequireFromString("449.48"),
		Items: []domain.OrderItem{
			{
				ID:              "550e8400-e29b-41d4-a716-446655440010",
				OrderID:         testOrderID,
				ProductID:       testProductID,
				Quantity:        2,
				PriceAtPurchase: decimal.RequireFromString("99.99"),
			},
			{
				ID:              "550e8400-e29b-41d4-a716-446655440011",
				OrderID:         testOrderID,
				ProductID:       "550e8400-e29b-41d4-a716-446655440021",
				Quantity:        1,
				PriceAtPurchase: decimal.RequireFromString("249.50"),
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func checkoutJSON(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(CheckoutRequest{Address: "42 Hang Bai Street, Hoan Kiem, Hanoi"})
	require.NoError(t, err)
	return b
}

// ============================================================================
// POST /api/v1/checkout
// ============================================================================

func TestCheckout_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	store.On("Checkout", mock.Anything, testCustomerID, "42 Hang Bai Street, Hoan Kiem, Hanoi").
		Return(placedOrder(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, testCustomerID, data["user_id"])
	assert.Equal(t, "Pending", data["status"])
	assert.Equal(t, "449.48", data["total_price"])
	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)

	store.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	store.On("Checkout", mock.Anything, testCustomerID, mock.Anything).
		Return(nil, apperrors.EmptyCart())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	store.On("Checkout", mock.Anything, testCustomerID, mock.Anything).
		Return(nil, &apperrors.InsufficientStockError{
			ProductID: testProductID,
			Requested: 3,
			Available: 1,
		})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, testProductID)
}

func TestCheckout_ConcurrentConflict(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	store.On("Checkout", mock.Anything, testCustomerID, mock.Anything).
		Return(nil, apperrors.Conflict("checkout conflicted with a concurrent transaction"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestCheckout_ValidationError_MissingAddress(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotNil(t, resp.Error.Fields)

	store.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_InvalidJSON(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader([]byte(`{invalid json`)))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestCheckout_MissingToken(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	store.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_WrongContentType(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(checkoutJSON(t)))
	req.Header.Set("Content-Type", "text/plain")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ============================================================================
// GET /api/v1/orders
// ============================================================================

func TestListMyOrders_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	userID := testCustomerID
	expectedFilter := repository.OrderFilter{UserID: &userID, Page: 1, PerPage: 20}
	repo.On("List", mock.Anything, expectedFilter).
		Return([]domain.Order{*placedOrder()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodePaginated(t, rec)
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PerPage)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, testCustomerID, resp.Data[0]["user_id"])

	repo.AssertExpectations(t)
}

func TestListMyOrders_WithStatusAndPagination(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	userID := testCustomerID
	status := domain.OrderStatusShipped
	expectedFilter := repository.OrderFilter{UserID: &userID, Status: &status, Page: 2, PerPage: 10}
	repo.On("List", mock.Anything, expectedFilter).
		Return([]domain.Order{}, 25, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=Shipped&page=2&per_page=10", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodePaginated(t, rec)
	assert.Equal(t, 25, resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)

	repo.AssertExpectations(t)
}

func TestListMyOrders_InvalidStatusFilter(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=Delivered", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// ============================================================================
// GET /api/v1/orders/{id}
// ============================================================================

func TestGetOrder_OwnOrder(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	repo.On("GetByID", mock.Anything, testOrderID).Return(placedOrder(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+testOrderID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, testOrderID, data["id"])

	repo.AssertExpectations(t)
}

func TestGetOrder_ForeignOrderReadsAsNotFound(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	foreign := placedOrder()
	foreign.UserID = "some-other-user"
	repo.On("GetByID", mock.Anything, testOrderID).Return(foreign, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+testOrderID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestGetOrder_InvalidUUID(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// ============================================================================
// GET /api/v1/admin/orders
// ============================================================================

func TestListAllOrders_Staff(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	expectedFilter := repository.OrderFilter{Page: 1, PerPage: 20}
	repo.On("List", mock.Anything, expectedFilter).
		Return([]domain.Order{*placedOrder()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodePaginated(t, rec)
	assert.Equal(t, 1, resp.TotalCount)

	repo.AssertExpectations(t)
}

func TestListAllOrders_CustomerForbidden(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// ============================================================================
// PUT /api/v1/admin/orders/{id}/status
// ============================================================================

func TestUpdateOrderStatus_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.OrderStatusShipped).Return(nil)

	body := []byte(`{"status":"Shipped"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	body := []byte(`{"status":"OnTheWay"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.OrderStatusCancelled).
		Return(apperrors.NotFound("order", testOrderID))

	body := []byte(`{"status":"Cancelled"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertExpectations(t)
}

// ============================================================================
// DELETE /api/v1/admin/orders/{id}
// ============================================================================

func TestDeleteOrder_Success(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	repo.On("Delete", mock.Anything, testOrderID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/orders/"+testOrderID, nil)
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteOrder_CustomerForbidden(t *testing.T) {
	repo := new(mockOrderRepository)
	store := new(mockCheckoutStore)
	jwtManager := testJWTManager()
	router := setupOrderRouter(testOrderHandler(repo, store), jwtManager)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/orders/"+testOrderID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
