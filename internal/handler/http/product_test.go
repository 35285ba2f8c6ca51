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
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/pagination"
)

// --- Mock ProductRepository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupProductRouter(repo *mockProductRepository, jwtManager *auth.JWTManager) *chi.Mux {
	svc := service.NewProductService(repo, testEventProducer(), testLogger())
	handler := NewProductHandler(svc, testLogger())
	authenticate := middleware.Auth(tokenValidator(jwtManager))
	staffOnly := middleware.RequireRole(domain.RoleStaff)

	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authenticate, staffOnly)
			r.Post("/", handler.CreateProduct)
			r.Put("/{id}", handler.UpdateProduct)
			r.Delete("/{id}", handler.DeleteProduct)
		})
	})
	return r
}

func catalogProduct() *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:                testProductID,
		Title:             "Galaxy S25 Ultra 256GB",
		Slug:              "galaxy-s25-ultra-256gb",
		Description:       "Flagship phone, titanium frame.",
		Price:             decimal.RequireFromString("799.00"),
		ImageURL:          "https://cdn.example.com/products/s25-ultra.jpg",
		AvailableQuantity: 14,
		SoldQuantity:      86,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ============================================================================
// GET /api/v1/products
// ============================================================================

func TestListProducts_Success(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo, testJWTManager())

	repo.On("List", mock.Anything, pagination.Params{Page: 1, PerPage: 20}).
		Return([]domain.Product{*catalogProduct()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodePaginated(t, rec)
	assert.Equal(t, 1, resp.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "galaxy-s25-ultra-256gb", resp.Data[0]["slug"])
	assert.Equal(t, "799.00", resp.Data[0]["price"])

	repo.AssertExpectations(t)
}

// ============================================================================
// GET /api/v1/products/{id}
// ============================================================================

func TestGetProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo, testJWTManager())

	repo.On("GetByID", mock.Anything, testProductID).Return(catalogProduct(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, testProductID, data["id"])
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo, testJWTManager())

	repo.On("GetByID", mock.Anything, testProductID).
		Return(nil, apperrors.NotFound("product", testProductID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_InvalidUUID(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupProductRouter(repo, testJWTManager())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

// ============================================================================
// POST /api/v1/products
// ============================================================================

func TestCreateProduct_Staff(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := []byte(`{"title":"Redmi Note 15 Pro","price":"299.99","available_quantity":50}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "redmi-note-15-pro", data["slug"])
	assert.Equal(t, testStaffID, data["created_by"])

	repo.AssertExpectations(t)
}

func TestCreateProduct_CustomerForbidden(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	body := []byte(`{"title":"Redmi Note 15 Pro","price":"299.99"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_NonPositivePrice(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	body := []byte(`{"title":"Freebie","price":"0","available_quantity":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ============================================================================
// PUT /api/v1/products/{id}
// ============================================================================

func TestUpdateProduct_Staff(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	repo.On("GetByID", mock.Anything, testProductID).Return(catalogProduct(), nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := []byte(`{"price":"749.00"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+testProductID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "749.00", data["price"])

	repo.AssertExpectations(t)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	repo.On("GetByID", mock.Anything, testProductID).
		Return(nil, apperrors.NotFound("product", testProductID))

	body := []byte(`{"price":"749.00"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+testProductID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// DELETE /api/v1/products/{id}
// ============================================================================

func TestDeleteProduct_Staff(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	repo.On("Delete", mock.Anything, testProductID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+testProductID, nil)
	asStaff(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteProduct_CustomerForbidden(t *testing.T) {
	repo := new(mockProductRepository)
	jwtManager := testJWTManager()
	router := setupProductRouter(repo, jwtManager)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+testProductID, nil)
	asCustomer(t, jwtManager, req)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
