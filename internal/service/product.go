package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/event"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/pagination"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/slug"
)

// ProductService implements the business logic for catalog products.
type ProductService struct {
	productRepo repository.ProductRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Title             string
	Description       string
	Price             decimal.Decimal
	ImageURL          string
	AvailableQuantity int
	BrandID           string
	CreatedBy         string
}

// UpdateProductInput holds the parameters for updating a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	Title             *string
	Description       *string
	Price             *decimal.Decimal
	ImageURL          *string
	AvailableQuantity *int
	BrandID           *string
}

// Create adds a new product to the catalog. The slug is derived from the
// title.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return nil, apperrors.InvalidInput("price must be positive")
	}
	if input.AvailableQuantity < 0 {
		return nil, apperrors.InvalidInput("available quantity must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:                uuid.New().String(),
		Title:             input.Title,
		Slug:              slug.Generate(input.Title),
		Description:       input.Description,
		Price:             input.Price,
		ImageURL:          input.ImageURL,
		AvailableQuantity: input.AvailableQuantity,
		SoldQuantity:      0,
		BrandID:           input.BrandID,
		CreatedBy:         input.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// Get retrieves a product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List returns a page of products, newest first, with the total count.
func (s *ProductService) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// Update modifies a product. Changing the title regenerates the slug.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.InvalidInput("title must not be empty")
		}
		product.Title = *input.Title
		product.Slug = slug.Generate(*input.Title)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() || input.Price.IsZero() {
			return nil, apperrors.InvalidInput("price must be positive")
		}
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			return nil, apperrors.InvalidInput("available quantity must not be negative")
		}
		product.AvailableQuantity = *input.AvailableQuantity
	}
	if input.BrandID != nil {
		product.BrandID = *input.BrandID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	// Publish product.updated event (non-blocking on failure).
	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
