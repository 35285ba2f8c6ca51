package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// BrandService implements the business logic for storefront brands.
type BrandService struct {
	brandRepo repository.BrandRepository
	logger    *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(brandRepo repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{
		brandRepo: brandRepo,
		logger:    logger,
	}
}

// CreateBrandInput holds the parameters for creating a brand.
type CreateBrandInput struct {
	Name         string
	Color        string
	BgGradient   string
	LogoURL      string
	ImageURL     string
	Link         string
	DisplayOrder int
	IsActive     bool
}

// UpdateBrandInput holds the parameters for updating a brand. Nil fields are
// left unchanged.
type UpdateBrandInput struct {
	Name         *string
	Color        *string
	BgGradient   *string
	LogoURL      *string
	ImageURL     *string
	Link         *string
	DisplayOrder *int
	IsActive     *bool
}

// Create adds a new brand.
func (s *BrandService) Create(ctx context.Context, input CreateBrandInput) (*domain.Brand, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	now := time.Now().UTC()
	brand := &domain.Brand{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Color:        input.Color,
		BgGradient:   input.BgGradient,
		LogoURL:      input.LogoURL,
		ImageURL:     input.ImageURL,
		Link:         input.Link,
		DisplayOrder: input.DisplayOrder,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.String("brand_id", brand.ID),
		slog.String("name", brand.Name),
	)

	return brand, nil
}

// Get retrieves a brand by its ID.
func (s *BrandService) Get(ctx context.Context, id string) (*domain.Brand, error) {
	return s.brandRepo.GetByID(ctx, id)
}

// List returns all brands in display order.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// Update modifies a brand.
func (s *BrandService) Update(ctx context.Context, id string, input UpdateBrandInput) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		brand.Name = *input.Name
	}
	if input.Color != nil {
		brand.Color = *input.Color
	}
	if input.BgGradient != nil {
		brand.BgGradient = *input.BgGradient
	}
	if input.LogoURL != nil {
		brand.LogoURL = *input.LogoURL
	}
	if input.ImageURL != nil {
		brand.ImageURL = *input.ImageURL
	}
	if input.Link != nil {
		brand.Link = *input.Link
	}
	if input.DisplayOrder != nil {
		brand.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("update brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand updated",
		slog.String("brand_id", brand.ID),
	)

	return brand, nil
}

// Delete removes a brand. Products referencing it keep their rows with a
// nulled brand.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "brand deleted",
		slog.String("brand_id", id),
	)

	return nil
}
