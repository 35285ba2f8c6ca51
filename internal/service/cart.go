package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// CartService implements the business logic for cart operations.
type CartService struct {
	cartRepo repository.CartRepository
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, logger *slog.Logger) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		logger:   logger,
	}
}

// Cart is a user's cart with its current total. Stock is not reserved here;
// lines may exceed available stock and only checkout rejects them.
type Cart struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// Add puts a product into the user's cart, merging with an existing line.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	if err := s.cartRepo.Add(ctx, userID, productID, quantity); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "cart line added",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return nil
}

// Get returns the user's cart with the running total at current prices.
func (s *CartService) Get(ctx context.Context, userID string) (*Cart, error) {
	items, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return &Cart{Items: items, Total: total}, nil
}

// Remove deletes a single product line from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.cartRepo.Remove(ctx, userID, productID); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "cart line removed",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}
