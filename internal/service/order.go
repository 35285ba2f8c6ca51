package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/event"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// OrderService implements the business logic for checkout and order
// management.
type OrderService struct {
	orderRepo repository.OrderRepository
	store     repository.CheckoutStore
	producer  *event.Producer
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	store repository.CheckoutStore,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		store:     store,
		producer:  producer,
		logger:    logger,
	}
}

// ListOrdersInput holds the parameters for listing orders.
type ListOrdersInput struct {
	Status  string
	Page    int
	PerPage int
}

// Checkout converts the user's cart into a pending order. Stock validation,
// price snapshotting, inventory adjustment, order creation, and cart
// clearing happen in one transaction inside the checkout store.
func (s *OrderService) Checkout(ctx context.Context, userID, address string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, apperrors.InvalidInput("shipping address is required")
	}

	order, err := s.store.Checkout(ctx, userID, address)
	if err != nil {
		return nil, err
	}

	// Publish order.created event (non-blocking on failure).
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total_price", order.TotalPrice.String()),
		slog.Int("item_count", len(order.Items)),
	)

	return order, nil
}

// ListByUser returns the given user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string, input ListOrdersInput) ([]domain.Order, int, error) {
	filter := repository.OrderFilter{
		UserID:  &userID,
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	if input.Status != "" {
		if !domain.IsValidStatus(input.Status) {
			return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", input.Status))
		}
		filter.Status = &input.Status
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list user orders: %w", err)
	}

	return orders, total, nil
}

// ListAll returns orders across all users, newest first. Staff only; the
// router enforces the role.
func (s *OrderService) ListAll(ctx context.Context, input ListOrdersInput) ([]domain.Order, int, error) {
	filter := repository.OrderFilter{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	if input.Status != "" {
		if !domain.IsValidStatus(input.Status) {
			return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", input.Status))
		}
		filter.Status = &input.Status
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list all orders: %w", err)
	}

	return orders, total, nil
}

// Get returns a single order. Customers can only see their own orders;
// staff can see any. A foreign order reads as not found rather than
// forbidden, so order ids are not probeable.
func (s *OrderService) Get(ctx context.Context, requesterID, requesterRole, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if requesterRole != domain.RoleStaff && order.UserID != requesterID {
		return nil, apperrors.NotFound("order", orderID)
	}

	return order, nil
}

// UpdateStatus changes an order's status. Staff only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !domain.IsValidStatus(status) {
		return apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	// Publish order.status_changed event (non-blocking on failure).
	if err := s.producer.PublishOrderStatusChanged(ctx, orderID, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID),
		slog.String("status", status),
	)

	return nil
}

// Delete removes an order and its items. Staff only.
func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "order deleted",
		slog.String("order_id", orderID),
	)

	return nil
}
