package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/database"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// CheckoutStore turns a user's cart into an order in a single serializable
// transaction. Product rows are additionally locked with SELECT ... FOR
// UPDATE, in product-id order, so two concurrent checkouts competing for the
// same stock serialize on the row locks instead of deadlocking.
type CheckoutStore struct {
	pool database.DBTX
}

// NewCheckoutStore creates a new PostgreSQL-backed checkout store.
func NewCheckoutStore(pool database.DBTX) *CheckoutStore {
	return &CheckoutStore{pool: pool}
}

// cartProductLine is a cart line joined with the locked product row.
type cartProductLine struct {
	productID string
	quantity  int
	price     decimal.Decimal
	available int
}

// Checkout atomically validates stock, snapshots the current product price
// for each line, adjusts inventory counters, inserts the order and its
// items, and clears the cart. Any failure rolls back every step.
//
// The price snapshot is the product's price at checkout time, not the price
// at the moment the line was added to the cart.
func (s *CheckoutStore) Checkout(ctx context.Context, userID string, address string) (*domain.Order, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lockQuery := `
		SELECT c.product_id, c.quantity, p.price, p.available_quantity
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.product_id
		FOR UPDATE OF p`

	rows, err := tx.Query(ctx, lockQuery, userID)
	if err != nil {
		return nil, txErr("load cart for checkout", err)
	}

	var lines []cartProductLine
	for rows.Next() {
		var l cartProductLine
		if err := rows.Scan(&l.productID, &l.quantity, &l.price, &l.available); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, txErr("iterate cart lines", err)
	}

	if len(lines) == 0 {
		return nil, apperrors.EmptyCart()
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domain.OrderStatusPending,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.available < l.quantity {
			return nil, &apperrors.InsufficientStockError{
				ProductID: l.productID,
				Requested: l.quantity,
				Available: l.available,
			}
		}

		item := domain.OrderItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ProductID:       l.productID,
			Quantity:        l.quantity,
			PriceAtPurchase: l.price,
		}
		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}
	order.TotalPrice = total

	stockQuery := `
		UPDATE products
		SET available_quantity = available_quantity - $1,
		    sold_quantity = sold_quantity + $1,
		    updated_at = $2
		WHERE id = $3`

	for _, l := range lines {
		if _, err := tx.Exec(ctx, stockQuery, l.quantity, now, l.productID); err != nil {
			return nil, txErr("adjust product stock", err)
		}
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, status, address, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID, order.UserID, order.Status, order.Address, order.TotalPrice, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return nil, txErr("insert order", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4, $5)`

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase,
		)
		if err != nil {
			return nil, txErr("insert order item", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return nil, txErr("clear cart", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, txErr("commit checkout transaction", err)
	}

	return order, nil
}

// txErr maps serialization failures to the retryable conflict error and
// wraps everything else with the failed operation.
func txErr(op string, err error) error {
	if isSerializationFailure(err) {
		return apperrors.Conflict("checkout conflicted with a concurrent transaction")
	}
	return fmt.Errorf("%s: %w", op, err)
}
