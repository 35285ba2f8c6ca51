package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/database"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	pool database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool database.DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

// Add upserts a cart line: inserting the same product again increments the
// existing quantity.
func (r *CartRepository) Add(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		INSERT INTO cart_lines (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			quantity = cart_lines.quantity + $3`

	_, err := r.pool.Exec(ctx, query, userID, productID, quantity, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("add cart line: %w", err)
	}

	return nil
}

// Get returns the user's cart lines joined with current product data,
// oldest line first.
func (r *CartRepository) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	query := `
		SELECT c.product_id, p.title, p.image_url, p.price, c.quantity, p.available_quantity, c.added_at
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.added_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ProductID,
			&item.Title,
			&item.ImageURL,
			&item.UnitPrice,
			&item.Quantity,
			&item.AvailableQuantity,
			&item.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}

	return items, nil
}

// Remove deletes a single cart line.
func (r *CartRepository) Remove(ctx context.Context, userID, productID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("cart line", productID)
	}

	return nil
}
