package repository

import (
	"context"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/pagination"
)

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	UserID  *string
	Status  *string
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its items into the store atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier, including items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the given filter along with the total count,
	// newest first.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id string, status string) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id string) error
}

// CheckoutStore converts a user's cart into an order in a single
// transaction against products, orders, order_items and cart_lines.
type CheckoutStore interface {
	// Checkout atomically validates stock, snapshots prices, adjusts
	// inventory counters, creates the order with its items, and clears the
	// cart. On any failure the store is left untouched.
	Checkout(ctx context.Context, userID string, address string) (*domain.Order, error)
}

// CartRepository defines cart line persistence operations.
type CartRepository interface {
	// Add upserts a cart line: a new product inserts a line, an existing
	// one increments its quantity.
	Add(ctx context.Context, userID, productID string, quantity int) error

	// Get returns the user's cart lines joined with current product data.
	Get(ctx context.Context, userID string) ([]domain.CartItem, error)

	// Remove deletes a single cart line.
	Remove(ctx context.Context, userID, productID string) error
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository defines brand persistence operations.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

// TagRepository defines tag persistence operations, including the
// product many-to-many assignment.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	List(ctx context.Context) ([]domain.Tag, error)
	Delete(ctx context.Context, id string) error

	// Assign links a tag to a product. Assigning an already-linked pair is
	// a no-op.
	Assign(ctx context.Context, productID, tagID string) error

	// Unassign removes a tag from a product. Removing an absent link is a
	// no-op.
	Unassign(ctx context.Context, productID, tagID string) error

	// Stats returns every tag with its current product count.
	Stats(ctx context.Context) ([]domain.TagStat, error)
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update modifies a user's profile fields.
	Update(ctx context.Context, user *domain.User) error

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// List returns accounts newest first with the total count.
	List(ctx context.Context, params pagination.Params) ([]domain.User, int, error)

	// Delete removes an account.
	Delete(ctx context.Context, id string) error
}
