package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/database"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// Create inserts a new brand.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	query := `
		INSERT INTO brands (id, name, color, bg_gradient, logo_url, image_url, link, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Color, b.BgGradient, b.LogoURL, b.ImageURL, b.Link, b.DisplayOrder, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "name", b.Name)
		}
		return fmt.Errorf("insert brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by its ID.
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	query := `
		SELECT id, name, color, bg_gradient, logo_url, image_url, link, display_order, is_active, created_at, updated_at
		FROM brands
		WHERE id = $1`

	var b domain.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Color, &b.BgGradient, &b.LogoURL, &b.ImageURL, &b.Link, &b.DisplayOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}

	return &b, nil
}

// List returns all brands ordered for display.
func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	query := `
		SELECT id, name, color, bg_gradient, logo_url, image_url, link, display_order, is_active, created_at, updated_at
		FROM brands
		ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Color, &b.BgGradient, &b.LogoURL, &b.ImageURL, &b.Link, &b.DisplayOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}

// Update modifies an existing brand.
func (r *BrandRepository) Update(ctx context.Context, b *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $1, color = $2, bg_gradient = $3, logo_url = $4, image_url = $5,
		    link = $6, display_order = $7, is_active = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.pool.Exec(ctx, query,
		b.Name, b.Color, b.BgGradient, b.LogoURL, b.ImageURL, b.Link, b.DisplayOrder, b.IsActive, time.Now().UTC(), b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "name", b.Name)
		}
		return fmt.Errorf("update brand: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", b.ID)
	}

	return nil
}

// Delete removes a brand. Products keep their rows with brand_id nulled.
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", id)
	}

	return nil
}
