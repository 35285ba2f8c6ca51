package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/database"
	apperrors "github.com/BUTnghiemtuc/MobiTechPro/pkg/errors"
)

// TagRepository implements repository.TagRepository using PostgreSQL.
type TagRepository struct {
	pool database.DBTX
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(pool database.DBTX) *TagRepository {
	return &TagRepository{pool: pool}
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `
		INSERT INTO tags (id, name, color, created_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)`

	_, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Color, t.CreatedBy, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("tag", "name", t.Name)
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	return nil
}

// List returns all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	query := `
		SELECT id, name, color, COALESCE(created_by::text, ''), created_at
		FROM tags
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}

	return tags, nil
}

// Delete removes a tag. Product links cascade away with it.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("tag", id)
	}

	return nil
}

// Assign links a tag to a product. An already-linked pair is left as is.
func (r *TagRepository) Assign(ctx context.Context, productID, tagID string) error {
	query := `
		INSERT INTO product_tags (product_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, tag_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, productID, tagID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
			if strings.Contains(pgErr.ConstraintName, "tag_id") {
				return apperrors.NotFound("tag", tagID)
			}
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("assign tag: %w", err)
	}

	return nil
}

// Unassign removes a tag from a product. Removing an absent link succeeds.
func (r *TagRepository) Unassign(ctx context.Context, productID, tagID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM product_tags WHERE product_id = $1 AND tag_id = $2`,
		productID, tagID,
	)
	if err != nil {
		return fmt.Errorf("unassign tag: %w", err)
	}

	return nil
}

// Stats returns every tag with the number of products carrying it, including
// tags with no products.
func (r *TagRepository) Stats(ctx context.Context) ([]domain.TagStat, error) {
	query := `
		SELECT t.id, t.name, t.color, COUNT(pt.product_id) AS product_count
		FROM tags t
		LEFT JOIN product_tags pt ON pt.tag_id = t.id
		GROUP BY t.id, t.name, t.color
		ORDER BY t.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.TagStat, 0)
	for rows.Next() {
		var s domain.TagStat
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.ProductCount); err != nil {
			return nil, fmt.Errorf("scan tag stat row: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag stat rows: %w", err)
	}

	return stats, nil
}
