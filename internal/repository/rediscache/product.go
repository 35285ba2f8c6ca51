package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/repository"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/pagination"
)

const keyPrefix = "product:"

// ProductRepository wraps another product repository with a Redis cache-aside
// layer for single-product reads. Cache failures degrade to the inner
// repository rather than failing the request.
type ProductRepository struct {
	inner  repository.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProductRepository creates a caching decorator around the given product
// repository.
func NewProductRepository(inner repository.ProductRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Create delegates to the inner repository.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.inner.Create(ctx, p)
}

// GetByID returns the cached product if present, otherwise loads it from the
// inner repository and caches the result.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := keyPrefix + id

	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// A corrupt entry falls through to the source of truth.
		r.logger.WarnContext(ctx, "dropping unreadable product cache entry",
			slog.String("product_id", id),
		)
		_ = r.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WarnContext(ctx, "product cache read failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.WarnContext(ctx, "product cache write failed",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	return p, nil
}

// List delegates to the inner repository. List results are not cached: the
// catalog changes on every checkout via sold/available counters.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	return r.inner.List(ctx, params)
}

// Update delegates to the inner repository and invalidates the cached entry.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if err := r.inner.Update(ctx, p); err != nil {
		return err
	}
	return r.Invalidate(ctx, p.ID)
}

// Delete delegates to the inner repository and invalidates the cached entry.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	return r.Invalidate(ctx, id)
}

// Invalidate removes a product from the cache. Catalog writes call this so
// the next read repopulates from Postgres; checkout never touches the cache,
// so stock moved by checkout stays stale for at most the configured TTL.
func (r *ProductRepository) Invalidate(ctx context.Context, id string) error {
	key := keyPrefix + id
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del product: %w", err)
	}
	return nil
}
