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

// TagService implements the business logic for product tags.
type TagService struct {
	tagRepo repository.TagRepository
	logger  *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository, logger *slog.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// CreateTagInput holds the parameters for creating a tag.
type CreateTagInput struct {
	Name      string
	Color     string
	CreatedBy string
}

// Create adds a new tag.
func (s *TagService) Create(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	tag := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Color:     input.Color,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.InfoContext(ctx, "tag created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name),
	)

	return tag, nil
}

// List returns all tags sorted by name.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Delete removes a tag and all of its product links.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tag deleted", slog.String("tag_id", id))
	return nil
}

// Assign links a tag to a product. Re-assigning an existing link is a no-op.
func (s *TagService) Assign(ctx context.Context, productID, tagID string) error {
	if err := s.tagRepo.Assign(ctx, productID, tagID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tag assigned",
		slog.String("product_id", productID),
		slog.String("tag_id", tagID),
	)

	return nil
}

// Unassign removes a tag from a product.
func (s *TagService) Unassign(ctx context.Context, productID, tagID string) error {
	if err := s.tagRepo.Unassign(ctx, productID, tagID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tag unassigned",
		slog.String("product_id", productID),
		slog.String("tag_id", tagID),
	)

	return nil
}

// Stats returns every tag with its current product count.
func (s *TagService) Stats(ctx context.Context) ([]domain.TagStat, error) {
	stats, err := s.tagRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("tag stats: %w", err)
	}
	return stats, nil
}
