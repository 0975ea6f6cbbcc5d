package category

import (
	"context"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for store categories.
type Service interface {
	GetCategories(ctx context.Context, storeID uint, filter *string, limit, page *int32) ([]*Category, error)
	AddCategory(ctx context.Context, storeID uint, name, slug string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories retrieves categories for one store
func (s *service) GetCategories(ctx context.Context, storeID uint, filter *string, limit, page *int32) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
		zap.Uint("store_id", storeID),
	)
	log.Info("GetCategories started")

	categories, err := s.repo.GetCategories(ctx, storeID, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) AddCategory(ctx context.Context, storeID uint, name, slug string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.Uint("store_id", storeID),
		zap.String("name", name),
	)
	log.Info("AddCategory started")

	c, err := s.repo.AddCategory(ctx, storeID, name, slug)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.Uint("category_id", c.ID))
	return c, nil
}
