package store

import (
	"context"
	"errors"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for seller stores.
type Service interface {
	CreateStore(ctx context.Context, ownerID uint, name, slug string, description *string) (*Store, error)
	GetStore(ctx context.Context, id uint) (*Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*Store, error)
	ListSellerStores(ctx context.Context, ownerID uint) ([]*Store, error)
	// CheckOwnership returns ErrNotOwner when the store exists but belongs
	// to a different seller.
	CheckOwnership(ctx context.Context, storeID, sellerID uint) (*Store, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStore(ctx context.Context, ownerID uint, name, slug string, description *string) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStore"),
		zap.Uint("owner_id", ownerID),
	)
	log.Info("CreateStore started")

	if name == "" {
		return nil, errors.New("store name cannot be empty")
	}
	if slug == "" {
		return nil, errors.New("store slug cannot be empty")
	}

	created, err := s.repo.Create(ctx, &Store{
		OwnerID:     ownerID,
		Name:        name,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		log.Error("failed to create store", zap.Error(err))
		return nil, err
	}

	log.Info("CreateStore success", zap.Uint("store_id", created.ID))
	return created, nil
}

func (s *service) GetStore(ctx context.Context, id uint) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetStoreBySlug(ctx context.Context, slug string) (*Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) ListSellerStores(ctx context.Context, ownerID uint) ([]*Store, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) CheckOwnership(ctx context.Context, storeID, sellerID uint) (*Store, error) {
	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != sellerID {
		return nil, ErrNotOwner
	}
	return st, nil
}
