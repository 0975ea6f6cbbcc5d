package product

import (
	"context"
	"errors"

	"kisaan-be/internal/logger"
	"kisaan-be/internal/store"

	"go.uber.org/zap"
)

// Service defines the business logic for store products.
type Service interface {
	CreateProduct(ctx context.Context, sellerID uint, p *Product) (*Product, error)
	GetProduct(ctx context.Context, uuid string) (*Product, error)
	ListStoreProducts(ctx context.Context, storeID uint, opts ListOptions) ([]*Product, error)
	UpdateProduct(ctx context.Context, sellerID uint, p *Product) (*Product, error)

	CreateVariant(ctx context.Context, sellerID uint, productUUID string, v *Variant) (*Variant, error)
	ListProductVariants(ctx context.Context, productUUID string) ([]*Variant, error)
	UpdateVariant(ctx context.Context, sellerID uint, v *Variant) (*Variant, error)
	DeleteVariant(ctx context.Context, sellerID uint, uuid string) error
}

type service struct {
	repo     Repository
	storeSvc store.Service
}

func NewService(repo Repository, storeSvc store.Service) Service {
	return &service{repo: repo, storeSvc: storeSvc}
}

func (s *service) validate(p *Product) error {
	if p.Name == "" {
		return errors.New("product name cannot be empty")
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, sellerID uint, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.Uint("store_id", p.StoreID),
	)
	log.Info("CreateProduct started")

	if _, err := s.storeSvc.CheckOwnership(ctx, p.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	if err := s.validate(p); err != nil {
		return nil, err
	}

	if p.Status == "" {
		p.Status = StatusDraft
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("CreateProduct success", zap.String("uuid", created.UUID))
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, uuid string) (*Product, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *service) ListStoreProducts(ctx context.Context, storeID uint, opts ListOptions) ([]*Product, error) {
	return s.repo.ListByStore(ctx, storeID, opts)
}

func (s *service) validateVariant(v *Variant) error {
	if v.Title == "" {
		return errors.New("variant title cannot be empty")
	}
	if v.Price != nil && *v.Price < 0 {
		return ErrInvalidPrice
	}
	if v.InventoryQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *service) CreateVariant(ctx context.Context, sellerID uint, productUUID string, v *Variant) (*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateVariant"),
		zap.String("product_uuid", productUUID),
	)

	p, err := s.repo.GetByUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, p.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	if err := s.validateVariant(v); err != nil {
		return nil, err
	}

	v.ProductID = p.ID
	created, err := s.repo.CreateVariant(ctx, v)
	if err != nil {
		log.Error("failed to create variant", zap.Error(err))
		return nil, err
	}

	log.Info("CreateVariant success", zap.String("uuid", created.UUID))
	return created, nil
}

func (s *service) ListProductVariants(ctx context.Context, productUUID string) ([]*Variant, error) {
	p, err := s.repo.GetByUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, p.ID)
}

func (s *service) UpdateVariant(ctx context.Context, sellerID uint, v *Variant) (*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateVariant"),
		zap.String("uuid", v.UUID),
	)

	current, err := s.repo.GetVariant(ctx, v.UUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, current.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	if err := s.validateVariant(v); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateVariant(ctx, v)
	if err != nil {
		log.Error("failed to update variant", zap.Error(err))
		return nil, err
	}

	return updated, nil
}

func (s *service) DeleteVariant(ctx context.Context, sellerID uint, uuid string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteVariant"),
		zap.String("uuid", uuid),
	)

	current, err := s.repo.GetVariant(ctx, uuid)
	if err != nil {
		return err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, current.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return err
	}

	if err := s.repo.DeleteVariant(ctx, uuid); err != nil {
		log.Error("failed to delete variant", zap.Error(err))
		return err
	}

	log.Info("DeleteVariant success")
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, sellerID uint, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("uuid", p.UUID),
	)

	current, err := s.repo.GetByUUID(ctx, p.UUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, current.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	if err := s.validate(p); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateProduct success", zap.String("uuid", updated.UUID))
	return updated, nil
}
