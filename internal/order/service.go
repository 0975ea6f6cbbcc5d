package order

import (
	"context"

	"kisaan-be/internal/logger"
	"kisaan-be/internal/store"

	"go.uber.org/zap"
)

// Service validates and applies order status lifecycle changes on behalf of
// the owning seller.
type Service interface {
	ListStoreOrders(ctx context.Context, sellerID, storeID uint, status *OrderStatus) ([]*Order, error)
	GetOrder(ctx context.Context, sellerID uint, uuid string) (*Order, error)
	UpdateStatus(ctx context.Context, sellerID uint, uuid string, patch StatusUpdate) (*Order, error)
}

type service struct {
	repo     Repository
	storeSvc store.Service
	policy   TransitionPolicy
}

func NewService(repo Repository, storeSvc store.Service, policy TransitionPolicy) Service {
	return &service{
		repo:     repo,
		storeSvc: storeSvc,
		policy:   policy,
	}
}

func (s *service) ListStoreOrders(ctx context.Context, sellerID, storeID uint, status *OrderStatus) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListStoreOrders"),
		zap.Uint("store_id", storeID),
	)
	log.Info("ListStoreOrders started")

	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, storeID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	orders, err := s.repo.ListByStore(ctx, storeID, status)
	if err != nil {
		log.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	log.Info("ListStoreOrders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (s *service) GetOrder(ctx context.Context, sellerID uint, uuid string) (*Order, error) {
	o, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, o.StoreID, sellerID); err != nil {
		return nil, err
	}

	return o, nil
}

// UpdateStatus applies a status patch after validating every axis against
// the known enum values and, for the fulfillment lifecycle, against the
// configured transition policy. An empty or no-change patch is a no-op and
// returns the order as stored.
func (s *service) UpdateStatus(ctx context.Context, sellerID uint, uuid string, patch StatusUpdate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("uuid", uuid),
	)
	log.Info("UpdateStatus started")

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.FinancialStatus != nil && !patch.FinancialStatus.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.FulfillmentStatus != nil && !patch.FulfillmentStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if _, err := s.storeSvc.CheckOwnership(ctx, current.StoreID, sellerID); err != nil {
		log.Warn("ownership check failed", zap.Error(err))
		return nil, err
	}

	if patch.IsEmpty() || patch.ChangesNothing(current) {
		log.Info("UpdateStatus no-op: patch changes nothing")
		return current, nil
	}

	if patch.Status != nil && !s.policy.Allows(current.Status, *patch.Status) {
		log.Warn("transition rejected",
			zap.String("from", string(current.Status)),
			zap.String("to", string(*patch.Status)),
		)
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, uuid, patch)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateStatus success",
		zap.String("status", string(updated.Status)),
		zap.String("financial_status", string(updated.FinancialStatus)),
		zap.String("fulfillment_status", string(updated.FulfillmentStatus)),
	)
	return updated, nil
}
