package delivery

import (
	"context"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

// Service enforces the assignment state machine and the single-shot
// request decision on behalf of the assigned partner.
type Service interface {
	ListAssignments(ctx context.Context, partnerID uint, status *AssignmentStatus) ([]*Assignment, error)
	GetAssignment(ctx context.Context, partnerID uint, uuid string) (*Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, partnerID uint, uuid string, newStatus AssignmentStatus, notes *string) (*Assignment, error)
	ListRequests(ctx context.Context, partnerID uint, status *RequestStatus) ([]*Request, error)
	AcceptRequest(ctx context.Context, partnerID uint, uuid string) (*Request, *Assignment, error)
	RejectRequest(ctx context.Context, partnerID uint, uuid string, reason *string) (*Request, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListAssignments(ctx context.Context, partnerID uint, status *AssignmentStatus) ([]*Assignment, error) {
	return s.repo.ListAssignments(ctx, partnerID, status)
}

func (s *service) GetAssignment(ctx context.Context, partnerID uint, uuid string) (*Assignment, error) {
	a, err := s.repo.GetAssignment(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if a.PartnerID != partnerID {
		return nil, ErrNotAssigned
	}
	return a, nil
}

// UpdateAssignmentStatus rejects an illegal transition before touching the
// database. The same table drives the action buttons in the partner UI, so
// a rejection here means the caller bypassed the UI.
func (s *service) UpdateAssignmentStatus(ctx context.Context, partnerID uint, uuid string, newStatus AssignmentStatus, notes *string) (*Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateAssignmentStatus"),
		zap.String("uuid", uuid),
		zap.String("new_status", string(newStatus)),
	)
	log.Info("UpdateAssignmentStatus started")

	if !newStatus.Valid() {
		return nil, ErrInvalidTransition
	}

	current, err := s.repo.GetAssignment(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if current.PartnerID != partnerID {
		log.Warn("partner mismatch", zap.Uint("owner", current.PartnerID))
		return nil, ErrNotAssigned
	}

	if !CanTransition(current.Status, newStatus) {
		log.Warn("transition rejected",
			zap.String("from", string(current.Status)),
		)
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateAssignmentStatus(ctx, uuid, newStatus, notes)
	if err != nil {
		log.Error("failed to update assignment status", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateAssignmentStatus success")
	return updated, nil
}

func (s *service) ListRequests(ctx context.Context, partnerID uint, status *RequestStatus) ([]*Request, error) {
	return s.repo.ListRequests(ctx, partnerID, status)
}

func (s *service) AcceptRequest(ctx context.Context, partnerID uint, uuid string) (*Request, *Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AcceptRequest"),
		zap.String("uuid", uuid),
	)
	log.Info("AcceptRequest started")

	req, err := s.repo.GetRequest(ctx, uuid)
	if err != nil {
		return nil, nil, err
	}
	if req.PartnerID != partnerID {
		return nil, nil, ErrNotAssigned
	}

	decided, assignment, err := s.repo.DecideRequest(ctx, uuid, true, nil)
	if err != nil {
		log.Warn("accept failed", zap.Error(err))
		return nil, nil, err
	}

	log.Info("AcceptRequest success", zap.String("assignment_uuid", assignment.UUID))
	return decided, assignment, nil
}

func (s *service) RejectRequest(ctx context.Context, partnerID uint, uuid string, reason *string) (*Request, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RejectRequest"),
		zap.String("uuid", uuid),
	)
	log.Info("RejectRequest started")

	req, err := s.repo.GetRequest(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if req.PartnerID != partnerID {
		return nil, ErrNotAssigned
	}

	decided, _, err := s.repo.DecideRequest(ctx, uuid, false, reason)
	if err != nil {
		log.Warn("reject failed", zap.Error(err))
		return nil, err
	}

	log.Info("RejectRequest success")
	return decided, nil
}
