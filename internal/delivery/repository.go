package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListAssignments(ctx context.Context, partnerID uint, status *AssignmentStatus) ([]*Assignment, error)
	GetAssignment(ctx context.Context, uuid string) (*Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, uuid string, status AssignmentStatus, notes *string) (*Assignment, error)
	ListRequests(ctx context.Context, partnerID uint, status *RequestStatus) ([]*Request, error)
	GetRequest(ctx context.Context, uuid string) (*Request, error)
	// DecideRequest resolves a pending request; on accept it creates the
	// assignment in the same transaction. A request that is no longer
	// pending yields ErrAlreadyDecided.
	DecideRequest(ctx context.Context, uuid string, accept bool, reason *string) (*Request, *Assignment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const assignmentColumns = `id, uuid, order_uuid, partner_id, status, delivery_fee,
	distance_km, pickup_address, dropoff_address, estimated_delivery_time,
	actual_pickup_time, actual_delivery_time, notes, created_at, updated_at`

const requestColumns = `id, uuid, order_uuid, store_id, partner_id, status,
	proposed_fee, distance_km, pickup_address, dropoff_address, reason, created_at, responded_at`

func scanAssignment(row interface{ Scan(...interface{}) error }) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.UUID, &a.OrderUUID, &a.PartnerID, &a.Status,
		&a.DeliveryFee, &a.DistanceKM, &a.PickupAddress, &a.DropoffAddress,
		&a.EstimatedDelivery, &a.ActualPickupTime, &a.ActualDeliveryTime,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanRequest(row interface{ Scan(...interface{}) error }) (*Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.UUID, &req.OrderUUID, &req.StoreID, &req.PartnerID,
		&req.Status, &req.ProposedFee, &req.DistanceKM, &req.PickupAddr, &req.DropoffAddr,
		&req.Reason, &req.CreatedAt, &req.RespondedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListAssignments(ctx context.Context, partnerID uint, status *AssignmentStatus) ([]*Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("partner_id", partnerID),
	)
	log.Info("ListAssignments started")

	query := `SELECT ` + assignmentColumns + ` FROM delivery_assignments`
	where := []string{"partner_id = $1"}
	args := []interface{}{partnerID}

	if status != nil && *status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *status)
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListAssignments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	assignments := []*Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *repository) GetAssignment(ctx context.Context, uuid string) (*Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM delivery_assignments WHERE uuid = $1`

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAssignmentStatus persists the transition. The pickup and delivery
// timestamps are stamped here, once: COALESCE keeps an already-set value.
func (r *repository) UpdateAssignmentStatus(ctx context.Context, uuid string, status AssignmentStatus, notes *string) (*Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("uuid", uuid),
		zap.String("status", string(status)),
	)
	log.Info("UpdateAssignmentStatus started")

	set := []string{"status = $1", "updated_at = NOW()"}
	args := []interface{}{status}

	switch status {
	case AssignmentPickedUp:
		set = append(set, "actual_pickup_time = COALESCE(actual_pickup_time, NOW())")
	case AssignmentDelivered:
		set = append(set, "actual_delivery_time = COALESCE(actual_delivery_time, NOW())")
	}

	if notes != nil {
		set = append(set, fmt.Sprintf("notes = $%d", len(args)+1))
		args = append(args, *notes)
	}

	query := fmt.Sprintf(`UPDATE delivery_assignments SET %s WHERE uuid = $%d RETURNING `+assignmentColumns,
		strings.Join(set, ", "), len(args)+1)
	args = append(args, uuid)

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		log.Error("UpdateAssignmentStatus DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update assignment status failed: %w", err)
	}

	log.Info("UpdateAssignmentStatus success")
	return a, nil
}

func (r *repository) ListRequests(ctx context.Context, partnerID uint, status *RequestStatus) ([]*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM delivery_requests`
	where := []string{"partner_id = $1"}
	args := []interface{}{partnerID}

	if status != nil && *status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *status)
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	requests := []*Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) GetRequest(ctx context.Context, uuid string) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM delivery_requests WHERE uuid = $1`

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repository) DecideRequest(ctx context.Context, uuid string, accept bool, reason *string) (*Request, *Assignment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("uuid", uuid),
		zap.Bool("accept", accept),
	)
	log.Info("DecideRequest started")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback()

	newStatus := RequestRejected
	if accept {
		newStatus = RequestAccepted
	}

	// The status='pending' predicate makes the decision single-shot: a
	// second decision matches zero rows.
	updateQuery := `
		UPDATE delivery_requests
		SET status = $1, reason = $2, responded_at = NOW()
		WHERE uuid = $3 AND status = 'pending'
		RETURNING ` + requestColumns

	req, err := scanRequest(tx.QueryRowContext(ctx, updateQuery, newStatus, reason, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing request from one already decided.
		var existing string
		checkErr := tx.QueryRowContext(ctx,
			`SELECT status FROM delivery_requests WHERE uuid = $1`, uuid).Scan(&existing)
		if errors.Is(checkErr, sql.ErrNoRows) {
			return nil, nil, ErrRequestNotFound
		}
		if checkErr != nil {
			return nil, nil, checkErr
		}
		return nil, nil, ErrAlreadyDecided
	}
	if err != nil {
		log.Error("DecideRequest update failed", zap.Error(err))
		return nil, nil, fmt.Errorf("decide request failed: %w", err)
	}

	var assignment *Assignment
	if accept {
		insertQuery := `
			INSERT INTO delivery_assignments
				(order_uuid, partner_id, status, delivery_fee, distance_km, pickup_address, dropoff_address)
			SELECT dr.order_uuid, dr.partner_id, 'accepted', dr.proposed_fee, dr.distance_km,
				dr.pickup_address, dr.dropoff_address
			FROM delivery_requests dr
			WHERE dr.uuid = $1
			RETURNING ` + assignmentColumns

		assignment, err = scanAssignment(tx.QueryRowContext(ctx, insertQuery, uuid))
		if err != nil {
			log.Error("DecideRequest assignment insert failed", zap.Error(err))
			return nil, nil, fmt.Errorf("create assignment failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit failed: %w", err)
	}

	log.Info("DecideRequest success", zap.String("status", string(req.Status)))
	return req, assignment, nil
}
