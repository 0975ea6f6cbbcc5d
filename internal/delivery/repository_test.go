package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignmentCols = []string{"id", "uuid", "order_uuid", "partner_id", "status", "delivery_fee",
	"distance_km", "pickup_address", "dropoff_address", "estimated_delivery_time",
	"actual_pickup_time", "actual_delivery_time", "notes", "created_at", "updated_at"}

var requestCols = []string{"id", "uuid", "order_uuid", "store_id", "partner_id", "status",
	"proposed_fee", "distance_km", "pickup_address", "dropoff_address", "reason", "created_at", "responded_at"}

func assignmentRow(now time.Time, status AssignmentStatus) *sqlmock.Rows {
	return sqlmock.NewRows(assignmentCols).
		AddRow(1, "a-1", "o-1", 7, status, 50.0,
			nil, "Warehouse 4", "12 Hill Road", nil,
			nil, nil, nil, now, now)
}

func TestRepository_ListAssignments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success_NoFilter", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM delivery_assignments WHERE partner_id = \\$1 ORDER BY created_at DESC").
			WithArgs(uint(7)).
			WillReturnRows(assignmentRow(now, AssignmentAccepted))

		res, err := repo.ListAssignments(context.Background(), 7, nil)
		assert.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "a-1", res[0].UUID)
		assert.Equal(t, AssignmentAccepted, res[0].Status)
	})

	t.Run("Success_WithStatusFilter", func(t *testing.T) {
		status := AssignmentInTransit
		mock.ExpectQuery("SELECT .* FROM delivery_assignments WHERE partner_id = \\$1 AND status = \\$2 ORDER BY created_at DESC").
			WithArgs(uint(7), status).
			WillReturnRows(sqlmock.NewRows(assignmentCols))

		res, err := repo.ListAssignments(context.Background(), 7, &status)
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM delivery_assignments").WillReturnError(errors.New("db error"))
		_, err := repo.ListAssignments(context.Background(), 7, nil)
		assert.Error(t, err)
	})
}

func TestRepository_GetAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM delivery_assignments WHERE uuid = \\$1").
			WithArgs("a-1").
			WillReturnRows(assignmentRow(time.Now(), AssignmentPickedUp))

		res, err := repo.GetAssignment(context.Background(), "a-1")
		assert.NoError(t, err)
		assert.Equal(t, AssignmentPickedUp, res.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM delivery_assignments WHERE uuid = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(assignmentCols))

		_, err := repo.GetAssignment(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestRepository_UpdateAssignmentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("PickedUp_StampsPickupTime", func(t *testing.T) {
		mock.ExpectQuery("UPDATE delivery_assignments SET status = \\$1, updated_at = NOW\\(\\), actual_pickup_time = COALESCE\\(actual_pickup_time, NOW\\(\\)\\) WHERE uuid = \\$2 RETURNING").
			WithArgs(AssignmentPickedUp, "a-1").
			WillReturnRows(assignmentRow(now, AssignmentPickedUp))

		res, err := repo.UpdateAssignmentStatus(context.Background(), "a-1", AssignmentPickedUp, nil)
		assert.NoError(t, err)
		assert.Equal(t, AssignmentPickedUp, res.Status)
	})

	t.Run("Delivered_StampsDeliveryTimeAndNotes", func(t *testing.T) {
		notes := "left with neighbour"
		mock.ExpectQuery("UPDATE delivery_assignments SET status = \\$1, updated_at = NOW\\(\\), actual_delivery_time = COALESCE\\(actual_delivery_time, NOW\\(\\)\\), notes = \\$2 WHERE uuid = \\$3 RETURNING").
			WithArgs(AssignmentDelivered, notes, "a-1").
			WillReturnRows(assignmentRow(now, AssignmentDelivered))

		res, err := repo.UpdateAssignmentStatus(context.Background(), "a-1", AssignmentDelivered, &notes)
		assert.NoError(t, err)
		assert.Equal(t, AssignmentDelivered, res.Status)
	})

	t.Run("InTransit_NoTimestampClause", func(t *testing.T) {
		mock.ExpectQuery("UPDATE delivery_assignments SET status = \\$1, updated_at = NOW\\(\\) WHERE uuid = \\$2 RETURNING").
			WithArgs(AssignmentInTransit, "a-1").
			WillReturnRows(assignmentRow(now, AssignmentInTransit))

		_, err := repo.UpdateAssignmentStatus(context.Background(), "a-1", AssignmentInTransit, nil)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE delivery_assignments SET").
			WillReturnRows(sqlmock.NewRows(assignmentCols))

		_, err := repo.UpdateAssignmentStatus(context.Background(), "missing", AssignmentInTransit, nil)
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestRepository_DecideRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	pendingRow := func(status RequestStatus) *sqlmock.Rows {
		return sqlmock.NewRows(requestCols).
			AddRow(1, "req-1", "o-1", 3, 7, status,
				50.0, nil, "Warehouse 4", "12 Hill Road", nil, now, now)
	}

	t.Run("Accept_CreatesAssignmentInSameTx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE delivery_requests\\s+SET status = \\$1, reason = \\$2, responded_at = NOW\\(\\)\\s+WHERE uuid = \\$3 AND status = 'pending'").
			WithArgs(RequestAccepted, nil, "req-1").
			WillReturnRows(pendingRow(RequestAccepted))
		mock.ExpectQuery("INSERT INTO delivery_assignments").
			WithArgs("req-1").
			WillReturnRows(assignmentRow(now, AssignmentAccepted))
		mock.ExpectCommit()

		req, assignment, err := repo.DecideRequest(context.Background(), "req-1", true, nil)
		assert.NoError(t, err)
		assert.Equal(t, RequestAccepted, req.Status)
		require.NotNil(t, assignment)
		assert.Equal(t, AssignmentAccepted, assignment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reject_NoAssignment", func(t *testing.T) {
		reason := "too far"
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE delivery_requests").
			WithArgs(RequestRejected, reason, "req-1").
			WillReturnRows(pendingRow(RequestRejected))
		mock.ExpectCommit()

		req, assignment, err := repo.DecideRequest(context.Background(), "req-1", false, &reason)
		assert.NoError(t, err)
		assert.Equal(t, RequestRejected, req.Status)
		assert.Nil(t, assignment)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE delivery_requests").
			WillReturnRows(sqlmock.NewRows(requestCols))
		mock.ExpectQuery("SELECT status FROM delivery_requests WHERE uuid = \\$1").
			WithArgs("req-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
		mock.ExpectRollback()

		_, _, err := repo.DecideRequest(context.Background(), "req-1", true, nil)
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE delivery_requests").
			WillReturnRows(sqlmock.NewRows(requestCols))
		mock.ExpectQuery("SELECT status FROM delivery_requests WHERE uuid = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		_, _, err := repo.DecideRequest(context.Background(), "missing", true, nil)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})

	t.Run("InsertFails_RollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE delivery_requests").
			WillReturnRows(pendingRow(RequestAccepted))
		mock.ExpectQuery("INSERT INTO delivery_assignments").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, _, err := repo.DecideRequest(context.Background(), "req-1", true, nil)
		assert.Error(t, err)
	})
}
