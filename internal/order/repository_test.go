package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "uuid", "store_id", "order_number",
	"status", "financial_status", "fulfillment_status",
	"subtotal", "tax_amount", "shipping_amount", "discount_amount", "total_amount",
	"currency", "customer_name", "customer_email", "customer_phone",
	"billing_address", "shipping_address",
	"customer_notes", "internal_notes", "processed_at", "created_at", "updated_at"}

var itemCols = []string{"id", "order_id", "product_id", "quantity", "price", "total", "product_title", "sku"}

func orderRow(now time.Time, status OrderStatus) *sqlmock.Rows {
	shipping := []byte(`{"name":"Asha Rao","address1":"12 Hill Road","city":"Pune","state":"MH","zip":"411001","country":"IN"}`)
	return sqlmock.NewRows(orderCols).
		AddRow(1, "o-1", 3, "KSN-1001",
			status, FinancialPaid, FulfillmentUnfulfilled,
			100.0, 18.0, 40.0, 8.0, 150.0,
			"INR", "Asha Rao", "asha@example.com", nil,
			nil, shipping,
			nil, nil, nil, now, now)
}

func TestRepository_ListByStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success_NoFilter", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o WHERE o.store_id = \\$1 ORDER BY o.created_at DESC").
			WithArgs(uint(3)).
			WillReturnRows(orderRow(now, StatusPending))

		res, err := repo.ListByStore(context.Background(), 3, nil)
		assert.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "o-1", res[0].UUID)
		require.NotNil(t, res[0].ShippingAddress)
		assert.Equal(t, "Pune", res[0].ShippingAddress.City)
		assert.Nil(t, res[0].BillingAddress)
	})

	t.Run("Success_WithStatusFilter", func(t *testing.T) {
		status := StatusShipped
		mock.ExpectQuery("SELECT .* FROM orders o WHERE o.store_id = \\$1 AND o.status = \\$2 ORDER BY o.created_at DESC").
			WithArgs(uint(3), status).
			WillReturnRows(sqlmock.NewRows(orderCols))

		res, err := repo.ListByStore(context.Background(), 3, &status)
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o").WillReturnError(errors.New("db error"))
		_, err := repo.ListByStore(context.Background(), 3, nil)
		assert.Error(t, err)
	})
}

func TestRepository_GetByUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success_WithItems", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o WHERE o.uuid = \\$1").
			WithArgs("o-1").
			WillReturnRows(orderRow(now, StatusProcessing))

		mock.ExpectQuery("SELECT id, order_id, product_id, quantity, price, total, product_title, sku\\s+FROM order_items\\s+WHERE order_id = \\$1").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(10, 1, 5, 2, 50.0, 100.0, "Alphonso Mangoes 1kg", nil))

		res, err := repo.GetByUUID(context.Background(), "o-1")
		assert.NoError(t, err)
		assert.Equal(t, StatusProcessing, res.Status)
		require.Len(t, res.Items, 1)
		assert.Equal(t, 2, res.Items[0].Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o WHERE o.uuid = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.GetByUUID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("StatusOnly", func(t *testing.T) {
		status := StatusShipped
		mock.ExpectQuery("UPDATE orders o SET status = \\$1, updated_at = NOW\\(\\) WHERE o.uuid = \\$2 RETURNING").
			WithArgs(status, "o-1").
			WillReturnRows(orderRow(now, StatusShipped))
		mock.ExpectQuery("FROM order_items").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(itemCols))

		res, err := repo.UpdateStatus(context.Background(), "o-1", StatusUpdate{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, StatusShipped, res.Status)
	})

	t.Run("AllAxesAndNotes", func(t *testing.T) {
		status := StatusProcessing
		fin := FinancialPaid
		ful := FulfillmentPartial
		notes := "first parcel out"
		mock.ExpectQuery("UPDATE orders o SET status = \\$1, financial_status = \\$2, fulfillment_status = \\$3, internal_notes = \\$4, updated_at = NOW\\(\\) WHERE o.uuid = \\$5 RETURNING").
			WithArgs(status, fin, ful, notes, "o-1").
			WillReturnRows(orderRow(now, StatusProcessing))
		mock.ExpectQuery("FROM order_items").
			WillReturnRows(sqlmock.NewRows(itemCols))

		_, err := repo.UpdateStatus(context.Background(), "o-1", StatusUpdate{
			Status:            &status,
			FinancialStatus:   &fin,
			FulfillmentStatus: &ful,
			InternalNotes:     &notes,
		})
		assert.NoError(t, err)
	})

	t.Run("EmptyPatch_ReadsInstead", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders o WHERE o.uuid = \\$1").
			WithArgs("o-1").
			WillReturnRows(orderRow(now, StatusPending))
		mock.ExpectQuery("FROM order_items").
			WillReturnRows(sqlmock.NewRows(itemCols))

		res, err := repo.UpdateStatus(context.Background(), "o-1", StatusUpdate{})
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, res.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		status := StatusShipped
		mock.ExpectQuery("UPDATE orders o SET").
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err := repo.UpdateStatus(context.Background(), "missing", StatusUpdate{Status: &status})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
