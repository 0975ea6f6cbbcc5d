package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kisaan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID uint, status *OrderStatus) ([]*Order, error)
	GetByUUID(ctx context.Context, uuid string) (*Order, error)
	UpdateStatus(ctx context.Context, uuid string, patch StatusUpdate) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `o.id, o.uuid, o.store_id, o.order_number,
	o.status, o.financial_status, o.fulfillment_status,
	o.subtotal, o.tax_amount, o.shipping_amount, o.discount_amount, o.total_amount,
	o.currency, o.customer_name, o.customer_email, o.customer_phone,
	o.billing_address, o.shipping_address,
	o.customer_notes, o.internal_notes, o.processed_at, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*Order, error) {
	var (
		o        Order
		billing  []byte
		shipping []byte
	)

	err := row.Scan(&o.ID, &o.UUID, &o.StoreID, &o.OrderNumber,
		&o.Status, &o.FinancialStatus, &o.FulfillmentStatus,
		&o.Subtotal, &o.TaxAmount, &o.ShippingAmount, &o.DiscountAmount, &o.TotalAmount,
		&o.Currency, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&billing, &shipping,
		&o.CustomerNotes, &o.InternalNotes, &o.ProcessedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(billing) > 0 {
		if err := json.Unmarshal(billing, &o.BillingAddress); err != nil {
			return nil, fmt.Errorf("decode billing address: %w", err)
		}
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}

	return &o, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uint, status *OrderStatus) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("store_id", storeID),
	)
	log.Info("ListByStore started")

	query := `SELECT ` + orderColumns + ` FROM orders o`
	where := []string{"o.store_id = $1"}
	args := []interface{}{storeID}

	if status != nil && *status != "" {
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
		args = append(args, *status)
	}

	query += " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListByStore", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetByUUID(ctx context.Context, uuid string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.uuid = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, uuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (r *repository) fetchItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, total, product_title, sku
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items failed: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.Price, &it.Total, &it.ProductTitle, &it.SKU); err != nil {
			return nil, fmt.Errorf("scan order item failed: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateStatus applies a partial status patch and returns the stored order.
// Only the fields present in the patch end up in the SET clause.
func (r *repository) UpdateStatus(ctx context.Context, uuid string, patch StatusUpdate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("uuid", uuid),
	)
	log.Info("UpdateStatus started")

	set := []string{}
	args := []interface{}{}

	if patch.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *patch.Status)
	}
	if patch.FinancialStatus != nil {
		set = append(set, fmt.Sprintf("financial_status = $%d", len(args)+1))
		args = append(args, *patch.FinancialStatus)
	}
	if patch.FulfillmentStatus != nil {
		set = append(set, fmt.Sprintf("fulfillment_status = $%d", len(args)+1))
		args = append(args, *patch.FulfillmentStatus)
	}
	if patch.InternalNotes != nil {
		set = append(set, fmt.Sprintf("internal_notes = $%d", len(args)+1))
		args = append(args, *patch.InternalNotes)
	}

	if len(set) == 0 {
		return r.GetByUUID(ctx, uuid)
	}

	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE orders o SET %s WHERE o.uuid = $%d RETURNING `+orderColumns,
		strings.Join(set, ", "), len(args)+1)
	args = append(args, uuid)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("UpdateStatus DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update order status failed: %w", err)
	}

	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	log.Info("UpdateStatus success", zap.String("status", string(o.Status)))
	return o, nil
}
