package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type FinancialStatus string

const (
	FinancialPending       FinancialStatus = "pending"
	FinancialPaid          FinancialStatus = "paid"
	FinancialPartiallyPaid FinancialStatus = "partially_paid"
	FinancialRefunded      FinancialStatus = "refunded"
	FinancialVoided        FinancialStatus = "voided"
)

type FulfillmentStatus string

const (
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentPartial     FulfillmentStatus = "partial"
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
	FulfillmentCancelled   FulfillmentStatus = "cancelled"
)

type Address struct {
	Name     string  `json:"name"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2,omitempty"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zip      string  `json:"zip"`
	Country  string  `json:"country"`
}

type OrderItem struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	ProductTitle string  `json:"product_title"`
	SKU          *string `json:"sku,omitempty"`
}

type Order struct {
	ID                uint              `json:"id"`
	UUID              string            `json:"uuid"`
	StoreID           uint              `json:"store_id"`
	OrderNumber       string            `json:"order_number"`
	Status            OrderStatus       `json:"status"`
	FinancialStatus   FinancialStatus   `json:"financial_status"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status"`
	Subtotal          float64           `json:"subtotal"`
	TaxAmount         float64           `json:"tax_amount"`
	ShippingAmount    float64           `json:"shipping_amount"`
	DiscountAmount    float64           `json:"discount_amount"`
	TotalAmount       float64           `json:"total_amount"`
	Currency          string            `json:"currency"`
	CustomerName      string            `json:"customer_name"`
	CustomerEmail     string            `json:"customer_email"`
	CustomerPhone     *string           `json:"customer_phone,omitempty"`
	BillingAddress    *Address          `json:"billing_address,omitempty"`
	ShippingAddress   *Address          `json:"shipping_address,omitempty"`
	CustomerNotes     *string           `json:"customer_notes,omitempty"`
	InternalNotes     *string           `json:"internal_notes,omitempty"`
	ProcessedAt       *time.Time        `json:"processed_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Items             []OrderItem       `json:"items,omitempty"`
}

// OrderStatusUpdate is the patch sent to the status endpoint. Nil fields are
// omitted and left untouched server-side.
type OrderStatusUpdate struct {
	Status            *OrderStatus       `json:"status,omitempty"`
	FinancialStatus   *FinancialStatus   `json:"financial_status,omitempty"`
	FulfillmentStatus *FulfillmentStatus `json:"fulfillment_status,omitempty"`
	InternalNotes     *string            `json:"internal_notes,omitempty"`
}

func (u OrderStatusUpdate) isEmpty() bool {
	return u.Status == nil && u.FinancialStatus == nil &&
		u.FulfillmentStatus == nil && u.InternalNotes == nil
}

// normalizeOrderList tolerates every list envelope the API has shipped over
// time: a bare array, {"data": [...]}, {"orders": [...]}. Anything else
// yields an empty slice rather than an error, so a malformed payload renders
// as an empty list instead of breaking the caller.
func normalizeOrderList(raw json.RawMessage) []Order {
	var bare []Order
	if err := json.Unmarshal(raw, &bare); err == nil && bare != nil {
		return bare
	}

	var wrapped struct {
		Data   []Order `json:"data"`
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Data != nil {
			return wrapped.Data
		}
		if wrapped.Orders != nil {
			return wrapped.Orders
		}
	}

	return []Order{}
}

// ListOrders fetches a store's orders, optionally filtered by status. The
// result is never nil.
func (c *Client) ListOrders(ctx context.Context, storeID uint, status OrderStatus) ([]Order, error) {
	path := fmt.Sprintf("/api/v2/stores/%d/orders", storeID)
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	return normalizeOrderList(raw), nil
}

// GetOrder fetches one order with its line items.
func (c *Client) GetOrder(ctx context.Context, uuid string) (*Order, error) {
	var o Order
	if err := c.do(ctx, http.MethodGet, "/api/v2/orders/"+uuid, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderStatus applies the patch and returns the updated order. An
// empty patch skips the write and returns the current order unchanged.
func (c *Client) UpdateOrderStatus(ctx context.Context, uuid string, update OrderStatusUpdate) (*Order, error) {
	if update.isEmpty() {
		return c.GetOrder(ctx, uuid)
	}

	var o Order
	if err := c.do(ctx, http.MethodPatch, "/api/v2/orders/"+uuid+"/status", update, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
