package order

import "time"

// Address is the denormalized billing/shipping snapshot stored on an order.
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
	OrderID      uint    `json:"order_id"`
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

// ComputedTotal returns the amount the monetary invariant requires
// total_amount to equal.
func (o *Order) ComputedTotal() float64 {
	return o.Subtotal + o.TaxAmount + o.ShippingAmount - o.DiscountAmount
}

// StatusUpdate is the patch a seller submits against an order. Any subset of
// fields may be set; nil fields are left untouched.
type StatusUpdate struct {
	Status            *OrderStatus       `json:"status,omitempty"`
	FinancialStatus   *FinancialStatus   `json:"financial_status,omitempty"`
	FulfillmentStatus *FulfillmentStatus `json:"fulfillment_status,omitempty"`
	InternalNotes     *string            `json:"internal_notes,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (u StatusUpdate) IsEmpty() bool {
	return u.Status == nil && u.FinancialStatus == nil &&
		u.FulfillmentStatus == nil && u.InternalNotes == nil
}

// ChangesNothing reports whether applying the patch to the order would leave
// every field at its current value.
func (u StatusUpdate) ChangesNothing(o *Order) bool {
	if u.Status != nil && *u.Status != o.Status {
		return false
	}
	if u.FinancialStatus != nil && *u.FinancialStatus != o.FinancialStatus {
		return false
	}
	if u.FulfillmentStatus != nil && *u.FulfillmentStatus != o.FulfillmentStatus {
		return false
	}
	if u.InternalNotes != nil {
		if o.InternalNotes == nil || *u.InternalNotes != *o.InternalNotes {
			return false
		}
	}
	return true
}
