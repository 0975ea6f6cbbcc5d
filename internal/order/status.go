package order

// OrderStatus is the fulfillment-facing lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// FinancialStatus describes payment state, independent of fulfillment.
type FinancialStatus string

const (
	FinancialPending       FinancialStatus = "pending"
	FinancialPaid          FinancialStatus = "paid"
	FinancialPartiallyPaid FinancialStatus = "partially_paid"
	FinancialRefunded      FinancialStatus = "refunded"
	FinancialVoided        FinancialStatus = "voided"
)

// FulfillmentStatus describes shipment completeness, independent of payment.
type FulfillmentStatus string

const (
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentPartial     FulfillmentStatus = "partial"
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
	FulfillmentCancelled   FulfillmentStatus = "cancelled"
)

// StatusInfo is the display metadata the storefront renders for a status code.
type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var OrderStatuses = map[OrderStatus]StatusInfo{
	StatusPending:    {Label: "Pending", Color: "bg-yellow-100 text-yellow-800"},
	StatusProcessing: {Label: "Processing", Color: "bg-blue-100 text-blue-800"},
	StatusShipped:    {Label: "Shipped", Color: "bg-purple-100 text-purple-800"},
	StatusDelivered:  {Label: "Delivered", Color: "bg-green-100 text-green-800"},
	StatusCancelled:  {Label: "Cancelled", Color: "bg-red-100 text-red-800"},
}

var FinancialStatuses = map[FinancialStatus]StatusInfo{
	FinancialPending:       {Label: "Payment Pending", Color: "bg-yellow-100 text-yellow-800"},
	FinancialPaid:          {Label: "Paid", Color: "bg-green-100 text-green-800"},
	FinancialPartiallyPaid: {Label: "Partially Paid", Color: "bg-orange-100 text-orange-800"},
	FinancialRefunded:      {Label: "Refunded", Color: "bg-purple-100 text-purple-800"},
	FinancialVoided:        {Label: "Voided", Color: "bg-red-100 text-red-800"},
}

var FulfillmentStatuses = map[FulfillmentStatus]StatusInfo{
	FulfillmentUnfulfilled: {Label: "Unfulfilled", Color: "bg-gray-100 text-gray-800"},
	FulfillmentPartial:     {Label: "Partially Fulfilled", Color: "bg-orange-100 text-orange-800"},
	FulfillmentFulfilled:   {Label: "Fulfilled", Color: "bg-green-100 text-green-800"},
	FulfillmentCancelled:   {Label: "Cancelled", Color: "bg-red-100 text-red-800"},
}

func (s OrderStatus) Valid() bool {
	_, ok := OrderStatuses[s]
	return ok
}

func (s FinancialStatus) Valid() bool {
	_, ok := FinancialStatuses[s]
	return ok
}

func (s FulfillmentStatus) Valid() bool {
	_, ok := FulfillmentStatuses[s]
	return ok
}

// strictTransitions is the conventional ordering for the order lifecycle.
// Cancellation is possible until the order ships; delivered and cancelled
// are terminal.
var strictTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// TransitionPolicy controls how order status changes are validated. Sellers
// historically could set any status from any status (free correction of
// mistakes), so the loose policy only checks that the target is a known
// value. The strict policy additionally enforces strictTransitions.
type TransitionPolicy int

const (
	PolicyLoose TransitionPolicy = iota
	PolicyStrict
)

// Allows reports whether moving from one order status to another is legal
// under the policy. A same-value "transition" is always allowed; it is
// treated as a no-op upstream.
func (p TransitionPolicy) Allows(from, to OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if p == PolicyLoose {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
