package delivery

import "time"

// Assignment is a partner's accepted commitment to deliver one order.
// delivery_fee and distance_km are computed at assignment time and never
// change; the actual_* timestamps are stamped server-side exactly once by
// the corresponding transition.
type Assignment struct {
	ID                 uint             `json:"id"`
	UUID               string           `json:"uuid"`
	OrderUUID          string           `json:"order_uuid"`
	PartnerID          uint             `json:"partner_id"`
	Status             AssignmentStatus `json:"status"`
	DeliveryFee        float64          `json:"delivery_fee"`
	DistanceKM         *float64         `json:"distance_km,omitempty"`
	PickupAddress      string           `json:"pickup_address"`
	DropoffAddress     string           `json:"dropoff_address"`
	EstimatedDelivery  *time.Time       `json:"estimated_delivery_time,omitempty"`
	ActualPickupTime   *time.Time       `json:"actual_pickup_time,omitempty"`
	ActualDeliveryTime *time.Time       `json:"actual_delivery_time,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// Request is an offer from a seller or the system to a specific partner,
// pending that partner's accept/reject decision. proposed_fee is set at
// creation and immutable.
type Request struct {
	ID          uint          `json:"id"`
	UUID        string        `json:"uuid"`
	OrderUUID   string        `json:"order_uuid"`
	StoreID     uint          `json:"store_id"`
	PartnerID   uint          `json:"partner_id"`
	Status      RequestStatus `json:"status"`
	ProposedFee float64       `json:"proposed_fee"`
	DistanceKM  *float64      `json:"distance_km,omitempty"`
	PickupAddr  string        `json:"pickup_address"`
	DropoffAddr string        `json:"dropoff_address"`
	Reason      *string       `json:"reason,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}
