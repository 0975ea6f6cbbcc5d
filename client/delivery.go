package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentPickedUp  AssignmentStatus = "picked_up"
	AssignmentInTransit AssignmentStatus = "in_transit"
	AssignmentDelivered AssignmentStatus = "delivered"
	AssignmentFailed    AssignmentStatus = "failed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

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

type DeliveryRequest struct {
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

// assignmentTransitions mirrors the server's state machine so a caller can
// render action buttons and fail bad transitions without a round trip.
// pending → accepted happens only through request acceptance.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentPending:   {},
	AssignmentAccepted:  {AssignmentPickedUp, AssignmentCancelled},
	AssignmentPickedUp:  {AssignmentInTransit},
	AssignmentInTransit: {AssignmentDelivered, AssignmentFailed},
	AssignmentDelivered: {},
	AssignmentFailed:    {},
	AssignmentCancelled: {},
}

// AvailableActions returns the statuses the assignment may move to from its
// current status. The result is a copy; terminal statuses yield an empty
// slice.
func AvailableActions(current AssignmentStatus) []AssignmentStatus {
	next := assignmentTransitions[current]
	out := make([]AssignmentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from one assignment status to another
// is legal.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type listResponse struct {
	Data json.RawMessage `json:"data"`
}

type assignmentDetail struct {
	Assignment
	AvailableActions []AssignmentStatus `json:"available_actions"`
}

type updateAssignmentBody struct {
	Status AssignmentStatus `json:"status"`
	Notes  *string          `json:"notes,omitempty"`
}

type assignmentUpdateResponse struct {
	Message    string      `json:"message"`
	Assignment *Assignment `json:"assignment"`
}

type rejectBody struct {
	Reason *string `json:"reason,omitempty"`
}

type decisionResponse struct {
	Message    string           `json:"message"`
	Request    *DeliveryRequest `json:"request"`
	Assignment *Assignment      `json:"assignment,omitempty"`
}

// ListAssignments fetches the partner's assignments, optionally filtered by
// status. The result is never nil.
func (c *Client) ListAssignments(ctx context.Context, status AssignmentStatus) ([]Assignment, error) {
	path := "/api/v2/delivery-partner/assignments"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	assignments := []Assignment{}
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &assignments); err != nil {
			return []Assignment{}, nil
		}
	}
	return assignments, nil
}

// GetAssignment fetches one assignment with the server's view of its
// available actions.
func (c *Client) GetAssignment(ctx context.Context, uuid string) (*Assignment, []AssignmentStatus, error) {
	var detail assignmentDetail
	if err := c.do(ctx, http.MethodGet, "/api/v2/delivery-partner/assignments/"+uuid, nil, &detail); err != nil {
		return nil, nil, err
	}
	return &detail.Assignment, detail.AvailableActions, nil
}

// UpdateAssignmentStatus moves the assignment to newStatus. The transition is
// checked locally against the current assignment before any request is sent;
// an illegal one returns ErrInvalidTransition without touching the server.
func (c *Client) UpdateAssignmentStatus(ctx context.Context, uuid string, newStatus AssignmentStatus, notes *string) (*Assignment, error) {
	current, _, err := c.GetAssignment(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, newStatus)
	}

	body := updateAssignmentBody{Status: newStatus, Notes: notes}
	var resp assignmentUpdateResponse
	if err := c.do(ctx, http.MethodPut, "/api/v2/delivery-partner/assignments/"+uuid+"/status", body, &resp); err != nil {
		return nil, err
	}
	return resp.Assignment, nil
}

// ListDeliveryRequests fetches the partner's delivery requests, optionally
// filtered by status.
func (c *Client) ListDeliveryRequests(ctx context.Context, status RequestStatus) ([]DeliveryRequest, error) {
	path := "/api/v2/delivery-requests/partner"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	requests := []DeliveryRequest{}
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &requests); err != nil {
			return []DeliveryRequest{}, nil
		}
	}
	return requests, nil
}

// AcceptRequest accepts a pending delivery request and returns the decided
// request with the assignment the server created. A request already decided
// returns ErrAlreadyDecided.
func (c *Client) AcceptRequest(ctx context.Context, uuid string) (*DeliveryRequest, *Assignment, error) {
	var resp decisionResponse
	if err := c.do(ctx, http.MethodPut, "/api/v2/delivery-requests/"+uuid+"/accept", nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Request, resp.Assignment, nil
}

// RejectRequest rejects a pending delivery request with an optional reason.
func (c *Client) RejectRequest(ctx context.Context, uuid string, reason *string) (*DeliveryRequest, error) {
	var resp decisionResponse
	body := rejectBody{Reason: reason}
	if err := c.do(ctx, http.MethodPut, "/api/v2/delivery-requests/"+uuid+"/reject", body, &resp); err != nil {
		return nil, err
	}
	return resp.Request, nil
}
