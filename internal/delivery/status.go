package delivery

// AssignmentStatus is the delivery partner's lifecycle state for an
// in-flight assignment.
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

// RequestStatus is the lifecycle of a delivery request offered to a partner.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var AssignmentStatuses = map[AssignmentStatus]StatusInfo{
	AssignmentPending:   {Label: "Pending", Color: "bg-yellow-100 text-yellow-800"},
	AssignmentAccepted:  {Label: "Accepted", Color: "bg-blue-100 text-blue-800"},
	AssignmentPickedUp:  {Label: "Picked Up", Color: "bg-purple-100 text-purple-800"},
	AssignmentInTransit: {Label: "In Transit", Color: "bg-indigo-100 text-indigo-800"},
	AssignmentDelivered: {Label: "Delivered", Color: "bg-green-100 text-green-800"},
	AssignmentFailed:    {Label: "Failed", Color: "bg-red-100 text-red-800"},
	AssignmentCancelled: {Label: "Cancelled", Color: "bg-gray-100 text-gray-800"},
}

func (s AssignmentStatus) Valid() bool {
	_, ok := AssignmentStatuses[s]
	return ok
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// assignmentTransitions is the legal outward transition set for each
// assignment status. The pending → accepted edge is driven by request
// acceptance, never by the partner status endpoint, so it is absent here.
// Terminal statuses map to an empty list.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentPending:   {},
	AssignmentAccepted:  {AssignmentPickedUp, AssignmentCancelled},
	AssignmentPickedUp:  {AssignmentInTransit},
	AssignmentInTransit: {AssignmentDelivered, AssignmentFailed},
	AssignmentDelivered: {},
	AssignmentFailed:    {},
	AssignmentCancelled: {},
}

// AvailableActions returns the ordered list of statuses a partner may move
// the assignment to from its current status. The result is a copy.
func AvailableActions(current AssignmentStatus) []AssignmentStatus {
	next := assignmentTransitions[current]
	out := make([]AssignmentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from one assignment status to
// another is legal.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no legal outward transition.
// Unknown values are not terminal, they are invalid.
func IsTerminal(s AssignmentStatus) bool {
	return s.Valid() && len(assignmentTransitions[s]) == 0 && s != AssignmentPending
}
