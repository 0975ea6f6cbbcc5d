package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kisaan-be/internal/auth"
	"kisaan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type updateStatusRequest struct {
	Status AssignmentStatus `json:"status"`
	Notes  *string          `json:"notes,omitempty"`
}

type updateStatusResponse struct {
	Message    string      `json:"message"`
	Assignment *Assignment `json:"assignment"`
}

type assignmentDetailResponse struct {
	*Assignment
	AvailableActions []AssignmentStatus `json:"available_actions"`
}

type rejectRequestBody struct {
	Reason *string `json:"reason,omitempty"`
}

type decisionResponse struct {
	Message    string      `json:"message"`
	Request    *Request    `json:"request"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// ListAssignments handles GET /delivery-partner/assignments?status=
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var status *AssignmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := AssignmentStatus(raw)
		if !s.Valid() {
			transport.Error(w, http.StatusUnprocessableEntity, "unknown status value")
			return
		}
		status = &s
	}

	assignments, err := h.svc.ListAssignments(r.Context(), partnerID, status)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: assignments})
}

// GetAssignment handles GET /delivery-partner/assignments/{uuid}
func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	a, err := h.svc.GetAssignment(r.Context(), partnerID, chi.URLParam(r, "uuid"))
	if err != nil {
		writeDeliveryError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, assignmentDetailResponse{
		Assignment:       a,
		AvailableActions: AvailableActions(a.Status),
	})
}

// UpdateAssignmentStatus handles PUT /delivery-partner/assignments/{uuid}/status
func (h *Handler) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	a, err := h.svc.UpdateAssignmentStatus(r.Context(), partnerID, chi.URLParam(r, "uuid"), req.Status, req.Notes)
	if err != nil {
		writeDeliveryError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, updateStatusResponse{
		Message:    fmt.Sprintf("Status updated to %s", a.Status),
		Assignment: a,
	})
}

// ListRequests handles GET /delivery-requests/partner?status=
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var status *RequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := RequestStatus(raw)
		if !s.Valid() {
			transport.Error(w, http.StatusUnprocessableEntity, "unknown status value")
			return
		}
		status = &s
	}

	requests, err := h.svc.ListRequests(r.Context(), partnerID, status)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: requests})
}

// AcceptRequest handles PUT /delivery-requests/{uuid}/accept
func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, assignment, err := h.svc.AcceptRequest(r.Context(), partnerID, chi.URLParam(r, "uuid"))
	if err != nil {
		writeDeliveryError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, decisionResponse{
		Message:    "Delivery request accepted",
		Request:    req,
		Assignment: assignment,
	})
}

// RejectRequest handles PUT /delivery-requests/{uuid}/reject
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body rejectRequestBody
	if r.Body != nil {
		// An empty body is fine; reason is optional.
		_ = json.NewDecoder(r.Body).Decode(&body)
		defer r.Body.Close()
	}

	req, err := h.svc.RejectRequest(r.Context(), partnerID, chi.URLParam(r, "uuid"), body.Reason)
	if err != nil {
		writeDeliveryError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, decisionResponse{
		Message: "Delivery request rejected",
		Request: req,
	})
}

func writeDeliveryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssignmentNotFound), errors.Is(err, ErrRequestNotFound):
		transport.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotAssigned):
		transport.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		transport.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrAlreadyDecided):
		transport.Error(w, http.StatusConflict, err.Error())
	default:
		transport.Error(w, http.StatusInternalServerError, "internal error")
	}
}
