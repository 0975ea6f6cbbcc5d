package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kisaan-be/internal/auth"
	"kisaan-be/internal/store"
	"kisaan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListStoreOrders handles GET /stores/{storeID}/orders?status=
func (h *Handler) ListStoreOrders(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	storeID, err := strconv.ParseUint(chi.URLParam(r, "storeID"), 10, 32)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	var status *OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := OrderStatus(raw)
		status = &s
	}

	orders, err := h.svc.ListStoreOrders(r.Context(), sellerID, uint(storeID), status)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: orders})
}

// GetOrder handles GET /orders/{uuid}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	o, err := h.svc.GetOrder(r.Context(), sellerID, chi.URLParam(r, "uuid"))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, o)
}

// UpdateStatus handles PATCH /orders/{uuid}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var patch StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	o, err := h.svc.UpdateStatus(r.Context(), sellerID, chi.URLParam(r, "uuid"), patch)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, o)
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, store.ErrStoreNotFound):
		transport.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotOwner):
		transport.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
		transport.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		transport.Error(w, http.StatusInternalServerError, "internal error")
	}
}
