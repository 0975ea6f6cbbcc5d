package store

import (
	"encoding/json"
	"errors"
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

type createStoreRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	st, err := h.svc.CreateStore(r.Context(), ownerID, req.Name, req.Slug, req.Description)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			transport.Error(w, http.StatusConflict, err.Error())
			return
		}
		transport.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	transport.JSON(w, http.StatusCreated, st)
}

func (h *Handler) ListSellerStores(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stores, err := h.svc.ListSellerStores(r.Context(), ownerID)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list stores")
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: stores})
}

func (h *Handler) GetStoreBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	st, err := h.svc.GetStoreBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			transport.Error(w, http.StatusNotFound, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to get store")
		return
	}

	transport.JSON(w, http.StatusOK, st)
}
