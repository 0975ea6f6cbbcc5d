package product

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

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
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

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	p.StoreID = uint(storeID)

	created, err := h.svc.CreateProduct(r.Context(), sellerID, &p)
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusCreated, created)
}

func (h *Handler) ListStoreProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseUint(chi.URLParam(r, "storeID"), 10, 32)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	opts := ListOptions{}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Search = &q
	}
	if status := r.URL.Query().Get("status"); status != "" {
		opts.Status = &status
	}

	products, err := h.svc.ListStoreProducts(r.Context(), uint(storeID), opts)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	p.UUID = chi.URLParam(r, "uuid")

	updated, err := h.svc.UpdateProduct(r.Context(), sellerID, &p)
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, updated)
}

func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var v Variant
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	created, err := h.svc.CreateVariant(r.Context(), sellerID, chi.URLParam(r, "uuid"), &v)
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusCreated, created)
}

func (h *Handler) ListVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.svc.ListProductVariants(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: variants})
}

func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var v Variant
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	v.UUID = chi.URLParam(r, "uuid")

	updated, err := h.svc.UpdateVariant(r.Context(), sellerID, &v)
	if err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.svc.DeleteVariant(r.Context(), sellerID, chi.URLParam(r, "uuid")); err != nil {
		writeProductError(w, err)
		return
	}

	transport.JSON(w, http.StatusOK, map[string]string{"message": "Variant deleted"})
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrVariantNotFound),
		errors.Is(err, store.ErrStoreNotFound):
		transport.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotOwner):
		transport.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidStock):
		transport.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		transport.Error(w, http.StatusBadRequest, err.Error())
	}
}
