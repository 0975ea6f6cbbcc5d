package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kisaan-be/internal/transport"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type addCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseUint(chi.URLParam(r, "storeID"), 10, 32)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	var filter *string
	if q := r.URL.Query().Get("q"); q != "" {
		filter = &q
	}

	categories, err := h.svc.GetCategories(r.Context(), uint(storeID), filter, nil, nil)
	if err != nil {
		transport.Error(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	transport.JSON(w, http.StatusOK, transport.ListResponse{Data: categories})
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseUint(chi.URLParam(r, "storeID"), 10, 32)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid store id")
		return
	}

	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	c, err := h.svc.AddCategory(r.Context(), uint(storeID), req.Name, req.Slug)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	transport.JSON(w, http.StatusCreated, c)
}
