package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"kisaan-be/internal/transport"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		transport.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	role := Role(req.Role)
	switch role {
	case RoleCustomer, RoleSeller, RoleDeliveryPartner:
	case "":
		role = RoleCustomer
	default:
		transport.Error(w, http.StatusUnprocessableEntity, "unknown role")
		return
	}

	token, u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name, role)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			transport.Error(w, http.StatusConflict, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to register")
		return
	}

	transport.JSON(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	defer r.Body.Close()

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			transport.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		transport.Error(w, http.StatusInternalServerError, "failed to login")
		return
	}

	transport.JSON(w, http.StatusOK, authResponse{Token: token, User: u})
}
