package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/profile"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

type createRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type updateRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	profiles, err := h.Service.List(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, profiles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	p, err := h.Service.Get(r.Context(), user, chi.URLParam(r, "employeeID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("fullName", payload.FullName, "full name is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), user, profile.NewProfile{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
		Phone:    payload.Phone,
		Role:     payload.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.Update(r.Context(), user, chi.URLParam(r, "employeeID"), profile.Update{
		FullName: payload.FullName,
		Phone:    payload.Phone,
		Role:     payload.Role,
		IsActive: payload.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Delete(r.Context(), user, chi.URLParam(r, "employeeID")); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", requestID)
	case errors.Is(err, profile.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, profile.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", requestID)
	case errors.Is(err, profile.ErrSelfDeletion):
		api.Fail(w, http.StatusBadRequest, "self_deletion", "cannot delete own profile", requestID)
	case errors.Is(err, profile.ErrInvalidRole),
		errors.Is(err, profile.ErrMissingField),
		errors.Is(err, profile.ErrWeakPassword):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "store_error", "employee operation failed", requestID)
	}
}
