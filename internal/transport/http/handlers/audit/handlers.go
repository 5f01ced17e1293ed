package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/audit"
	"worklog/internal/domain/auth"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{
		Action:           r.URL.Query().Get("action"),
		TargetEmployeeID: r.URL.Query().Get("employeeId"),
	}
	page := shared.ParsePagination(r, 50, 200)

	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_error", "audit count failed", middleware.GetRequestID(r.Context()))
		return
	}

	events, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "store_error", "audit list failed", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"events": events,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}, middleware.GetRequestID(r.Context()))
}
