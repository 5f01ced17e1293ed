package reportshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/report"
	"worklog/internal/domain/summary"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
	"worklog/internal/transport/http/shared"
)

type Handler struct {
	Service   *report.Service
	Summaries *summary.Service
}

func NewHandler(service *report.Service, summaries *summary.Service) *Handler {
	return &Handler{Service: service, Summaries: summaries}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/", h.handleSubmit)
		r.With(middleware.RequireRole()).Get("/mine", h.handleListMine)
		r.With(middleware.RequireRole()).Get("/day", h.handleGetDay)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/", h.handleListAll)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{reportID}", h.handleAdminEdit)
	})
	r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/summaries", h.handleSummaries)
}

type submitRequest struct {
	ReportDate       string `json:"reportDate"`
	BookTitle        string `json:"bookTitle"`
	PrintingPages    int    `json:"printingPages"`
	TypesettingPages int    `json:"typesettingPages"`
	EditingPages     int    `json:"editingPages"`
	Notes            string `json:"notes"`
	IsLeave          bool   `json:"isLeave"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Date("reportDate", payload.ReportDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	saved, err := h.Service.Submit(r.Context(), user, report.Submission{
		ReportDate:       payload.ReportDate,
		BookTitle:        payload.BookTitle,
		PrintingPages:    payload.PrintingPages,
		TypesettingPages: payload.TypesettingPages,
		EditingPages:     payload.EditingPages,
		Notes:            payload.Notes,
		IsLeave:          payload.IsLeave,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, saved, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rows, err := h.Service.ListMine(r.Context(), user, r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetDay(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	date := r.URL.Query().Get("date")
	if date == "" {
		date = shared.Today()
	}

	row, err := h.Service.GetForDay(r.Context(), user, date)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			// No submission yet for that day; the form starts blank.
			api.Success(w, nil, middleware.GetRequestID(r.Context()))
			return
		}
		writeError(w, r, err)
		return
	}
	api.Success(w, row, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rows, err := h.Service.ListAll(r.Context(), user, report.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		StartDate:  r.URL.Query().Get("startDate"),
		EndDate:    r.URL.Query().Get("endDate"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminEdit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var patch report.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	after, err := h.Service.AdminEdit(r.Context(), user, chi.URLParam(r, "reportID"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, after, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaries(w http.ResponseWriter, r *http.Request) {
	dateRange := summary.DateRange{
		Start: r.URL.Query().Get("startDate"),
		End:   r.URL.Query().Get("endDate"),
	}

	summaries, err := h.Summaries.ForRange(r.Context(), dateRange)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, map[string]any{
		"summaries": summaries,
		"dateRange": dateRange,
	}, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", requestID)
	case errors.Is(err, report.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "report not found", requestID)
	case errors.Is(err, report.ErrInvalidDate), errors.Is(err, summary.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, report.ErrEmptyPatch):
		api.Fail(w, http.StatusBadRequest, "empty_patch", "no fields to update", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "store_error", "report operation failed", requestID)
	}
}
