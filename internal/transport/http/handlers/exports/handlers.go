package exportshandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worklog/internal/domain/auth"
	"worklog/internal/domain/export"
	"worklog/internal/domain/summary"
	"worklog/internal/transport/http/api"
	"worklog/internal/transport/http/middleware"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type Handler struct {
	Summaries *summary.Service
	Title     string
}

func NewHandler(summaries *summary.Service, title string) *Handler {
	return &Handler{Summaries: summaries, Title: title}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/exports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/excel", h.handleExcel)
		r.Get("/pdf", h.handlePDF)
	})
}

func (h *Handler) handleExcel(w http.ResponseWriter, r *http.Request) {
	summaries, dateRange, ok := h.load(w, r)
	if !ok {
		return
	}

	payload, err := export.Excel(summaries, h.Title, dateRange)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "spreadsheet rendering failed", middleware.GetRequestID(r.Context()))
		return
	}
	writeAttachment(w, payload, mimeXLSX, fmt.Sprintf("report_%s_%s.xlsx", dateRange.Start, dateRange.End))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	summaries, dateRange, ok := h.load(w, r)
	if !ok {
		return
	}

	payload, err := export.PDF(summaries, h.Title, dateRange)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "document rendering failed", middleware.GetRequestID(r.Context()))
		return
	}
	writeAttachment(w, payload, mimePDF, fmt.Sprintf("report_%s_%s.pdf", dateRange.Start, dateRange.End))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) ([]summary.EmployeeSummary, summary.DateRange, bool) {
	dateRange := summary.DateRange{
		Start: r.URL.Query().Get("startDate"),
		End:   r.URL.Query().Get("endDate"),
	}

	summaries, err := h.Summaries.ForRange(r.Context(), dateRange)
	if err != nil {
		if errors.Is(err, summary.ErrInvalidRange) {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
		} else {
			api.Fail(w, http.StatusInternalServerError, "store_error", "summary aggregation failed", middleware.GetRequestID(r.Context()))
		}
		return nil, dateRange, false
	}
	return summaries, dateRange, true
}

func writeAttachment(w http.ResponseWriter, payload []byte, mime, filename string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
