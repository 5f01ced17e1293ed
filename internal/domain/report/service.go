package report

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"worklog/internal/domain/audit"
	"worklog/internal/domain/auth"
)

type Service struct {
	Store StoreAPI
	Audit audit.Recorder
}

func NewService(store StoreAPI, auditor audit.Recorder) *Service {
	return &Service{Store: store, Audit: auditor}
}

// Submit is the employee-facing upsert keyed on (employee, date). Leave rows
// force all page counts to zero and clear the book title; negative pages are
// clamped rather than rejected.
func (s *Service) Submit(ctx context.Context, actor auth.UserContext, input Submission) (*DailyReport, error) {
	if !validDate(input.ReportDate) {
		return nil, ErrInvalidDate
	}

	row := DailyReport{
		EmployeeID:       actor.UserID,
		ReportDate:       input.ReportDate,
		BookTitle:        strings.TrimSpace(input.BookTitle),
		PrintingPages:    clampPages(input.PrintingPages),
		TypesettingPages: clampPages(input.TypesettingPages),
		EditingPages:     clampPages(input.EditingPages),
		Notes:            strings.TrimSpace(input.Notes),
		IsLeave:          input.IsLeave,
	}
	if row.IsLeave {
		row.BookTitle = ""
		row.PrintingPages = 0
		row.TypesettingPages = 0
		row.EditingPages = 0
	}

	return s.Store.UpsertReport(ctx, row)
}

// AdminEdit applies a partial update to an existing report and appends one
// ADMIN_EDIT audit record with before/after snapshots. The audit write is
// best-effort: a failure is logged and never rolls back the edit. Unlike the
// submission path, toggling IsLeave here does not zero untouched page fields;
// the patch is stored exactly as given.
func (s *Service) AdminEdit(ctx context.Context, actor auth.UserContext, reportID string, patch Patch) (*DailyReport, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, auth.ErrUnauthorized
	}
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}

	before, err := s.Store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	merged := applyPatch(*before, patch)
	after, err := s.Store.SaveReport(ctx, merged)
	if err != nil {
		return nil, err
	}

	if s.Audit != nil {
		entry := audit.Entry{
			ActorID:          actor.UserID,
			TargetEmployeeID: before.EmployeeID,
			ReportID:         reportID,
			Action:           audit.ActionAdminEdit,
			Before:           before,
			After:            after,
		}
		if err := s.Audit.Record(ctx, entry); err != nil {
			slog.Warn("admin edit audit failed", "reportId", reportID, "err", err)
		}
	}

	return after, nil
}

func (s *Service) ListMine(ctx context.Context, actor auth.UserContext, startDate, endDate string) ([]DailyReport, error) {
	if err := validOptionalRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.Store.ListReports(ctx, Filter{EmployeeID: actor.UserID, StartDate: startDate, EndDate: endDate})
}

func (s *Service) GetForDay(ctx context.Context, actor auth.UserContext, date string) (*DailyReport, error) {
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	return s.Store.GetReportForDay(ctx, actor.UserID, date)
}

func (s *Service) ListAll(ctx context.Context, actor auth.UserContext, filter Filter) ([]WithEmployee, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, auth.ErrUnauthorized
	}
	if err := validOptionalRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}
	return s.Store.ListReportsWithEmployee(ctx, filter)
}

func applyPatch(row DailyReport, patch Patch) DailyReport {
	if patch.BookTitle != nil {
		row.BookTitle = strings.TrimSpace(*patch.BookTitle)
	}
	if patch.PrintingPages != nil {
		row.PrintingPages = clampPages(*patch.PrintingPages)
	}
	if patch.TypesettingPages != nil {
		row.TypesettingPages = clampPages(*patch.TypesettingPages)
	}
	if patch.EditingPages != nil {
		row.EditingPages = clampPages(*patch.EditingPages)
	}
	if patch.Notes != nil {
		row.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.IsLeave != nil {
		row.IsLeave = *patch.IsLeave
	}
	return row
}

func clampPages(pages int) int {
	if pages < 0 {
		return 0
	}
	return pages
}

func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validOptionalRange(startDate, endDate string) error {
	if startDate != "" && !validDate(startDate) {
		return ErrInvalidDate
	}
	if endDate != "" && !validDate(endDate) {
		return ErrInvalidDate
	}
	return nil
}
