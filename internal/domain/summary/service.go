package summary

import (
	"context"

	"worklog/internal/domain/profile"
	"worklog/internal/domain/report"
)

type Service struct {
	Profiles profile.StoreAPI
	Reports  report.StoreAPI
}

func NewService(profiles profile.StoreAPI, reports report.StoreAPI) *Service {
	return &Service{Profiles: profiles, Reports: reports}
}

// ForRange aggregates all active employees over the inclusive date range.
// An inverted range matches no rows, so every employee comes back all-zero.
func (s *Service) ForRange(ctx context.Context, dateRange DateRange) ([]EmployeeSummary, error) {
	if !dateRange.Valid() {
		return nil, ErrInvalidRange
	}

	profiles, err := s.Profiles.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	employees := make([]Employee, 0, len(profiles))
	for _, p := range profiles {
		employees = append(employees, Employee{ID: p.ID, FullName: p.FullName})
	}

	var rows []report.DailyReport
	if !dateRange.Inverted() {
		rows, err = s.Reports.ListReports(ctx, report.Filter{StartDate: dateRange.Start, EndDate: dateRange.End})
		if err != nil {
			return nil, err
		}
	}

	return Summarize(employees, rows), nil
}
