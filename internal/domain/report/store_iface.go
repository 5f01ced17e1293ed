package report

import "context"

// StoreAPI is the persistence boundary for daily reports. The pgx Store
// implements it in production; tests use an in-memory fake.
type StoreAPI interface {
	GetReport(ctx context.Context, id string) (*DailyReport, error)
	GetReportForDay(ctx context.Context, employeeID, date string) (*DailyReport, error)
	ListReports(ctx context.Context, filter Filter) ([]DailyReport, error)
	ListReportsWithEmployee(ctx context.Context, filter Filter) ([]WithEmployee, error)
	UpsertReport(ctx context.Context, row DailyReport) (*DailyReport, error)
	SaveReport(ctx context.Context, row DailyReport) (*DailyReport, error)
}
