package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const reportColumns = `id, employee_id, to_char(report_date, 'YYYY-MM-DD'),
           COALESCE(book_title,''), printing_pages, typesetting_pages, editing_pages,
           COALESCE(notes,''), is_leave, created_at, updated_at`

func (s *Store) GetReport(ctx context.Context, id string) (*DailyReport, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+reportColumns+`
    FROM daily_reports
    WHERE id = $1
  `, id)
	return scanReport(row)
}

func (s *Store) GetReportForDay(ctx context.Context, employeeID, date string) (*DailyReport, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+reportColumns+`
    FROM daily_reports
    WHERE employee_id = $1 AND report_date = $2::date
  `, employeeID, date)
	return scanReport(row)
}

func (s *Store) ListReports(ctx context.Context, filter Filter) ([]DailyReport, error) {
	query, args := buildListQuery("SELECT "+reportColumns+" FROM daily_reports WHERE 1=1", filter, "")
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyReport
	for rows.Next() {
		rpt, err := scanReportRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rpt)
	}
	return out, rows.Err()
}

func (s *Store) ListReportsWithEmployee(ctx context.Context, filter Filter) ([]WithEmployee, error) {
	query, args := buildListQuery(`
    SELECT r.id, r.employee_id, to_char(r.report_date, 'YYYY-MM-DD'),
           COALESCE(r.book_title,''), r.printing_pages, r.typesetting_pages, r.editing_pages,
           COALESCE(r.notes,''), r.is_leave, r.created_at, r.updated_at, p.full_name
    FROM daily_reports r
    JOIN profiles p ON r.employee_id = p.id
    WHERE 1=1`, filter, "r.")
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WithEmployee
	for rows.Next() {
		var rpt WithEmployee
		if err := rows.Scan(
			&rpt.ID, &rpt.EmployeeID, &rpt.ReportDate, &rpt.BookTitle,
			&rpt.PrintingPages, &rpt.TypesettingPages, &rpt.EditingPages,
			&rpt.Notes, &rpt.IsLeave, &rpt.CreatedAt, &rpt.UpdatedAt, &rpt.EmployeeName,
		); err != nil {
			return nil, err
		}
		out = append(out, rpt)
	}
	return out, rows.Err()
}

// UpsertReport inserts or replaces the row keyed on (employee_id, report_date).
// The uniqueness constraint serializes concurrent submissions for the same day.
func (s *Store) UpsertReport(ctx context.Context, row DailyReport) (*DailyReport, error) {
	result := s.DB.QueryRow(ctx, `
    INSERT INTO daily_reports (employee_id, report_date, book_title, printing_pages, typesetting_pages, editing_pages, notes, is_leave)
    VALUES ($1, $2::date, nullif($3,''), $4, $5, $6, nullif($7,''), $8)
    ON CONFLICT (employee_id, report_date) DO UPDATE SET
      book_title = EXCLUDED.book_title,
      printing_pages = EXCLUDED.printing_pages,
      typesetting_pages = EXCLUDED.typesetting_pages,
      editing_pages = EXCLUDED.editing_pages,
      notes = EXCLUDED.notes,
      is_leave = EXCLUDED.is_leave,
      updated_at = now()
    RETURNING `+reportColumns+`
  `, row.EmployeeID, row.ReportDate, row.BookTitle, row.PrintingPages, row.TypesettingPages, row.EditingPages, row.Notes, row.IsLeave)
	return scanReport(result)
}

func (s *Store) SaveReport(ctx context.Context, row DailyReport) (*DailyReport, error) {
	result := s.DB.QueryRow(ctx, `
    UPDATE daily_reports
    SET book_title = nullif($2,''),
        printing_pages = $3,
        typesetting_pages = $4,
        editing_pages = $5,
        notes = nullif($6,''),
        is_leave = $7,
        updated_at = now()
    WHERE id = $1
    RETURNING `+reportColumns+`
  `, row.ID, row.BookTitle, row.PrintingPages, row.TypesettingPages, row.EditingPages, row.Notes, row.IsLeave)
	return scanReport(result)
}

func buildListQuery(prefix string, filter Filter, alias string) (string, []any) {
	query := prefix
	args := []any{}
	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND %semployee_id = $%d", alias, len(args)+1)
		args = append(args, filter.EmployeeID)
	}
	if filter.StartDate != "" {
		query += fmt.Sprintf(" AND %sreport_date >= $%d::date", alias, len(args)+1)
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += fmt.Sprintf(" AND %sreport_date <= $%d::date", alias, len(args)+1)
		args = append(args, filter.EndDate)
	}
	query += fmt.Sprintf(" ORDER BY %sreport_date DESC", alias)
	return query, args
}

func scanReport(row pgx.Row) (*DailyReport, error) {
	var rpt DailyReport
	err := row.Scan(
		&rpt.ID, &rpt.EmployeeID, &rpt.ReportDate, &rpt.BookTitle,
		&rpt.PrintingPages, &rpt.TypesettingPages, &rpt.EditingPages,
		&rpt.Notes, &rpt.IsLeave, &rpt.CreatedAt, &rpt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rpt, nil
}

func scanReportRow(rows pgx.Rows) (*DailyReport, error) {
	var rpt DailyReport
	if err := rows.Scan(
		&rpt.ID, &rpt.EmployeeID, &rpt.ReportDate, &rpt.BookTitle,
		&rpt.PrintingPages, &rpt.TypesettingPages, &rpt.EditingPages,
		&rpt.Notes, &rpt.IsLeave, &rpt.CreatedAt, &rpt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rpt, nil
}
