package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"worklog/internal/domain/summary"
)

const sheetName = "Report"

var excelHeaders = []any{"Name", "Printing", "Typesetting", "Editing", "Total", "Workdays", "LeaveDays"}

// Excel renders the summaries into a single-sheet xlsx workbook: title row,
// date-range row, blank separator, header row, one row per summary in the
// given order, blank separator, totals row. Pure function of its inputs.
func Excel(summaries []summary.EmployeeSummary, title string, dateRange summary.DateRange) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	rows := [][]any{
		{title},
		{fmt.Sprintf("From: %s To: %s", dateRange.Start, dateRange.End)},
		{},
		excelHeaders,
	}
	for _, s := range summaries {
		rows = append(rows, []any{
			s.FullName,
			s.TotalPrintingPages,
			s.TotalTypesettingPages,
			s.TotalEditingPages,
			s.TotalPages(),
			s.TotalWorkdays,
			s.TotalLeaveDays,
		})
	}
	totals := summary.Totals(summaries)
	rows = append(rows, []any{}, []any{
		"Total",
		totals.TotalPrintingPages,
		totals.TotalTypesettingPages,
		totals.TotalEditingPages,
		totals.TotalPages(),
		totals.TotalWorkdays,
		totals.TotalLeaveDays,
	})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 25); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "E", 15); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "F", "G", 12); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
