package summary

import (
	"sort"
	"time"

	"worklog/internal/domain/report"
)

// Employee is the minimal identity the aggregation needs.
type Employee struct {
	ID       string
	FullName string
}

// EmployeeSummary aggregates one employee's reports over a date range. It is
// derived on demand and never persisted.
type EmployeeSummary struct {
	EmployeeID            string `json:"employeeId"`
	FullName              string `json:"fullName"`
	TotalPrintingPages    int    `json:"totalPrintingPages"`
	TotalTypesettingPages int    `json:"totalTypesettingPages"`
	TotalEditingPages     int    `json:"totalEditingPages"`
	TotalWorkdays         int    `json:"totalWorkdays"`
	TotalLeaveDays        int    `json:"totalLeaveDays"`
}

func (s EmployeeSummary) TotalPages() int {
	return s.TotalPrintingPages + s.TotalTypesettingPages + s.TotalEditingPages
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Valid reports whether both bounds parse as YYYY-MM-DD dates.
func (r DateRange) Valid() bool {
	for _, value := range []string{r.Start, r.End} {
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return false
		}
	}
	return true
}

// Inverted reports whether the range can match no calendar day. ISO date
// strings compare correctly lexicographically.
func (r DateRange) Inverted() bool {
	return r.Start > r.End
}

// Summarize builds one summary per employee from reports already restricted to
// the requested range. Employees without reports get an all-zero summary. A
// report counts as exactly one workday or one leave day, never both. Results
// are ordered by descending grand page total; ties keep the employees' given
// order (the sort is stable).
func Summarize(employees []Employee, reports []report.DailyReport) []EmployeeSummary {
	summaries := make([]EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		s := EmployeeSummary{EmployeeID: emp.ID, FullName: emp.FullName}
		for _, rpt := range reports {
			if rpt.EmployeeID != emp.ID {
				continue
			}
			s.TotalPrintingPages += rpt.PrintingPages
			s.TotalTypesettingPages += rpt.TypesettingPages
			s.TotalEditingPages += rpt.EditingPages
			if rpt.IsLeave {
				s.TotalLeaveDays++
			} else {
				s.TotalWorkdays++
			}
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalPages() > summaries[j].TotalPages()
	})
	return summaries
}

// Totals folds a summary list into one column-wise total row.
func Totals(summaries []EmployeeSummary) EmployeeSummary {
	total := EmployeeSummary{}
	for _, s := range summaries {
		total.TotalPrintingPages += s.TotalPrintingPages
		total.TotalTypesettingPages += s.TotalTypesettingPages
		total.TotalEditingPages += s.TotalEditingPages
		total.TotalWorkdays += s.TotalWorkdays
		total.TotalLeaveDays += s.TotalLeaveDays
	}
	return total
}
