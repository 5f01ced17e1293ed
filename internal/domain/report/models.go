package report

import "time"

// DailyReport is one employee's submission for one calendar day. ReportDate is
// a plain YYYY-MM-DD string; ISO dates compare correctly as strings.
type DailyReport struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	ReportDate       string    `json:"reportDate"`
	BookTitle        string    `json:"bookTitle,omitempty"`
	PrintingPages    int       `json:"printingPages"`
	TypesettingPages int       `json:"typesettingPages"`
	EditingPages     int       `json:"editingPages"`
	Notes            string    `json:"notes,omitempty"`
	IsLeave          bool      `json:"isLeave"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type WithEmployee struct {
	DailyReport
	EmployeeName string `json:"employeeName"`
}

// Submission is the employee-facing input for the keyed upsert.
type Submission struct {
	ReportDate       string
	BookTitle        string
	PrintingPages    int
	TypesettingPages int
	EditingPages     int
	Notes            string
	IsLeave          bool
}

// Patch carries partial admin edits; nil fields are left unchanged.
type Patch struct {
	BookTitle        *string `json:"bookTitle"`
	PrintingPages    *int    `json:"printingPages"`
	TypesettingPages *int    `json:"typesettingPages"`
	EditingPages     *int    `json:"editingPages"`
	Notes            *string `json:"notes"`
	IsLeave          *bool   `json:"isLeave"`
}

func (p Patch) Empty() bool {
	return p.BookTitle == nil && p.PrintingPages == nil && p.TypesettingPages == nil &&
		p.EditingPages == nil && p.Notes == nil && p.IsLeave == nil
}

type Filter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}
