package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"worklog/internal/domain/summary"
)

const (
	maxNameChars = 20
	// Bottom boundary in mm; rows past this point go to a fresh page.
	pageBreakY = 270
)

var pdfColWidths = []float64{58, 22, 22, 22, 22, 22, 22}

var pdfHeaders = []string{"Name", "Print", "Type", "Edit", "Total", "Work", "Leave"}

// PDF renders the summaries into an A4 portrait document: title, date range,
// header row at fixed column offsets, one row per summary with the name
// truncated, a rule line, then a bold totals row. Rows that would overflow the
// page start a new page instead of being dropped.
func PDF(summaries []summary.EmployeeSummary, title string, dateRange summary.DateRange) ([]byte, error) {
	pdf := buildPDF(summaries, title, dateRange)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPDF(summaries []summary.EmployeeSummary, title string, dateRange summary.DateRange) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s - %s", dateRange.Start, dateRange.End))
	pdf.Ln(12)

	writeHeaderRow(pdf)

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range summaries {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			writeHeaderRow(pdf)
			pdf.SetFont("Helvetica", "", 10)
		}
		writeRow(pdf, []string{
			truncateName(s.FullName),
			strconv.Itoa(s.TotalPrintingPages),
			strconv.Itoa(s.TotalTypesettingPages),
			strconv.Itoa(s.TotalEditingPages),
			strconv.Itoa(s.TotalPages()),
			strconv.Itoa(s.TotalWorkdays),
			strconv.Itoa(s.TotalLeaveDays),
		})
	}

	if pdf.GetY() > pageBreakY {
		pdf.AddPage()
	}
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Ln(2)
	pdf.Line(left, pdf.GetY(), pageWidth-right, pdf.GetY())
	pdf.Ln(2)

	totals := summary.Totals(summaries)
	pdf.SetFont("Helvetica", "B", 10)
	writeRow(pdf, []string{
		"TOTAL",
		strconv.Itoa(totals.TotalPrintingPages),
		strconv.Itoa(totals.TotalTypesettingPages),
		strconv.Itoa(totals.TotalEditingPages),
		strconv.Itoa(totals.TotalPages()),
		strconv.Itoa(totals.TotalWorkdays),
		strconv.Itoa(totals.TotalLeaveDays),
	})

	return pdf
}

func writeHeaderRow(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	writeRow(pdf, pdfHeaders)
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(left, pdf.GetY(), pageWidth-right, pdf.GetY())
	pdf.Ln(1)
}

func writeRow(pdf *gofpdf.Fpdf, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(pdfColWidths[i], 7, cell, "", 0, "L", false, 0, "")
	}
	pdf.Ln(7)
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameChars {
		return name
	}
	return string(runes[:maxNameChars])
}
