// Package reporting renders batch identification runs to exportable
// documents. Writing a report is an explicit caller action; the engine
// itself persists nothing.
package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/core/ports"
)

var _ ports.ReportExporter = (*PDFExporter)(nil)

// PDFExporter exports batch reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export generates a PDF summary of a batch identification run
func (e *PDFExporter) Export(report *domain.BatchReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addStatistics(pdf, report)
	e.addDescriptions(pdf, report)
	e.addErrors(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report title, run ID and timing
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.BatchReport) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "File Identification Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Run ID: %s", report.RunID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Duration: %s", report.Duration), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

// addStatistics adds the run totals
func (e *PDFExporter) addStatistics(pdf *gofpdf.Fpdf, report *domain.BatchReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Total Entries", fmt.Sprintf("%d", report.Total), []int{0, 102, 204}},
		{"Identified", fmt.Sprintf("%d", report.Identified), []int{52, 199, 89}},
		{"Directories", fmt.Sprintf("%d", report.Directories), []int{0, 102, 204}},
		{"Failed", fmt.Sprintf("%d", report.Failed), []int{220, 53, 69}},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, stat.value, "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(10)
}

// addDescriptions adds the per-description breakdown table
func (e *PDFExporter) addDescriptions(pdf *gofpdf.Fpdf, report *domain.BatchReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "File Types", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.ByDescription) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No files identified", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	// Table header
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(140, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Count", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range report.ByDescription {
		pdf.CellFormat(140, 7, row.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)
}

// addErrors adds the failed-entry table
func (e *PDFExporter) addErrors(pdf *gofpdf.Fpdf, report *domain.BatchReport) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Errors", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.Errors) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No errors", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(80, 8, "Path", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Kind", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, "Message", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(220, 53, 69)
	for _, row := range report.Errors {
		pdf.CellFormat(80, 7, row.Path, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, string(row.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row.Message, "1", 1, "L", false, 0, "")
	}
}
