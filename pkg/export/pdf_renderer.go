package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 277.0 // A4 landscape minus margins
	pdfLabelWidth  = 28.0
	pdfSlotWidth   = 30.0
	pdfHeaderFont  = 9.0
	pdfBodyFont    = 8.0
	pdfRowHeight   = 7.0
	pdfTitle       = "Weekly timetable"
	pdfSummaryName = "Department summary"
)

// PDFRenderer lays the timetable out on landscape A4 pages followed by the department summary
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (renderer *PDFRenderer) Render(document Document) ([]byte, error) {
	if len(document.Table.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one classroom column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, pdfTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", pdfBodyFont)
	bounds := fmt.Sprintf("Objective %.4f   L %.4f   U %.4f", document.Objective, document.Lower, document.Upper)
	if !document.Optimal {
		bounds += "   (not proven optimal)"
	}
	pdf.CellFormat(0, 6, bounds, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	//** Timetable grid
	roomWidth := (pdfPageWidth - pdfLabelWidth - pdfSlotWidth) / float64(len(document.Table.Columns))
	pdf.SetFont("Arial", "B", pdfHeaderFont)
	pdf.CellFormat(pdfLabelWidth, 8, "Weekday", "1", 0, "C", false, 0, "")
	pdf.CellFormat(pdfSlotWidth, 8, "Timeslot", "1", 0, "C", false, 0, "")
	for _, column := range document.Table.Columns {
		pdf.CellFormat(roomWidth, 8, column, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", pdfBodyFont)
	for _, row := range document.Table.Rows {
		pdf.CellFormat(pdfLabelWidth, pdfRowHeight, row.Label, "1", 0, "", false, 0, "")
		pdf.CellFormat(pdfSlotWidth, pdfRowHeight, row.Timeslot, "1", 0, "", false, 0, "")
		for _, cell := range row.Cells {
			pdf.CellFormat(roomWidth, pdfRowHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	//** Department summary
	if len(document.Summaries) > 0 {
		headers := []string{"Department", "Achieved", "Reference", "Ratio", "Hours", "Required", "Big room"}
		width := pdfPageWidth / float64(len(headers))

		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, pdfSummaryName, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", pdfHeaderFont)
		for _, header := range headers {
			pdf.CellFormat(width, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", pdfBodyFont)
		for _, summary := range document.Summaries {
			values := []string{
				summary.Department,
				fmt.Sprintf("%g", summary.Achieved),
				fmt.Sprintf("%g", summary.Reference),
				fmt.Sprintf("%.4f", summary.Ratio),
				fmt.Sprintf("%g", summary.ScheduledHours),
				fmt.Sprintf("%g", summary.RequiredHours),
				fmt.Sprintf("%d", summary.BigRoomSessions),
			}
			for _, value := range values {
				pdf.CellFormat(width, pdfRowHeight, value, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
