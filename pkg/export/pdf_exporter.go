package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders seating documents with gofpdf.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	writeTitle(pdf, title, "")

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, value := range data.record(row) {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(pdf)
}

// RenderGrids draws one landscape page per sheet with a boxed cell per seat.
func (e *PDFExporter) RenderGrids(title string, sheets []GridSheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("pdf requires at least one sheet")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	for _, sheet := range sheets {
		pdf.AddPage()
		writeTitle(pdf, title, sheet.Title)
		if sheet.Subtitle != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, 6, sheet.Subtitle, "", 1, "C", false, 0, "")
			pdf.Ln(3)
		}

		cols := 0
		for _, row := range sheet.Cells {
			if len(row) > cols {
				cols = len(row)
			}
		}
		if cols == 0 {
			continue
		}
		cellWidth := 277.0 / float64(cols)
		pdf.SetFont("Arial", "", 8)
		for _, row := range sheet.Cells {
			for c := 0; c < cols; c++ {
				value := ""
				if c < len(row) {
					value = row[c]
				}
				pdf.CellFormat(cellWidth, 12, value, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	return output(pdf)
}

func writeTitle(pdf *gofpdf.Fpdf, title, heading string) {
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	}
	if heading != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, heading, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
