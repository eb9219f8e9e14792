package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/quotation-service/internal/model"
)

// Generator renders the review summary as a one-column A4 document using
// the core Helvetica font, so text goes through a cp1252 translator.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(summary model.Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(summary.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range summary.Sections {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.SetFillColor(235, 240, 245)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", true, 0, "")
		for _, row := range section.Rows {
			addRow(pdf, tr, g.fontName, row)
		}
		pdf.Ln(3)
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(summary.FilesTitle), "", 1, "L", true, 0, "")
	if len(summary.Files) == 0 {
		pdf.SetFont(g.fontName, "I", 10)
		pdf.CellFormat(0, 6, tr(summary.NoFiles), "", 1, "L", false, 0, "")
	} else {
		widths := []float64{95, 55, 30}
		drawTableRow(pdf, tr, g.fontName, summary.FileColumns[:], widths, true)
		for _, f := range summary.Files {
			drawTableRow(pdf, tr, g.fontName, []string{f.Name, safeValue(f.Type), f.SizeText}, widths, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addRow(pdf *gofpdf.Fpdf, tr func(string) string, fontName string, row model.SummaryRow) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(60, 6, tr(row.Label), "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 6, tr(safeValue(row.Value)), "", "L", false)
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
