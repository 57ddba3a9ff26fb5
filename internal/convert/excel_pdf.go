package convert

import (
	"bytes"
	"log/slog"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Rendering caps per worksheet page.
const (
	maxRenderRows = 50
	maxRenderCols = 10
	gridCellH     = 8.0
	gridMargin    = 10.0
	cellTextMax   = 20
)

// ConvertExcelToPdf renders each worksheet as a bordered grid on its own A4
// page: shaded bold header row, cell text truncated to keep the grid
// readable, capped at the first 50 rows and 10 columns.
func ConvertExcelToPdf(file File, _ Options) Response {
	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		return convFailure("excel-to-pdf", "could not open spreadsheet", err)
	}
	defer wb.Close()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			slog.Warn("skipping unreadable worksheet", "sheet", sheet, "error", err)
			continue
		}
		renderWorksheet(pdf, tr, sheet, rows)
	}

	if pdf.PageCount() == 0 {
		return failure("conversion failed: spreadsheet has no readable worksheets")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return convFailure("excel-to-pdf", "could not render PDF", err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + ".pdf",
		Data:        buf.Bytes(),
		ContentType: "application/pdf",
	}
}

func renderWorksheet(pdf *gofpdf.Fpdf, tr func(string) string, name string, rows [][]string) {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, tr(name), "", 1, "C", false, 0, "")

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}
	if cols > maxRenderCols {
		cols = maxRenderCols
	}

	// Divide the width as if there were at least ten columns, so sparse
	// sheets don't smear a couple of cells across the whole page.
	cellW := (pageW - 2*gridMargin) / float64(max(cols, maxRenderCols))

	pdf.SetLineWidth(0.2)
	pdf.SetFillColor(211, 211, 211)

	startY := pdf.GetY() + 2
	for ri := 0; ri < len(rows) && ri < maxRenderRows; ri++ {
		header := ri == 0
		if header {
			pdf.SetFont("Arial", "B", 8)
		} else {
			pdf.SetFont("Arial", "", 8)
		}

		pdf.SetXY(gridMargin, startY+float64(ri)*gridCellH)
		for ci := 0; ci < cols; ci++ {
			val := ""
			if ci < len(rows[ri]) {
				val = rows[ri][ci]
			}
			if r := []rune(val); len(r) > cellTextMax {
				val = string(r[:cellTextMax-3]) + "..."
			}
			pdf.CellFormat(cellW, gridCellH, tr(val), "1", 0, "L", header, 0, "")
		}
	}
}
