package convert

import (
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ConvertPdfToExcel splits each line of the extracted PDF text on common
// delimiters and writes the pieces into worksheet cells. This capability is
// deliberately absent from the routed operation catalog.
func ConvertPdfToExcel(file File, _ Options) Response {
	pages, err := extractPdfPages(file.Data)
	if err != nil {
		return convFailure("pdf-to-excel", "could not parse PDF", err)
	}

	wb := excelize.NewFile()
	defer wb.Close()
	const sheet = "Sheet1"

	row := 1
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			for ci, part := range splitDelimited(line) {
				cell, err := excelize.CoordinatesToCellName(ci+1, row)
				if err != nil {
					break
				}
				if err := wb.SetCellValue(sheet, cell, part); err != nil {
					slog.Warn("skipping cell", "cell", cell, "error", err)
				}
			}
			row++
		}
	}

	if err := wb.SetColWidth(sheet, "A", "Z", 18); err != nil {
		slog.Warn("could not set column widths", "error", err)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return convFailure("pdf-to-excel", "could not build workbook", err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + ".xlsx",
		Data:        buf.Bytes(),
		ContentType: excelContentType,
	}
}

func splitDelimited(line string) []string {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == '\t' || r == ';' || r == ',' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
