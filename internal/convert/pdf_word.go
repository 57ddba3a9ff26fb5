package convert

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"convertd/internal/docx"
)

const wordContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Caps on the naive text-to-table reconstruction.
const (
	maxTableRows  = 5
	maxTableCells = 3
	headingMaxLen = 100
)

// ConvertPdfToWord extracts the text layer of each PDF page, builds an
// immutable block model (paragraphs with heading detection, tab/pipe
// delimited lines grouped into tables), and serializes the whole structure
// into a .docx in one pass. Only the embedded text layer is read; scanned
// image-only PDFs produce an empty document.
func ConvertPdfToWord(file File, _ Options) Response {
	pages, err := extractPdfPages(file.Data)
	if err != nil {
		return convFailure("pdf-to-word", "could not parse PDF", err)
	}

	doc := docx.Document{Blocks: buildBlocks(pages)}
	out, err := doc.Bytes()
	if err != nil {
		return convFailure("pdf-to-word", "could not build document", err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + ".docx",
		Data:        out,
		ContentType: wordContentType,
	}
}

// extractPdfPages returns the plain text of every non-null page.
// The parser panics on some malformed inputs; recover folds that into an
// ordinary error.
func extractPdfPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			slog.Warn("skipping unreadable pdf page", "page", i, "error", err)
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// buildBlocks turns per-page text into the document block sequence.
// Consecutive delimited lines collapse into one table; pages after the
// first start behind a page break.
func buildBlocks(pages []string) []docx.Block {
	var blocks []docx.Block

	for i, page := range pages {
		if i > 0 {
			blocks = append(blocks, docx.PageBreak{})
		}

		var tableRows [][]string
		flush := func() {
			if len(tableRows) > 0 {
				blocks = append(blocks, docx.Table{Rows: tableRows})
				tableRows = nil
			}
		}

		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if cells := splitTableRow(line); cells != nil {
				if len(tableRows) < maxTableRows {
					tableRows = append(tableRows, cells)
				}
				continue
			}
			flush()
			blocks = append(blocks, docx.Paragraph{Text: line, Heading: isHeading(line)})
		}
		flush()
	}
	return blocks
}

// isHeading treats a short all-caps line containing at least one letter as
// a heading.
func isHeading(line string) bool {
	if len(line) >= headingMaxLen {
		return false
	}
	if strings.IndexFunc(line, unicode.IsLetter) < 0 {
		return false
	}
	return strings.ToUpper(line) == line
}

// splitTableRow splits a tab- or pipe-delimited line into cells.
// Lines with fewer than two cells are not table rows.
func splitTableRow(line string) []string {
	if !strings.ContainsAny(line, "\t|") {
		return nil
	}
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == '\t' || r == '|'
	})
	var cells []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cells = append(cells, p)
		if len(cells) == maxTableCells {
			break
		}
	}
	if len(cells) < 2 {
		return nil
	}
	return cells
}
