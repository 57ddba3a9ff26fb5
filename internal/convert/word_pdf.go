package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ConvertWordToPdf extracts the linear text of a .docx and renders it as
// wrapped paragraphs on A4 pages. Formatting beyond paragraph boundaries is
// not preserved.
func ConvertWordToPdf(file File, _ Options) Response {
	text, err := extractDocxText(file.Data)
	if err != nil {
		return convFailure("word-to-pdf", "could not read Word document", err)
	}

	out, err := renderTextPdf(text)
	if err != nil {
		return convFailure("word-to-pdf", "could not render PDF", err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + ".pdf",
		Data:        out,
		ContentType: "application/pdf",
	}
}

// extractDocxText pulls the document body text out of the OPC package.
// A .docx is a zip whose word/document.xml holds all body text in <w:t>
// elements; paragraphs, breaks and tabs map to their plain-text equivalents.
func extractDocxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not an OOXML package: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()
		return collectDocumentText(rc)
	}
	return "", errors.New("word/document.xml missing from package")
}

func collectDocumentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func renderTextPdf(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimRight(para, " \r")
		if para == "" {
			pdf.Ln(2.5)
			continue
		}
		pdf.MultiCell(0, 5, tr(para), "", "L", false)
		pdf.Ln(2.5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
