// Package docx builds minimal WordprocessingML documents from an ordered
// sequence of immutable block elements. The block model is assembled first
// and serialized to a .docx package in a single pass, so document structure
// can be tested without touching any OOXML machinery.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Block is one top-level element of the document body.
type Block interface {
	isBlock()
}

// Paragraph is a single run of text. Heading paragraphs render bold at a
// larger size.
type Paragraph struct {
	Text    string
	Heading bool
}

// Table is a grid of plain-text cells.
type Table struct {
	Rows [][]string
}

// PageBreak forces a page boundary before the following block.
type PageBreak struct{}

func (Paragraph) isBlock() {}
func (Table) isBlock()     {}
func (PageBreak) isBlock() {}

// Document is an ordered list of blocks.
type Document struct {
	Blocks []Block
}

// Half-point font sizes, matching Word's default-ish body/heading scale.
const (
	bodySize    = 20
	headingSize = 28
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// Bytes serializes the document into a complete .docx package
// ([Content_Types].xml, _rels/.rels, word/document.xml).
func (d Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", d.documentXML()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create package part %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write package part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return buf.Bytes(), nil
}

func (d Document) documentXML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString("\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, block := range d.Blocks {
		switch v := block.(type) {
		case Paragraph:
			writeParagraph(&b, v)
		case Table:
			writeTable(&b, v)
		case PageBreak:
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
	}

	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p Paragraph) {
	size := bodySize
	props := ""
	if p.Heading {
		size = headingSize
		props = `<w:b/>`
	}
	b.WriteString(`<w:p><w:r><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/>`)
	b.WriteString(props)
	fmt.Fprintf(b, `<w:sz w:val="%d"/></w:rPr>`, size)
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escape(p.Text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func writeTable(b *strings.Builder, t Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/></w:tblPr>`)
	for _, row := range t.Rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc><w:p><w:r><w:t xml:space="preserve">`)
			b.WriteString(escape(cell))
			b.WriteString(`</w:t></w:r></w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
}

func escape(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only fails on a failing writer; bytes.Buffer never does.
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
