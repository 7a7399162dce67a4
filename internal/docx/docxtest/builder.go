// Package docxtest builds minimal Word templates in memory for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"
)

// Modified is the timestamp stamped on every entry so fixtures are reproducible.
var Modified = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Builder accumulates body blocks and header paragraphs.
type Builder struct {
	body   []string
	header []string
}

// New starts an empty template.
func New() *Builder {
	return &Builder{}
}

// Paragraph adds a body paragraph; each argument becomes its own run, so a placeholder
// can be split across runs the way Word does.
func (b *Builder) Paragraph(runs ...string) *Builder {
	b.body = append(b.body, paragraph(runs))
	return b
}

// Table adds a body table; each cell holds one paragraph with one run. Cells are 4680
// twips wide.
func (b *Builder) Table(rows ...[]string) *Builder {
	b.body = append(b.body, table(rows))
	return b
}

// Header adds a paragraph to the default header part.
func (b *Builder) Header(runs ...string) *Builder {
	b.header = append(b.header, paragraph(runs))
	return b
}

func paragraph(runs []string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, r := range runs {
		fmt.Fprintf(&sb, `<w:r><w:rPr><w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman"/><w:i/><w:sz w:val="20"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`, html.EscapeString(r))
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func table(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid>`)
	if len(rows) > 0 {
		for range rows[0] {
			sb.WriteString(`<w:gridCol w:w="4680"/>`)
		}
	}
	sb.WriteString("</w:tblGrid>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="4680" w:type="dxa"/></w:tcPr>`)
			sb.WriteString(paragraph([]string{cell}))
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

// Bytes renders the template as a docx archive.
func (b *Builder) Bytes() ([]byte, error) {
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="` + wordNS + `" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
		strings.Join(b.body, "") +
		`<w:sectPr><w:headerReference w:type="default" r:id="rId1"/><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:body></w:document>`
	header := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:hdr xmlns:w="` + wordNS + `">` + strings.Join(b.header, "") + `</w:hdr>`

	entries := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", document},
		{"word/_rels/document.xml.rels", documentRels},
		{"word/header1.xml", header},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, Modified: Modified})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustBytes is Bytes for test setup; it panics on error.
func (b *Builder) MustBytes() []byte {
	data, err := b.Bytes()
	if err != nil {
		panic(err)
	}
	return data
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/></Relationships>`
