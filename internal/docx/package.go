// Package docx renders office notes from a Word template: placeholder substitution,
// table insertion and a final style pass over the WordprocessingML parts.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/beevik/etree"
)

const documentPart = "word/document.xml"

// ErrInvalidTemplate is returned for archives that are not usable Word documents.
var ErrInvalidTemplate = errors.New("invalid docx template")

// headerFooterPart matches the section header and footer parts of a document.
var headerFooterPart = regexp.MustCompile(`^word/(header|footer)\d*\.xml$`)

// Document is an in-memory Word document. Parts that are parsed may be mutated; the rest
// of the archive is copied through untouched by Bytes.
type Document struct {
	Style Style

	files   []*zip.File
	parts   map[string]*etree.Document
	body    *etree.Element
	headers []*etree.Element
}

// Load reads a template from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return Open(data)
}

// Open parses a template held in memory. The caller must not modify data afterwards.
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	d := &Document{
		Style: DefaultStyle(),
		files: zr.File,
		parts: make(map[string]*etree.Document),
	}
	for _, f := range zr.File {
		if f.Name != documentPart && !headerFooterPart.MatchString(f.Name) {
			continue
		}
		doc, err := readPart(f)
		if err != nil {
			return nil, err
		}
		d.parts[f.Name] = doc
		if f.Name != documentPart {
			if root := doc.Root(); root != nil {
				d.headers = append(d.headers, root)
			}
		}
	}

	main, ok := d.parts[documentPart]
	if !ok || main.Root() == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidTemplate, documentPart)
	}
	d.body = main.Root().SelectElement("w:body")
	if d.body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrInvalidTemplate, documentPart)
	}
	return d, nil
}

func readPart(f *zip.File) (*etree.Document, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidTemplate, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidTemplate, f.Name, err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidTemplate, f.Name, err)
	}
	return doc, nil
}

// Bytes serializes the document. Entries keep the template's order, names and timestamps,
// so rendering the same inputs twice yields identical bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range d.files {
		doc, parsed := d.parts[f.Name]
		if !parsed {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}

		data, err := doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize %s: %w", f.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Comment:  f.Comment,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
