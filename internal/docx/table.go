package docx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/locvowork/erp_office_note/internal/domain"
)

// Table geometry in twips (1/1440 inch).
const (
	textWidth      = 9360
	tableFontSize  = 18 // half-points
	borderSize     = "8"
	borderColor    = "000000"
	fourColumnWide = 4
)

// fourColumnWidths is the 10/30/30/30 split used for four-column standalone tables.
var fourColumnWidths = []int{1152, 3456, 3456, 3456}

var (
	ErrEmptyTable  = errors.New("table has no header row")
	ErrRaggedTable = errors.New("table row length differs from header")
)

func validateDataset(token string, data domain.Dataset) error {
	header := data.Header()
	if len(header) == 0 {
		return fmt.Errorf("table %s: %w", token, ErrEmptyTable)
	}
	for i, row := range data.Body() {
		if len(row) != len(header) {
			return fmt.Errorf("table %s row %d: %w", token, i+1, ErrRaggedTable)
		}
	}
	return nil
}

func evenWidths(total, n int) []int {
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
	}
	return widths
}

// standaloneWidths fixes the column widths of a table replacing a body paragraph.
func standaloneWidths(cols int) []int {
	if cols == fourColumnWide {
		return append([]int(nil), fourColumnWidths...)
	}
	return evenWidths(textWidth, cols)
}

// cellWidth is the dxa width declared on a template cell, or textWidth when absent.
func cellWidth(tc *etree.Element) int {
	if tcPr := tc.SelectElement("w:tcPr"); tcPr != nil {
		if tcW := tcPr.SelectElement("w:tcW"); tcW != nil {
			if tcW.SelectAttrValue("w:type", "dxa") == "dxa" {
				if w, err := strconv.Atoi(tcW.SelectAttrValue("w:w", "")); err == nil && w > 0 {
					return w
				}
			}
		}
	}
	return textWidth
}

// buildTable renders data as a bordered table: a bold header row then the body rows,
// all text at the table font size.
func buildTable(data domain.Dataset, widths []int) *etree.Element {
	total := 0
	for _, w := range widths {
		total += w
	}

	tbl := etree.NewElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	setDxa(tblPr.CreateElement("w:tblW"), total)
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", borderSize)
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", borderColor)
	}
	tblPr.CreateElement("w:tblLayout").CreateAttr("w:type", "fixed")

	grid := tbl.CreateElement("w:tblGrid")
	for _, w := range widths {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(w))
	}

	for i, row := range data {
		tr := tbl.CreateElement("w:tr")
		for j, val := range row {
			tc := tr.CreateElement("w:tc")
			setDxa(tc.CreateElement("w:tcPr").CreateElement("w:tcW"), widths[j])
			p := tc.CreateElement("w:p")
			if val == "" {
				continue
			}
			r := p.CreateElement("w:r")
			rPr := r.CreateElement("w:rPr")
			if i == 0 {
				rPr.CreateElement("w:b")
			}
			rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(tableFontSize))
			rPr.CreateElement("w:szCs").CreateAttr("w:val", strconv.Itoa(tableFontSize))
			appendText(r, val)
		}
	}
	return tbl
}

func setDxa(e *etree.Element, w int) {
	e.CreateAttr("w:w", strconv.Itoa(w))
	e.CreateAttr("w:type", "dxa")
}

// fillCell discards the content of tc, keeping its properties, and puts a table built
// from data inside it. A cell must end with a paragraph, so an empty one follows the table.
func fillCell(tc *etree.Element, token string, data domain.Dataset) error {
	if err := validateDataset(token, data); err != nil {
		return err
	}
	width := cellWidth(tc)
	for _, c := range tc.ChildElements() {
		if !is(c, "tcPr") {
			tc.RemoveChild(c)
		}
	}
	tc.AddChild(buildTable(data, evenWidths(width, len(data.Header()))))
	tc.CreateElement("w:p")
	return nil
}

// replaceWithTable puts a table built from data at the position of paragraph p.
func replaceWithTable(p *etree.Element, token string, data domain.Dataset) error {
	if err := validateDataset(token, data); err != nil {
		return err
	}
	parent := p.Parent()
	idx := p.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, buildTable(data, standaloneWidths(len(data.Header()))))
	return nil
}
