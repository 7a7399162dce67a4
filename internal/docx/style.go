package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Style is the uniform run formatting applied after rendering. Sizes are in half-points.
type Style struct {
	Font            string
	BodySize        int
	TableSize       int
	NestedTableSize int
	Color           string
}

// DefaultStyle is Arial, 12pt body and headers, 11pt in tables, 9pt in nested tables, black.
func DefaultStyle() Style {
	return Style{
		Font:            "Arial",
		BodySize:        24,
		TableSize:       22,
		NestedTableSize: 18,
		Color:           "000000",
	}
}

func (s Style) sizeAt(depth int) int {
	switch {
	case depth == 0:
		return s.BodySize
	case depth == 1:
		return s.TableSize
	default:
		return s.NestedTableSize
	}
}

// rPrOrder is the schema order of the run property children.
var rPrOrder = func() map[string]int {
	tags := []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish", "webHidden",
		"color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
		"specVanish", "oMath",
	}
	m := make(map[string]int, len(tags))
	for i, t := range tags {
		m[t] = i
	}
	return m
}()

func rank(e *etree.Element) int {
	if r, ok := rPrOrder[e.Tag]; ok && e.Space == "w" {
		return r
	}
	return len(rPrOrder)
}

// setProperty replaces the rPr child named tag with a fresh element placed in schema order.
func setProperty(rPr *etree.Element, tag string, attrs ...string) {
	for _, c := range children(rPr, tag) {
		rPr.RemoveChild(c)
	}
	el := etree.NewElement("w:" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.CreateAttr(attrs[i], attrs[i+1])
	}
	want := rPrOrder[tag]
	idx := len(rPr.Child)
	for _, c := range rPr.ChildElements() {
		if rank(c) > want {
			idx = c.Index()
			break
		}
	}
	rPr.InsertChildAt(idx, el)
}

func (s Style) apply(r *etree.Element, depth int) {
	rPr := r.SelectElement("w:rPr")
	if rPr == nil {
		rPr = etree.NewElement("w:rPr")
		r.InsertChildAt(0, rPr)
	}
	size := strconv.Itoa(s.sizeAt(depth))
	setProperty(rPr, "rFonts", "w:ascii", s.Font, "w:hAnsi", s.Font, "w:cs", s.Font)
	setProperty(rPr, "color", "w:val", s.Color)
	setProperty(rPr, "sz", "w:val", size)
	setProperty(rPr, "szCs", "w:val", size)
}

// normalize styles every run under root. depth counts the tables enclosing an element.
func (s Style) normalize(root *etree.Element, depth int) {
	for _, c := range root.ChildElements() {
		switch {
		case is(c, "r"):
			s.apply(c, depth)
		case is(c, "tbl"):
			s.normalize(c, depth+1)
		default:
			s.normalize(c, depth)
		}
	}
}

// Normalize applies the document style to the body and every header and footer part.
// It is idempotent.
func (d *Document) Normalize() {
	d.Style.normalize(d.body, 0)
	for _, h := range d.headers {
		d.Style.normalize(h, 0)
	}
}
