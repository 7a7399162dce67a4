package docx

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/locvowork/erp_office_note/internal/domain"
)

// placeholder is the token grammar: ${name} with a name free of braces.
var placeholder = regexp.MustCompile(`\$\{([^{}]+)\}`)

// Token returns the placeholder text for name.
func Token(name string) string {
	return "${" + name + "}"
}

func is(e *etree.Element, tag string) bool {
	return e != nil && e.Space == "w" && e.Tag == tag
}

func children(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if is(c, tag) {
			out = append(out, c)
		}
	}
	return out
}

// paragraphRuns lists the runs whose text makes up the visible paragraph text.
func paragraphRuns(p *etree.Element) []*etree.Element {
	var runs []*etree.Element
	for _, c := range p.ChildElements() {
		switch {
		case is(c, "r"):
			runs = append(runs, c)
		case is(c, "hyperlink"), is(c, "smartTag"), is(c, "ins"):
			runs = append(runs, children(c, "r")...)
		}
	}
	return runs
}

func isTextContent(e *etree.Element) bool {
	return is(e, "t") || is(e, "tab") || is(e, "br") || is(e, "cr")
}

// paragraphText is the visible text of p; tabs and breaks become \t and \n.
func paragraphText(p *etree.Element) string {
	var b strings.Builder
	for _, r := range paragraphRuns(p) {
		for _, c := range r.ChildElements() {
			switch {
			case is(c, "t"):
				b.WriteString(c.Text())
			case is(c, "tab"):
				b.WriteByte('\t')
			case is(c, "br"), is(c, "cr"):
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// cellText is the text of every paragraph directly in a table cell, one per line.
func cellText(tc *etree.Element) string {
	var parts []string
	for _, p := range children(tc, "p") {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

// substitute replaces every known ${key} in one pass; values are not rescanned and
// unknown keys stay literal.
func substitute(text string, vars domain.Vars) string {
	return placeholder.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := vars[tok[2:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

// replaceParagraph substitutes vars in p. A paragraph whose text changes is collapsed into
// its first run; an unchanged paragraph keeps its runs as they are.
func replaceParagraph(p *etree.Element, vars domain.Vars) bool {
	text := paragraphText(p)
	if !strings.Contains(text, "${") {
		return false
	}
	replaced := substitute(text, vars)
	if replaced == text {
		return false
	}
	setParagraphText(p, replaced)
	return true
}

// setParagraphText drops the text of every run and writes text into the first one.
// Runs left with nothing but properties are removed; runs holding drawings or fields stay.
func setParagraphText(p *etree.Element, text string) {
	runs := paragraphRuns(p)
	for _, r := range runs {
		for _, c := range r.ChildElements() {
			if isTextContent(c) {
				r.RemoveChild(c)
			}
		}
	}
	var first *etree.Element
	if len(runs) > 0 {
		first, runs = runs[0], runs[1:]
	} else {
		first = p.CreateElement("w:r")
	}
	appendText(first, text)

	for _, r := range runs {
		if onlyProperties(r) {
			r.Parent().RemoveChild(r)
		}
	}
}

func onlyProperties(r *etree.Element) bool {
	for _, c := range r.ChildElements() {
		if !is(c, "rPr") {
			return false
		}
	}
	return true
}

// appendText adds text to run r, turning \n into w:br and \t into w:tab.
func appendText(r *etree.Element, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.CreateElement("w:br")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				r.CreateElement("w:tab")
			}
			if seg == "" {
				continue
			}
			t := r.CreateElement("w:t")
			if strings.TrimSpace(seg) != seg {
				t.CreateAttr("xml:space", "preserve")
			}
			t.SetText(seg)
		}
	}
}

// tableCells lists every cell of tbl and of the tables nested in its cells, outer cells first.
func tableCells(tbl *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, tr := range children(tbl, "tr") {
		for _, tc := range children(tr, "tc") {
			out = append(out, tc)
			for _, inner := range children(tc, "tbl") {
				out = append(out, tableCells(inner)...)
			}
		}
	}
	return out
}

// containsAny reports whether text holds the placeholder of any of the tokens.
func containsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(text, Token(t)) {
			return true
		}
	}
	return false
}
