package docx

import (
	"github.com/beevik/etree"

	"github.com/locvowork/erp_office_note/internal/domain"
)

// Render fills the template: plain placeholders first, then the nested tables, then the
// standalone tables, and finally the style pass. Table insertion throws away the text of
// the host paragraph or cell, which is why plain substitution has to run before it.
func (d *Document) Render(vars domain.Vars, tables domain.Tables) error {
	nestedTokens := tokens(tables.Nested)

	d.substituteText(vars, nestedTokens)
	if err := d.insertNested(tables.Nested); err != nil {
		return err
	}
	if err := d.insertStandalone(tables.Standalone); err != nil {
		return err
	}
	d.Normalize()
	return nil
}

// Render is the whole pipeline over template bytes: open, render, serialize.
func Render(template []byte, vars domain.Vars, tables domain.Tables) ([]byte, error) {
	doc, err := Open(template)
	if err != nil {
		return nil, err
	}
	if err := doc.Render(vars, tables); err != nil {
		return nil, err
	}
	return doc.Bytes()
}

func tokens(slots []domain.TableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Token)
	}
	return out
}

// substituteText replaces placeholders in body paragraphs, header and footer parts and
// every table cell. Cell paragraphs holding a nested table token are left for insertNested.
func (d *Document) substituteText(vars domain.Vars, nestedTokens []string) {
	for _, p := range children(d.body, "p") {
		replaceParagraph(p, vars)
	}
	for _, h := range d.headers {
		for _, p := range h.FindElements("//w:p") {
			replaceParagraph(p, vars)
		}
	}
	for _, tbl := range children(d.body, "tbl") {
		for _, tc := range tableCells(tbl) {
			for _, p := range children(tc, "p") {
				if containsAny(paragraphText(p), nestedTokens) {
					continue
				}
				replaceParagraph(p, vars)
			}
		}
	}
}

// insertNested replaces the content of every cell holding a nested token with its table.
// When a cell names several tokens the first slot wins.
func (d *Document) insertNested(slots []domain.TableSlot) error {
	if len(slots) == 0 {
		return nil
	}
	var cells []*etree.Element
	for _, tbl := range children(d.body, "tbl") {
		cells = append(cells, tableCells(tbl)...)
	}
	for _, tc := range cells {
		text := cellText(tc)
		for _, slot := range slots {
			if !containsAny(text, []string{slot.Token}) {
				continue
			}
			if err := fillCell(tc, slot.Token, slot.Data); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// insertStandalone replaces every body paragraph holding a standalone token with its table.
func (d *Document) insertStandalone(slots []domain.TableSlot) error {
	if len(slots) == 0 {
		return nil
	}
	for _, p := range children(d.body, "p") {
		text := paragraphText(p)
		for _, slot := range slots {
			if !containsAny(text, []string{slot.Token}) {
				continue
			}
			if err := replaceWithTable(p, slot.Token, slot.Data); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
