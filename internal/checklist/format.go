package checklist

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/locvowork/erp_office_note/internal/workbook"
)

// DateLayout renders dates as "January 05, 2024" regardless of locale.
const DateLayout = "January 02, 2006"

// TitleCase upper-cases the first letter of every word and lower-cases the rest. A letter
// after an apostrophe starts a new word, so "o'brien" becomes "O'Brien".
func TitleCase(s string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	start := 0
	for i, r := range s {
		if r == '\'' || r == '’' {
			b.WriteString(caser.String(s[start:i]))
			b.WriteRune(r)
			start = i + utf8.RuneLen(r)
		}
	}
	b.WriteString(caser.String(s[start:]))
	return b.String()
}

// cellText renders a cell: dates use DateLayout, strings are title-cased when asked,
// everything else keeps its plain string form.
func cellText(c workbook.Cell, titleCase bool) string {
	switch {
	case c.IsDate():
		return c.Time.Format(DateLayout)
	case titleCase && c.Kind == workbook.KindString:
		return TitleCase(c.Raw)
	default:
		return c.String()
	}
}

// trimmedCellText is cellText with surrounding whitespace removed.
func trimmedCellText(c workbook.Cell, titleCase bool) string {
	return strings.TrimSpace(cellText(c, titleCase))
}

func cellAt(row []workbook.Cell, i int) workbook.Cell {
	if i < 0 || i >= len(row) {
		return workbook.Cell{}
	}
	return row[i]
}

// keyCellsPresent is the row filter of every table region: first and second cell set.
func keyCellsPresent(row []workbook.Cell) bool {
	return !cellAt(row, 0).IsEmpty() && !cellAt(row, 1).IsEmpty()
}
