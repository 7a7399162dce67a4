package checklist

import (
	"strings"

	"github.com/locvowork/erp_office_note/internal/workbook"
)

// ReadDeficiencies lists the non-blank text cells of the deficiency column in sheet order.
// Numbers, dates and booleans in that column are not deficiencies and are skipped.
func ReadDeficiencies(wb *workbook.Workbook, layout *Layout) ([]string, error) {
	dl := layout.Deficiencies
	sheet, err := wb.Sheet(dl.Sheet)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, row := range sheet.Rows(dl.StartRow) {
		c := cellAt(row, dl.Column)
		if c.Kind != workbook.KindString {
			continue
		}
		if text := strings.TrimSpace(c.Raw); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
