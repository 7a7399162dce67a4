package checklist

import (
	"github.com/locvowork/erp_office_note/internal/domain"
	"github.com/locvowork/erp_office_note/internal/workbook"
)

// ExtractNamed reads the name/value pairs of one sheet. Rows without a name are skipped;
// a repeated name keeps its last value.
func ExtractNamed(wb *workbook.Workbook, nl NamedValueLayout, titleCased map[string]bool) (domain.Vars, error) {
	sheet, err := wb.Sheet(nl.Sheet)
	if err != nil {
		return nil, err
	}

	vars := make(domain.Vars)
	for _, row := range sheet.Rows(nl.StartRow) {
		name := trimmedCellText(cellAt(row, nl.NameColumn), false)
		if name == "" {
			continue
		}
		vars[name] = trimmedCellText(cellAt(row, nl.ValueColumn), titleCased[name])
	}
	return vars, nil
}

// MergeNamed reads every named-value sheet of the layout and merges them in layout
// order, so later sheets win on duplicate names.
func MergeNamed(wb *workbook.Workbook, layout *Layout) (domain.Vars, error) {
	titleCased := layout.titleCased()
	merged := make(domain.Vars)
	for _, nl := range layout.NamedValues {
		vars, err := ExtractNamed(wb, nl, titleCased)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(vars)
	}
	return merged, nil
}
