package checklist

import (
	"fmt"

	"github.com/locvowork/erp_office_note/internal/domain"
	"github.com/locvowork/erp_office_note/internal/workbook"
)

// ExtractTables builds every dataset of the layout. Any structural problem aborts the
// whole extraction; no partial tables are returned.
func ExtractTables(wb *workbook.Workbook, layout *Layout) (domain.Tables, error) {
	var tables domain.Tables
	for _, sl := range layout.Shareholding {
		data, err := extractShareholding(wb, sl)
		if err != nil {
			return domain.Tables{}, err
		}
		tables.Standalone = append(tables.Standalone, domain.TableSlot{Token: sl.Token, Data: data})
	}

	roster, specialization, err := extractRoster(wb, layout.Roster)
	if err != nil {
		return domain.Tables{}, err
	}
	tables.Nested = []domain.TableSlot{
		{Token: layout.Roster.Token, Data: roster},
		{Token: layout.Roster.SpecializationToken, Data: specialization},
	}
	return tables, nil
}

// extractShareholding keeps rows whose first two cells are set; the first of them is the
// header and the trailing helper column is dropped everywhere.
func extractShareholding(wb *workbook.Workbook, sl ShareholdingLayout) (domain.Dataset, error) {
	sheet, err := wb.Sheet(sl.Sheet)
	if err != nil {
		return nil, err
	}

	var kept [][]workbook.Cell
	for _, row := range sheet.Rows(sl.StartRow) {
		if keyCellsPresent(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, workbook.NewStructuralError(sl.Sheet, "shareholding", workbook.ErrNoHeaderRow)
	}

	width := sheet.Width() - 1
	data := make(domain.Dataset, 0, len(kept))
	header := make([]string, width)
	for i := 0; i < width; i++ {
		header[i] = cellText(kept[0][i], false)
	}
	data = append(data, header)

	for _, row := range kept[1:] {
		out := make([]string, width)
		for i := 0; i < width; i++ {
			out[i] = cellText(row[i], i == sl.NameColumn)
		}
		data = append(data, out)
	}
	return data, nil
}

// rosterSchema maps header text to its column, resolved once per sheet.
type rosterSchema map[string]int

func resolveSchema(header []workbook.Cell) rosterSchema {
	schema := make(rosterSchema, len(header))
	for i, c := range header {
		name := c.String()
		if name == "" {
			continue
		}
		if _, seen := schema[name]; !seen {
			schema[name] = i
		}
	}
	return schema
}

func (s rosterSchema) require(sheet string, names ...string) error {
	for _, n := range names {
		if _, ok := s[n]; !ok {
			return workbook.NewStructuralError(sheet, "roster", fmt.Errorf("%w: %q", workbook.ErrHeaderNotFound, n))
		}
	}
	return nil
}

// extractRoster produces the employee table and its specialization projection from the
// same filtered rows.
func extractRoster(wb *workbook.Workbook, rl RosterLayout) (domain.Dataset, domain.Dataset, error) {
	sheet, err := wb.Sheet(rl.Sheet)
	if err != nil {
		return nil, nil, err
	}

	headerRow := sheet.Row(rl.HeaderRow)
	schema := resolveSchema(headerRow)
	if err := schema.require(rl.Sheet, append([]string{rl.NameHeader, rl.AreaHeader}, rl.Columns...)...); err != nil {
		return nil, nil, err
	}

	// Selected columns keep their physical order in the sheet.
	wanted := make(map[string]bool, len(rl.Columns))
	for _, c := range rl.Columns {
		wanted[c] = true
	}
	var cols []int
	for i, c := range headerRow {
		if wanted[c.String()] && schema[c.String()] == i {
			cols = append(cols, i)
		}
	}

	nameCol := schema[rl.NameHeader]
	areaCol := schema[rl.AreaHeader]

	header := make([]string, len(cols))
	for j, i := range cols {
		header[j] = headerRow[i].String()
	}
	roster := domain.Dataset{header}
	specialization := domain.Dataset{append([]string(nil), rl.SpecializationHeaders...)}

	for _, row := range sheet.Rows(rl.StartRow) {
		if !keyCellsPresent(row) {
			continue
		}
		out := make([]string, len(cols))
		for j, i := range cols {
			out[j] = trimmedCellText(row[i], i == nameCol)
		}
		roster = append(roster, out)
		specialization = append(specialization, []string{
			trimmedCellText(row[areaCol], false),
			trimmedCellText(row[nameCol], true),
		})
	}
	return roster, specialization, nil
}
