// Package workbooktest builds small xlsx workbooks in memory for tests.
package workbooktest

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateFormat is the custom number format applied to time.Time values.
const DateFormat = "dd-mmm-yyyy"

// Builder collects sheets and rows and renders them with excelize.
type Builder struct {
	sheets []*SheetBuilder
}

// SheetBuilder holds the rows of one sheet keyed by their 1-based row number.
type SheetBuilder struct {
	builder *Builder
	name    string
	rows    map[int][]interface{}
	order   []int
}

// New starts an empty workbook.
func New() *Builder {
	return &Builder{}
}

// AddSheet starts a new sheet, or reopens the sheet already added under name so tests
// can override rows of a shared fixture. Sheets are written in the order they are added.
func (b *Builder) AddSheet(name string) *SheetBuilder {
	for _, sb := range b.sheets {
		if sb.name == name {
			return sb
		}
	}
	sb := &SheetBuilder{builder: b, name: name, rows: make(map[int][]interface{})}
	b.sheets = append(b.sheets, sb)
	return sb
}

// Row sets the values of the 1-based row n starting at column A, replacing any values
// set earlier for that row. A nil value leaves the
// cell blank; time.Time values are stored as date serials with DateFormat.
func (sb *SheetBuilder) Row(n int, values ...interface{}) *SheetBuilder {
	if _, ok := sb.rows[n]; !ok {
		sb.order = append(sb.order, n)
	}
	sb.rows[n] = values
	return sb
}

// AddSheet finishes this sheet and starts another.
func (sb *SheetBuilder) AddSheet(name string) *SheetBuilder {
	return sb.builder.AddSheet(name)
}

// Build returns the owning builder.
func (sb *SheetBuilder) Build() *Builder {
	return sb.builder
}

// ToBytes renders the workbook as xlsx bytes.
func (b *Builder) ToBytes() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	dateFmt := DateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("create date style: %w", err)
	}

	for i, sb := range b.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sb.name); err != nil {
			return nil, err
		}

		for _, n := range sb.order {
			for c, v := range sb.rows[n] {
				if v == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, n)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sb.name, axis, v); err != nil {
					return nil, fmt.Errorf("set %s!%s: %w", sb.name, axis, err)
				}
				if _, ok := v.(time.Time); ok {
					if err := f.SetCellStyle(sb.name, axis, axis, dateStyle); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustBytes is ToBytes for test setup; it panics on error.
func (b *Builder) MustBytes() []byte {
	data, err := b.ToBytes()
	if err != nil {
		panic(err)
	}
	return data
}
