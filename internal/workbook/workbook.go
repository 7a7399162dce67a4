package workbook

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over an uploaded xlsx file. It is owned by one request
// and is not safe for concurrent use.
type Workbook struct {
	file      *excelize.File
	date1904  bool
	sheets    map[string]*Sheet
	dateStyle map[int]bool
}

// Open reads a workbook from r. Formula cells expose their cached values.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	return newWorkbook(f), nil
}

func newWorkbook(f *excelize.File) *Workbook {
	wb := &Workbook{
		file:      f,
		sheets:    make(map[string]*Sheet),
		dateStyle: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet loads the named sheet. A missing sheet is a StructuralError wrapping ErrSheetNotFound.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	if s, ok := w.sheets[name]; ok {
		return s, nil
	}
	if idx, err := w.file.GetSheetIndex(name); err != nil || idx == -1 {
		return nil, NewStructuralError(name, "sheet", ErrSheetNotFound)
	}

	raw, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, NewStructuralError(name, "sheet", err)
	}

	s := &Sheet{Name: name, rows: make([][]Cell, len(raw))}
	for r, row := range raw {
		if len(row) > s.width {
			s.width = len(row)
		}
		cells := make([]Cell, len(row))
		for c, v := range row {
			if v == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, NewStructuralError(name, "sheet", err)
			}
			cells[c] = w.typedCell(name, axis, v)
		}
		s.rows[r] = cells
	}
	w.sheets[name] = s
	return s, nil
}

func (w *Workbook) typedCell(sheet, axis, raw string) Cell {
	typ, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return Cell{Kind: KindString, Raw: raw}
	}

	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return Cell{Kind: KindBool, Raw: "True"}
		}
		return Cell{Kind: KindBool, Raw: "False"}
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return Cell{Kind: KindDate, Raw: raw, Time: t}
			}
		}
		return Cell{Kind: KindString, Raw: raw}
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Cell{Kind: KindString, Raw: raw}
		}
		if w.isDateStyled(sheet, axis) {
			if n >= 0 && n < 1 {
				return Cell{Kind: KindTime, Raw: raw, Time: clock(n)}
			}
			if t, err := excelize.ExcelDateToTime(n, w.date1904); err == nil {
				return Cell{Kind: KindDate, Raw: raw, Time: t}
			}
		}
		return Cell{Kind: KindNumber, Raw: raw}
	default:
		return Cell{Kind: KindString, Raw: raw}
	}
}

// clock converts a day fraction to a time of day, rounded to the second.
func clock(fraction float64) time.Time {
	secs := math.Round(fraction * 24 * 60 * 60)
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(secs) * time.Second)
}

func (w *Workbook) isDateStyled(sheet, axis string) bool {
	id, err := w.file.GetCellStyle(sheet, axis)
	if err != nil || id == 0 {
		return false
	}
	if isDate, ok := w.dateStyle[id]; ok {
		return isDate
	}
	isDate := false
	if style, err := w.file.GetStyle(id); err == nil && style != nil {
		isDate = builtinDateFormats[style.NumFmt]
		if !isDate && style.CustomNumFmt != nil {
			isDate = isDateFormat(*style.CustomNumFmt)
		}
	}
	w.dateStyle[id] = isDate
	return isDate
}

// Sheet is a grid of typed cells. Every row returned by Rows and Row is padded to Width.
type Sheet struct {
	Name  string
	rows  [][]Cell
	width int
}

// Width is the number of columns of the widest row.
func (s *Sheet) Width() int {
	return s.width
}

// Len is the number of the last row holding data.
func (s *Sheet) Len() int {
	return len(s.rows)
}

// Row returns the 1-based row n, padded to Width. Rows past the end are all empty.
func (s *Sheet) Row(n int) []Cell {
	out := make([]Cell, s.width)
	if n < 1 || n > len(s.rows) {
		return out
	}
	copy(out, s.rows[n-1])
	return out
}

// Rows returns every row from the 1-based minRow to the last data row.
func (s *Sheet) Rows(minRow int) [][]Cell {
	if minRow < 1 {
		minRow = 1
	}
	var out [][]Cell
	for n := minRow; n <= len(s.rows); n++ {
		out = append(out, s.Row(n))
	}
	return out
}
