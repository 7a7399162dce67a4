package workbook

import (
	"strings"
	"time"
)

// Kind is the value type of a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is a typed cell value. Raw holds the stored text: the string itself, the number as
// written in the file, or "True"/"False". Time is set for dates and times of day.
type Cell struct {
	Kind Kind
	Raw  string
	Time time.Time
}

// IsEmpty reports whether the cell holds no value or an empty string.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindString && c.Raw == "")
}

// IsDate reports whether the cell holds a date or datetime.
func (c Cell) IsDate() bool {
	return c.Kind == KindDate
}

// String returns the plain string form of the value, "" for empty cells.
func (c Cell) String() string {
	switch c.Kind {
	case KindEmpty:
		return ""
	case KindDate:
		return c.Time.Format("2006-01-02 15:04:05")
	case KindTime:
		return c.Time.Format("15:04:05")
	default:
		return c.Raw
	}
}

// builtinDateFormats are the built-in number format ids that render as dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a custom number format code renders a date or a time.
// Quoted literals, escaped characters and bracketed sections such as [Red] or [$-409]
// are ignored; a remaining d, m, y, h or s token marks a date.
func isDateFormat(code string) bool {
	code = strings.ToLower(code)
	if code == "" || code == "general" {
		return false
	}
	var inQuote, inBracket, escaped bool
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case strings.ContainsRune("dmyhs", r):
			return true
		}
	}
	return false
}
