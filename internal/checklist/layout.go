package checklist

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed layout.yaml
var defaultLayoutYAML []byte

// Layout pins down where every value lives in the checklist workbook.
type Layout struct {
	Deficiencies  DeficiencyLayout     `yaml:"deficiencies"`
	Shareholding  []ShareholdingLayout `yaml:"shareholding"`
	Roster        RosterLayout         `yaml:"roster"`
	NamedValues   []NamedValueLayout   `yaml:"named_values"`
	TitleCaseVars []string             `yaml:"title_case_vars"`
}

type DeficiencyLayout struct {
	Sheet    string `yaml:"sheet"`
	Column   int    `yaml:"column"`
	StartRow int    `yaml:"start_row"`
}

// ShareholdingLayout describes a table whose first surviving row is the header and whose
// last column is a helper column that is never rendered.
type ShareholdingLayout struct {
	Token      string `yaml:"token"`
	Sheet      string `yaml:"sheet"`
	StartRow   int    `yaml:"start_row"`
	NameColumn int    `yaml:"name_column"`
}

type RosterLayout struct {
	Sheet                 string   `yaml:"sheet"`
	HeaderRow             int      `yaml:"header_row"`
	StartRow              int      `yaml:"start_row"`
	Columns               []string `yaml:"columns"`
	NameHeader            string   `yaml:"name_header"`
	AreaHeader            string   `yaml:"area_header"`
	Token                 string   `yaml:"token"`
	SpecializationToken   string   `yaml:"specialization_token"`
	SpecializationHeaders []string `yaml:"specialization_headers"`
}

type NamedValueLayout struct {
	Sheet       string `yaml:"sheet"`
	StartRow    int    `yaml:"start_row"`
	NameColumn  int    `yaml:"name_column"`
	ValueColumn int    `yaml:"value_column"`
}

// DefaultLayout returns the layout of the standard checklist workbook.
func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic(fmt.Sprintf("checklist: embedded layout: %v", err))
	}
	return l
}

// LoadLayout reads a layout file. An empty path yields DefaultLayout.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	if len(data) == 0 {
		return nil, errors.New("layout is empty")
	}
	var l Layout
	if err := yaml.UnmarshalStrict(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the layout is usable.
func (l *Layout) Validate() error {
	if l.Deficiencies.Sheet == "" || l.Deficiencies.StartRow < 1 || l.Deficiencies.Column < 0 {
		return errors.New("layout: deficiencies needs a sheet, a column >= 0 and a start_row >= 1")
	}
	if len(l.Shareholding) == 0 {
		return errors.New("layout: at least one shareholding table is required")
	}
	for i, s := range l.Shareholding {
		if s.Token == "" || s.Sheet == "" || s.StartRow < 1 || s.NameColumn < 0 {
			return fmt.Errorf("layout: shareholding[%d] needs token, sheet, start_row >= 1 and name_column >= 0", i)
		}
	}
	r := l.Roster
	if r.Sheet == "" || r.HeaderRow < 1 || r.StartRow <= r.HeaderRow {
		return errors.New("layout: roster needs a sheet and a start_row after header_row")
	}
	if len(r.Columns) == 0 || r.NameHeader == "" || r.AreaHeader == "" || r.Token == "" || r.SpecializationToken == "" {
		return errors.New("layout: roster needs columns, name_header, area_header and both tokens")
	}
	if len(r.SpecializationHeaders) != 2 {
		return errors.New("layout: roster specialization_headers must have exactly two entries")
	}
	if len(l.NamedValues) == 0 {
		return errors.New("layout: at least one named_values sheet is required")
	}
	for i, n := range l.NamedValues {
		if n.Sheet == "" || n.StartRow < 1 || n.NameColumn < 0 || n.ValueColumn < 0 {
			return fmt.Errorf("layout: named_values[%d] needs sheet, start_row >= 1 and columns >= 0", i)
		}
	}
	return nil
}

func (l *Layout) titleCased() map[string]bool {
	out := make(map[string]bool, len(l.TitleCaseVars))
	for _, v := range l.TitleCaseVars {
		out[v] = true
	}
	return out
}
