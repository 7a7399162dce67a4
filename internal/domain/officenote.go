package domain

// Placeholder tokens of the four tables injected into the office note.
const (
	TokenShareholding   = "table1_data"
	TokenOwnership      = "table2_data"
	TokenRoster         = "table5_v1_data"
	TokenSpecialization = "table5_v2_data"
)

// Dataset is a header row followed by body rows. Every row has the header's length.
type Dataset [][]string

// Header returns row 0, or nil for an empty dataset.
func (d Dataset) Header() []string {
	if len(d) == 0 {
		return nil
	}
	return d[0]
}

// Body returns every row after the header.
func (d Dataset) Body() [][]string {
	if len(d) < 2 {
		return nil
	}
	return d[1:]
}

// Vars maps placeholder names to the text that replaces them.
type Vars map[string]string

// Clone returns a shallow copy that can be mutated independently.
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Merge returns a new Vars holding v overlaid by every entry of others, in order.
// Later maps win on key collisions.
func (v Vars) Merge(others ...Vars) Vars {
	out := v.Clone()
	for _, o := range others {
		for k, val := range o {
			out[k] = val
		}
	}
	return out
}

// Get returns the value for key, or "" when it is absent.
func (v Vars) Get(key string) string {
	return v[key]
}

// TableSlot pairs a placeholder token with the dataset injected at it.
type TableSlot struct {
	Token string
	Data  Dataset
}

// Tables holds the datasets extracted per workbook, grouped by how they are injected.
// The standard checklist yields the shareholding tables as Standalone and the two
// roster projections as Nested.
type Tables struct {
	Standalone []TableSlot // replace a whole body paragraph
	Nested     []TableSlot // replace the content of a template table cell
}

// Lookup returns the dataset registered under token.
func (t Tables) Lookup(token string) (Dataset, bool) {
	for _, group := range [][]TableSlot{t.Standalone, t.Nested} {
		for _, slot := range group {
			if slot.Token == token {
				return slot.Data, true
			}
		}
	}
	return nil, false
}

// Review is the outcome of processing one uploaded workbook.
// Deficiencies are always present once the workbook could be read; Document is nil
// when generation failed and RenderError then carries the reason.
type Review struct {
	Deficiencies []string
	Document     []byte
	Filename     string
	RenderError  error
}

// Rendered reports whether the office note was produced.
func (r *Review) Rendered() bool {
	return r != nil && r.RenderError == nil && r.Document != nil
}
