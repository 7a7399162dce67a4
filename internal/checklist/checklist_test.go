package checklist_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/erp_office_note/internal/checklist"
	"github.com/locvowork/erp_office_note/internal/domain"
	"github.com/locvowork/erp_office_note/internal/workbook"
	"github.com/locvowork/erp_office_note/internal/workbook/workbooktest"
)

var incorporated = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

// standardChecklist mirrors the sheets of a filled-in checklist.
func standardChecklist() *workbooktest.Builder {
	return workbooktest.New().
		AddSheet("Analysis").
		Row(1, "Deficiencies").
		Row(2, "Missing declaration").
		Row(3, nil).
		Row(4, "  Net worth below threshold  ").
		Row(5, 12).
		AddSheet("Table 1").
		Row(1, "Shareholding pattern").
		Row(2, "Sr", "Name of shareholder", "Shares", "Date", "helper").
		Row(3, 1, "JOHN SMITH", 100, incorporated, "x").
		Row(4, 2, nil, 50, nil, "x").
		Row(5, nil, "orphan", 10, nil, "x").
		Row(6, 3, "acme holdings ltd", 0, nil, "x").
		AddSheet("Table 2").
		Row(2, "Sr", "Entity", "Percent", "helper").
		Row(3, 1, "beta corp", "60%", "h").
		AddSheet("Table 5").
		Row(1, "Employees").
		Row(2, "Designation", "Sr. No.", "Extra", "Name of Employee", "Area of Expertise").
		Row(3, "Analyst", 1, "ignored", "  jane DOE ", " ESG Ratings ").
		Row(4, "Head", 2, "ignored", "RAVI kumar", "Governance").
		Row(5, nil, nil, "ignored", "ghost", "none").
		AddSheet("Basic Details").
		Row(1, nil, nil, "Variable", "Value").
		Row(2, nil, nil, "applicant_name", "acme RATING services").
		Row(3, nil, nil, "incorporation_date", incorporated).
		Row(4, nil, nil, "net_worth", "  Rs. 10 Cr  ").
		Row(5, nil, nil, nil, "no name").
		Row(6, nil, nil, "shared_key", "basic").
		AddSheet("Eligibility Criteria").
		Row(2, nil, nil, nil, "operations", "Only remote operations").
		Row(3, nil, nil, nil, "shared_key", "eligibility").
		Row(4, nil, nil, nil, "regd_address", "12 MG ROAD, pune").
		Build()
}

func openChecklist(t *testing.T, b *workbooktest.Builder) *workbook.Workbook {
	t.Helper()
	wb, err := workbook.Open(bytes.NewReader(b.MustBytes()))
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestReadDeficiencies(t *testing.T) {
	wb := openChecklist(t, standardChecklist())

	got, err := checklist.ReadDeficiencies(wb, checklist.DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, []string{"Missing declaration", "Net worth below threshold"}, got)

	t.Run("EmptyColumn", func(t *testing.T) {
		wb := openChecklist(t, workbooktest.New().AddSheet("Analysis").Row(1, "Deficiencies").Build())
		got, err := checklist.ReadDeficiencies(wb, checklist.DefaultLayout())
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("MissingSheet", func(t *testing.T) {
		wb := openChecklist(t, workbooktest.New().AddSheet("Other").Row(1, "x").Build())
		_, err := checklist.ReadDeficiencies(wb, checklist.DefaultLayout())
		var se *workbook.StructuralError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "Analysis", se.Sheet)
		assert.ErrorIs(t, err, workbook.ErrSheetNotFound)
	})
}

func TestExtractTables(t *testing.T) {
	wb := openChecklist(t, standardChecklist())

	tables, err := checklist.ExtractTables(wb, checklist.DefaultLayout())
	require.NoError(t, err)

	shareholding, ok := tables.Lookup(domain.TokenShareholding)
	require.True(t, ok)
	want := domain.Dataset{
		{"Sr", "Name of shareholder", "Shares", "Date"},
		{"1", "John Smith", "100", "January 05, 2024"},
		{"3", "Acme Holdings Ltd", "0", ""},
	}
	if diff := cmp.Diff(want, shareholding); diff != "" {
		t.Errorf("shareholding mismatch (-want +got):\n%s", diff)
	}

	ownership, ok := tables.Lookup(domain.TokenOwnership)
	require.True(t, ok)
	if diff := cmp.Diff(domain.Dataset{{"Sr", "Entity", "Percent"}, {"1", "Beta Corp", "60%"}}, ownership); diff != "" {
		t.Errorf("ownership mismatch (-want +got):\n%s", diff)
	}

	roster, ok := tables.Lookup(domain.TokenRoster)
	require.True(t, ok)
	wantRoster := domain.Dataset{
		{"Designation", "Sr. No.", "Name of Employee", "Area of Expertise"},
		{"Analyst", "1", "Jane Doe", "ESG Ratings"},
		{"Head", "2", "Ravi Kumar", "Governance"},
	}
	if diff := cmp.Diff(wantRoster, roster); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}

	specialization, ok := tables.Lookup(domain.TokenSpecialization)
	require.True(t, ok)
	wantSpec := domain.Dataset{
		{"Specialization", "Name of employee"},
		{"ESG Ratings", "Jane Doe"},
		{"Governance", "Ravi Kumar"},
	}
	if diff := cmp.Diff(wantSpec, specialization); diff != "" {
		t.Errorf("specialization mismatch (-want +got):\n%s", diff)
	}

	t.Run("Placement", func(t *testing.T) {
		require.Len(t, tables.Standalone, 2)
		require.Len(t, tables.Nested, 2)
		assert.Equal(t, domain.TokenShareholding, tables.Standalone[0].Token)
		assert.Equal(t, domain.TokenRoster, tables.Nested[0].Token)
	})

	t.Run("RowsHaveHeaderLength", func(t *testing.T) {
		for _, slot := range append(tables.Standalone, tables.Nested...) {
			for _, row := range slot.Data {
				assert.Len(t, row, len(slot.Data.Header()), slot.Token)
			}
		}
	})

	t.Run("DroppedRows", func(t *testing.T) {
		// Rows 3..6 hold four data rows; two lack a first or second cell.
		assert.Equal(t, 2, 4-len(shareholding.Body()))
	})
}

func TestExtractTablesStructuralErrors(t *testing.T) {
	t.Run("MissingRosterHeader", func(t *testing.T) {
		b := standardChecklist()
		b.AddSheet("Table 5").Row(2, "Sr. No.", "Name of Employee", "Designation")
		wb := openChecklist(t, b)

		_, err := checklist.ExtractTables(wb, checklist.DefaultLayout())
		require.Error(t, err)
		assert.True(t, errors.Is(err, workbook.ErrHeaderNotFound))
		assert.Contains(t, err.Error(), "Area of Expertise")
	})

	t.Run("EmptyShareholdingSheet", func(t *testing.T) {
		layout := checklist.DefaultLayout()
		layout.Shareholding[1].Sheet = "Blank"
		b := standardChecklist()
		b.AddSheet("Blank").Row(1, "title only")
		wb := openChecklist(t, b)

		_, err := checklist.ExtractTables(wb, layout)
		var se *workbook.StructuralError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "Blank", se.Sheet)
		assert.ErrorIs(t, err, workbook.ErrNoHeaderRow)
	})

	t.Run("MissingSheet", func(t *testing.T) {
		wb := openChecklist(t, workbooktest.New().AddSheet("Table 1").Row(2, "a", "b", "c").Build())
		tables, err := checklist.ExtractTables(wb, checklist.DefaultLayout())
		assert.ErrorIs(t, err, workbook.ErrSheetNotFound)
		assert.Empty(t, tables.Standalone)
	})
}

func TestMergeNamed(t *testing.T) {
	wb := openChecklist(t, standardChecklist())

	vars, err := checklist.MergeNamed(wb, checklist.DefaultLayout())
	require.NoError(t, err)

	want := domain.Vars{
		"applicant_name":     "Acme Rating Services",
		"incorporation_date": "January 05, 2024",
		"net_worth":          "Rs. 10 Cr",
		"shared_key":         "eligibility",
		"operations":         "Only remote operations",
		"regd_address":       "12 Mg Road, Pune",
	}
	if diff := cmp.Diff(want, vars); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNamedSingleSheet(t *testing.T) {
	wb := openChecklist(t, standardChecklist())
	layout := checklist.DefaultLayout()

	vars, err := checklist.ExtractNamed(wb, layout.NamedValues[0], nil)
	require.NoError(t, err)
	assert.Equal(t, "acme RATING services", vars.Get("applicant_name"), "no allow-list, no title case")
	assert.Equal(t, "basic", vars.Get("shared_key"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Acme Rating Services", checklist.TitleCase("ACME rating SERVICES"))
	assert.Equal(t, "", checklist.TitleCase(""))
	assert.Equal(t, "O'Brien Mcdonald", checklist.TitleCase("o'brien mcdonald"))
	assert.Equal(t, "D’Souza", checklist.TitleCase("D’SOUZA"))
	assert.Equal(t, "'Quoted'", checklist.TitleCase("'quoted'"))
}
