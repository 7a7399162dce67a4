package docx_test

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/erp_office_note/internal/docx"
	"github.com/locvowork/erp_office_note/internal/docx/docxtest"
	"github.com/locvowork/erp_office_note/internal/domain"
)

func readPart(t *testing.T, data []byte, name string) *etree.Element {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(raw))
		return doc.Root()
	}
	t.Fatalf("part %s not found", name)
	return nil
}

func body(t *testing.T, data []byte) *etree.Element {
	t.Helper()
	b := readPart(t, data, "word/document.xml").SelectElement("w:body")
	require.NotNil(t, b)
	return b
}

// text joins the w:t content under e.
func text(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.FindElements(".//w:t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

func render(t *testing.T, b *docxtest.Builder, vars domain.Vars, tables domain.Tables) []byte {
	t.Helper()
	out, err := docx.Render(b.MustBytes(), vars, tables)
	require.NoError(t, err)
	return out
}

func TestRenderSubstitution(t *testing.T) {
	tpl := docxtest.New().
		Paragraph("Dear ${appli", "cant_name}, ref ${unknown_key}").
		Paragraph("Plain text", " in two runs").
		Paragraph("Contact: ${md_ceo_name}").
		Table([]string{"Applicant", "${applicant_name}"}).
		Header("Note on ${applicant_name_abb}")

	out := render(t, tpl, domain.Vars{
		"applicant_name":     "Acme Rating Services",
		"applicant_name_abb": "ARS",
		"md_ceo_name":        "Name of MD: jane\nName of CEO: NA",
	}, domain.Tables{})

	paras := body(t, out).SelectElements("w:p")
	require.Len(t, paras, 3)

	assert.Equal(t, "Dear Acme Rating Services, ref ${unknown_key}", text(paras[0]))
	assert.Len(t, paras[0].SelectElements("w:r"), 1, "changed paragraph collapses to one run")

	assert.Len(t, paras[1].SelectElements("w:r"), 2, "unchanged paragraph keeps its runs")

	run := paras[2].SelectElement("w:r")
	require.NotNil(t, run)
	assert.Len(t, run.SelectElements("w:br"), 1)
	assert.Equal(t, "Contact: Name of MD: janeName of CEO: NA", text(paras[2]))

	tbl := body(t, out).SelectElement("w:tbl")
	require.NotNil(t, tbl)
	assert.Equal(t, "ApplicantAcme Rating Services", text(tbl))

	hdr := readPart(t, out, "word/header1.xml")
	assert.Equal(t, "Note on ARS", text(hdr))
}

func TestRenderUnknownTokensStayLiteral(t *testing.T) {
	tpl := docxtest.New().
		Paragraph("${a} and ${b}").
		Paragraph("${table1_data}").
		Table([]string{"${table5_v1_data}"})

	out := render(t, tpl, domain.Vars{"a": "A"}, domain.Tables{})
	b := body(t, out)
	assert.Equal(t, "A and ${b}", text(b.SelectElements("w:p")[0]))
	assert.Equal(t, "${table1_data}", text(b.SelectElements("w:p")[1]))
	assert.Equal(t, "${table5_v1_data}", text(b.SelectElement("w:tbl")))
}

func TestRenderValuesAreNotRescanned(t *testing.T) {
	out := render(t, docxtest.New().Paragraph("${a}"), domain.Vars{"a": "${b}", "b": "B"}, domain.Tables{})
	assert.Equal(t, "${b}", text(body(t, out)))
}

func TestRenderStandaloneTables(t *testing.T) {
	tpl := docxtest.New().
		Paragraph("Shareholding:").
		Paragraph("${table1_data}").
		Paragraph("${table2_data}").
		Paragraph("End")

	tables := domain.Tables{Standalone: []domain.TableSlot{
		{Token: domain.TokenShareholding, Data: domain.Dataset{
			{"Sr", "Name", "Shares", "Date"},
			{"1", "John Smith", "100", "January 05, 2024"},
		}},
		{Token: domain.TokenOwnership, Data: domain.Dataset{{"Sr", "Entity", "Percent"}}},
	}}
	out := render(t, tpl, domain.Vars{}, tables)
	b := body(t, out)

	kids := b.ChildElements()
	require.GreaterOrEqual(t, len(kids), 4)
	assert.Equal(t, "p", kids[0].Tag)
	assert.Equal(t, "tbl", kids[1].Tag, "table replaces the paragraph in place")
	assert.Equal(t, "tbl", kids[2].Tag)
	assert.Equal(t, "End", text(kids[3]))

	cols := func(tbl *etree.Element) []string {
		var out []string
		for _, g := range tbl.FindElements("./w:tblGrid/w:gridCol") {
			out = append(out, g.SelectAttrValue("w:w", ""))
		}
		return out
	}
	assert.Equal(t, []string{"1152", "3456", "3456", "3456"}, cols(kids[1]))
	assert.Equal(t, []string{"3120", "3120", "3120"}, cols(kids[2]))

	t.Run("HeaderBold", func(t *testing.T) {
		rows := kids[1].SelectElements("w:tr")
		require.Len(t, rows, 2)
		assert.NotNil(t, rows[0].FindElement(".//w:rPr/w:b"))
		assert.Nil(t, rows[1].FindElement(".//w:rPr/w:b"))
		assert.Equal(t, "1John Smith100January 05, 2024", text(rows[1]))
	})

	t.Run("Borders", func(t *testing.T) {
		borders := kids[1].FindElement("./w:tblPr/w:tblBorders")
		require.NotNil(t, borders)
		var sides []string
		for _, s := range borders.ChildElements() {
			sides = append(sides, s.Tag)
			assert.Equal(t, "single", s.SelectAttrValue("w:val", ""))
			assert.Equal(t, "000000", s.SelectAttrValue("w:color", ""))
		}
		assert.Equal(t, []string{"top", "left", "bottom", "right", "insideH", "insideV"}, sides)
	})
}

func TestRenderNestedTables(t *testing.T) {
	tpl := docxtest.New().Table(
		[]string{"Employees", "${table5_v1_data}"},
		[]string{"Specialization", "${table5_v2_data}"},
		[]string{"Applicant", "${applicant_name}"},
	)
	tables := domain.Tables{Nested: []domain.TableSlot{
		{Token: domain.TokenRoster, Data: domain.Dataset{{"Sr. No.", "Name of Employee"}, {"1", "Jane Doe"}}},
		{Token: domain.TokenSpecialization, Data: domain.Dataset{{"Specialization", "Name of employee"}, {"ESG", "Jane Doe"}}},
	}}
	out := render(t, tpl, domain.Vars{"applicant_name": "Acme"}, tables)

	host := body(t, out).SelectElement("w:tbl")
	require.NotNil(t, host)
	rows := host.SelectElements("w:tr")
	require.Len(t, rows, 3)

	cell := rows[0].SelectElements("w:tc")[1]
	kids := cell.ChildElements()
	require.Len(t, kids, 3)
	assert.Equal(t, "tcPr", kids[0].Tag, "cell properties survive")
	assert.Equal(t, "tbl", kids[1].Tag)
	assert.Equal(t, "p", kids[2].Tag, "cell ends with a paragraph")
	assert.Equal(t, "Sr. No.Name of Employee1Jane Doe", text(kids[1]))

	var widths []string
	for _, g := range kids[1].FindElements("./w:tblGrid/w:gridCol") {
		widths = append(widths, g.SelectAttrValue("w:w", ""))
	}
	assert.Equal(t, []string{"2340", "2340"}, widths)

	assert.Equal(t, "SpecializationName of employeeESGJane Doe", text(rows[1].SelectElements("w:tc")[1]))
	assert.Equal(t, "Acme", text(rows[2].SelectElements("w:tc")[1]))
}

func TestRenderStyle(t *testing.T) {
	tpl := docxtest.New().
		Paragraph("Body").
		Table([]string{"Cell", "${table5_v1_data}"}).
		Header("Header")
	tables := domain.Tables{Nested: []domain.TableSlot{
		{Token: domain.TokenRoster, Data: domain.Dataset{{"H"}, {"v"}}},
	}}
	out := render(t, tpl, domain.Vars{}, tables)
	b := body(t, out)

	size := func(r *etree.Element) string {
		return r.FindElement("./w:rPr/w:sz").SelectAttrValue("w:val", "")
	}

	bodyRun := b.SelectElement("w:p").SelectElement("w:r")
	assert.Equal(t, "24", size(bodyRun))
	fonts := bodyRun.FindElement("./w:rPr/w:rFonts")
	require.NotNil(t, fonts)
	assert.Equal(t, "Arial", fonts.SelectAttrValue("w:ascii", ""))
	assert.Equal(t, "Arial", fonts.SelectAttrValue("w:cs", ""))
	assert.Equal(t, "000000", bodyRun.FindElement("./w:rPr/w:color").SelectAttrValue("w:val", ""))

	var order []string
	for _, c := range bodyRun.SelectElement("w:rPr").ChildElements() {
		order = append(order, c.Tag)
	}
	assert.Equal(t, []string{"rFonts", "i", "color", "sz", "szCs"}, order)

	outer := b.SelectElement("w:tbl")
	assert.Equal(t, "22", size(outer.FindElement("./w:tr/w:tc/w:p/w:r")))
	nested := outer.FindElement(".//w:tc/w:tbl")
	require.NotNil(t, nested)
	assert.Equal(t, "18", size(nested.FindElement(".//w:r")))

	hdrRun := readPart(t, out, "word/header1.xml").FindElement(".//w:r")
	assert.Equal(t, "24", size(hdrRun))
}

func TestRenderIsDeterministic(t *testing.T) {
	tpl := docxtest.New().
		Paragraph("${applicant_name}").
		Paragraph("${table1_data}").
		Table([]string{"${table5_v1_data}"}).
		Header("${applicant_name_abb}").
		MustBytes()
	vars := domain.Vars{"applicant_name": "Acme", "applicant_name_abb": "A"}
	tables := domain.Tables{
		Standalone: []domain.TableSlot{{Token: domain.TokenShareholding, Data: domain.Dataset{{"a", "b"}, {"1", "2"}}}},
		Nested:     []domain.TableSlot{{Token: domain.TokenRoster, Data: domain.Dataset{{"x"}}}},
	}

	first, err := docx.Render(tpl, vars, tables)
	require.NoError(t, err)
	second, err := docx.Render(tpl, vars, tables)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "same inputs give identical bytes")

	t.Run("EntryOrderKept", func(t *testing.T) {
		names := func(data []byte) []string {
			zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			require.NoError(t, err)
			var out []string
			for _, f := range zr.File {
				out = append(out, f.Name)
				assert.True(t, f.Modified.Equal(docxtest.Modified), f.Name)
			}
			return out
		}
		assert.Equal(t, names(tpl), names(first))
	})

	t.Run("NormalizeIdempotent", func(t *testing.T) {
		doc, err := docx.Open(first)
		require.NoError(t, err)
		doc.Normalize()
		again, err := doc.Bytes()
		require.NoError(t, err)
		assert.Equal(t, text(body(t, first)), text(body(t, again)))
		assert.Equal(t, len(body(t, first).FindElements(".//w:rPr/*")), len(body(t, again).FindElements(".//w:rPr/*")))
	})
}

func TestRenderErrors(t *testing.T) {
	t.Run("NotAZip", func(t *testing.T) {
		_, err := docx.Open([]byte("plain text"))
		assert.ErrorIs(t, err, docx.ErrInvalidTemplate)
	})

	t.Run("MissingDocumentPart", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("word/styles.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("<w:styles/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = docx.Open(buf.Bytes())
		assert.ErrorIs(t, err, docx.ErrInvalidTemplate)
	})

	t.Run("EmptyDataset", func(t *testing.T) {
		tables := domain.Tables{Standalone: []domain.TableSlot{{Token: domain.TokenShareholding}}}
		_, err := docx.Render(docxtest.New().Paragraph("${table1_data}").MustBytes(), domain.Vars{}, tables)
		assert.ErrorIs(t, err, docx.ErrEmptyTable)
	})

	t.Run("RaggedDataset", func(t *testing.T) {
		tables := domain.Tables{Nested: []domain.TableSlot{{Token: domain.TokenRoster, Data: domain.Dataset{{"a", "b"}, {"1"}}}}}
		_, err := docx.Render(docxtest.New().Table([]string{"${table5_v1_data}"}).MustBytes(), domain.Vars{}, tables)
		assert.ErrorIs(t, err, docx.ErrRaggedTable)
	})

	t.Run("UnusedEmptyDatasetIsFine", func(t *testing.T) {
		tables := domain.Tables{Standalone: []domain.TableSlot{{Token: domain.TokenShareholding}}}
		_, err := docx.Render(docxtest.New().Paragraph("no tables here").MustBytes(), domain.Vars{}, tables)
		assert.NoError(t, err)
	})
}
