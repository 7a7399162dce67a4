package workbooktest

import "time"

// SampleChecklist is a complete checklist workbook with the given deficiencies on the
// Analysis sheet.
func SampleChecklist(deficiencies ...string) *Builder {
	b := New()
	analysis := b.AddSheet("Analysis").Row(1, "Deficiencies")
	for i, d := range deficiencies {
		analysis.Row(i+2, d)
	}
	return analysis.
		AddSheet("Table 1").
		Row(2, "Sr. No.", "Name of Shareholder", "No. of Shares", "% Holding", "check").
		Row(3, 1, "JANE DOE", 6000, "60%", "ok").
		Row(4, 2, "raj mehta", 4000, "40%", "ok").
		AddSheet("Table 2").
		Row(2, "Sr. No.", "Name of Entity", "Relationship", "check").
		Row(3, 1, "acme holdings", "Promoter", "ok").
		AddSheet("Table 5").
		Row(1, "Employees").
		Row(2, "Sr. No.", "Name of Employee", "Designation", "Qualification", "Area of Expertise").
		Row(3, 1, "jane doe", "Chief Rating Officer", "CFA", "ESG Ratings").
		AddSheet("Basic Details").
		Row(1, nil, nil, "Variable", "Value").
		Row(2, nil, nil, "applicant_name", "ACME RATING SERVICES").
		Row(3, nil, nil, "application_date", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).
		Row(4, nil, nil, "md_name", "Jane Doe").
		Row(5, nil, nil, "ceo_name", "NA").
		AddSheet("Eligibility Criteria").
		Row(1, nil, nil, nil, "Variable", "Value").
		Row(2, nil, nil, nil, "whether_declaration", "Yes").
		Row(3, nil, nil, nil, "operations", "Only remote").
		Row(4, nil, nil, nil, "operations_undertaking", "undertaking provided").
		Build()
}
