package docxtest

// SampleTemplate is an office note template using every table token and a few variables.
func SampleTemplate() *Builder {
	return New().
		Header("Office Note: ${applicant_name_abb}").
		Paragraph("Subject: Application of ${applicant_name} dated ${application_date}").
		Paragraph("Declaration ${whether_declaration}. The applicant ${operations_undertaking}").
		Paragraph("${table1_data}").
		Paragraph("${table2_data}").
		Table(
			[]string{"Employees", "${table5_v1_data}"},
			[]string{"Specializations", "${table5_v2_data}"},
		).
		Paragraph("${md_ceo_rating}")
}
