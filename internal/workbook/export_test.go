package workbook

var IsDateFormat = isDateFormat
