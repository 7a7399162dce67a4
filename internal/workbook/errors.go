package workbook

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkbook indicates the upload is not a readable xlsx workbook.
	ErrInvalidWorkbook = errors.New("invalid xlsx workbook")
	// ErrSheetNotFound indicates a required sheet is missing.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrHeaderNotFound indicates a required header text is missing from a header row.
	ErrHeaderNotFound = errors.New("header not found")
	// ErrNoHeaderRow indicates a table region has no row that can serve as header.
	ErrNoHeaderRow = errors.New("no header row")
)

// StructuralError reports a workbook that does not have the expected layout.
type StructuralError struct {
	Sheet     string
	Component string // "sheet", "deficiencies", "shareholding", "roster", "named values"
	Err       error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Component, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError creates a StructuralError.
func NewStructuralError(sheet, component string, err error) *StructuralError {
	return &StructuralError{
		Sheet:     sheet,
		Component: component,
		Err:       err,
	}
}
