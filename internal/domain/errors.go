package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSheetNotFound indicates the requested worksheet is absent.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrWorkbookFormat indicates the workbook could not be parsed.
	ErrWorkbookFormat = errors.New("unreadable workbook")
)

// MissingColumnError reports a required column absent from an input table.
// Redaction refuses to run without it: the pipeline cannot safely decide
// what to mask.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in input header", e.Column)
}
