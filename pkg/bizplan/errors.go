package bizplan

import (
	"errors"
	"fmt"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/reader"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNotFound indicates the requested sheet or range does not exist.
var ErrNotFound = reader.ErrNotFound

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "workbook", "range", "reader", "normalize", "table", "pictures"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
