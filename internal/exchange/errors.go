package exchange

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCSV      = errors.New("CSV file is empty or only contains headers")
	ErrInvalidBackup = errors.New("invalid backup file")

	ErrMissingValue   = errors.New("missing value")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrNegativeNumber = errors.New("negative number")
)

// MissingHeadersError lists the required inventory headers absent from a file
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("missing or incorrect CSV headers: required %s, missing %s",
		strings.Join(InventoryHeaders, "; "), strings.Join(e.Missing, ", "))
}

// RowError is the first invalid data row of an import. Line is the 1-based
// physical line in the file.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
