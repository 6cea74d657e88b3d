package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows indicates a source with a header but no data rows.
	ErrNoRows = errors.New("dataset: no data rows")

	// ErrMissingColumn indicates a configured dimension absent from the header.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrNoHeader indicates an empty source.
	ErrNoHeader = errors.New("dataset: missing header row")
)

// ParseError wraps a structural read failure with its position in the source.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: %s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
