// Package parsererror defines the error types surfaced by the pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoTransactions is the terminal condition for a processing request:
// after all documents were handled, nothing could be extracted at all.
var ErrNoTransactions = errors.New("no transactions could be extracted from any document")

// ExtractionError reports that a source document could not be opened or its
// text could not be extracted. It isolates the failure to one document.
type ExtractionError struct {
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from '%s': %v", e.FilePath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError reports a failure while turning extracted text into
// transactions.
type ParseError struct {
	Stage string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse '%s': %v", e.Stage, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
