// Package extractor provides text extraction from source statement
// documents. Extraction is the boundary collaborator of the pipeline: it
// yields an ordered sequence of text lines per document, or an error that
// the pipeline treats as a per-document failure.
package extractor

import (
	"path/filepath"
	"strings"

	"statement-ledger/internal/logging"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// TextExtractor yields the ordered text lines of a source document.
type TextExtractor interface {
	Lines(path string) ([]string, error)
}

// Auto dispatches to the PDF or plain-text extractor by file extension.
type Auto struct{}

// Lines extracts text lines from the file at path.
func (Auto) Lines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDF{}.Lines(path)
	}
	return PlainText{}.Lines(path)
}
