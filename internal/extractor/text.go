package extractor

import (
	"os"
	"strings"

	"statement-ledger/internal/parsererror"
)

// PlainText extracts lines from an already-extracted text file. Useful when
// statements arrive as text dumps rather than PDFs, and for testing the
// pipeline without a PDF toolchain.
type PlainText struct{}

// Lines reads the file and splits it on newlines.
func (PlainText) Lines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &parsererror.ExtractionError{FilePath: path, Err: err}
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
