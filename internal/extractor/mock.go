package extractor

import (
	"io/fs"

	"statement-ledger/internal/parsererror"
)

// Mock returns predefined lines per path for testing, instead of reading
// real documents.
type Mock struct {
	LinesByPath map[string][]string
	Err         error
}

// Lines returns the mock lines for path. Unknown paths fail the way a
// missing file would.
func (m Mock) Lines(path string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	lines, found := m.LinesByPath[path]
	if !found {
		return nil, &parsererror.ExtractionError{FilePath: path, Err: fs.ErrNotExist}
	}
	return lines, nil
}
