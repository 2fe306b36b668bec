package extractor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"

	"statement-ledger/internal/logging"
	"statement-ledger/internal/parsererror"
)

// PDF extracts text lines from a PDF statement. The structured library is
// tried first; if it fails or yields unreadable output, the external
// pdftotext command (poppler-utils) is used as a fallback.
type PDF struct{}

// Lines extracts the text lines of every page, in page order.
func (PDF) Lines(path string) ([]string, error) {
	lines, libErr := extractWithLibrary(path)
	if libErr == nil && isReadableText(lines) {
		return lines, nil
	}

	lines, popplerErr := extractWithPdftotext(path)
	if popplerErr == nil && isReadableText(lines) {
		return lines, nil
	}

	if libErr == nil {
		libErr = fmt.Errorf("no readable text could be extracted (scanned or image-based PDF?)")
	}
	log.WithError(libErr).Error("PDF text extraction failed",
		logging.Field{Key: "file", Value: path})
	return nil, &parsererror.ExtractionError{FilePath: path, Err: libErr}
}

func extractWithLibrary(path string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panicked: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close PDF file")
		}
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

func extractWithPdftotext(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return lines, nil
}

// isReadableText guards against garbage from identity-encoded fonts: at
// least half of the characters must be plain ASCII letters, digits, or
// common statement punctuation.
func isReadableText(lines []string) bool {
	total, readable := 0, 0
	for _, line := range lines {
		for _, r := range line {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || r == ' ' || r == '\t' ||
				r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
				r == '(' || r == ')' || r == '*' || r == '#' || r == '\'' {
				readable++
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(readable)/float64(total) >= 0.5
}
