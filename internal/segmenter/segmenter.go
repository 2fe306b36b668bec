// Package segmenter groups raw statement text lines into per-transaction
// blocks. A block starts at a line whose first token is a statement date and
// absorbs every following line until the next date line or end of input.
package segmenter

import (
	"regexp"
	"strings"

	"statement-ledger/internal/models"
)

// anchorPattern matches a line that begins (after leading whitespace) with a
// day/month/four-digit-year date: day 1-2 digits, month exactly 2 digits.
var anchorPattern = regexp.MustCompile(`^\s*\d{1,2}/\d{2}/\d{4}`)

// IsAnchor reports whether the line opens a new transaction block.
func IsAnchor(line string) bool {
	return anchorPattern.MatchString(line)
}

// GroupBlocks scans lines in order and returns one space-joined block string
// per transaction, in original document order.
//
// A line containing any terminal marker halts processing entirely; nothing
// from or after that line is emitted. Non-anchor lines before the first
// anchor are discarded (statement header material).
func GroupBlocks(lines []string) []string {
	var blocks []string
	var current []string

	for _, line := range lines {
		if hitsTerminalMarker(line) {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsAnchor(line) {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, " "))
			}
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, " "))
	}
	return blocks
}

func hitsTerminalMarker(line string) bool {
	upper := strings.ToUpper(line)
	for _, marker := range models.TerminalMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
