// Package stmtparser turns transaction block strings into parsed
// transactions: date, description, transaction amount and closing balance.
package stmtparser

import (
	"regexp"
	"sort"
	"strings"

	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	// datePattern captures the leading statement date of a block.
	datePattern = regexp.MustCompile(`^\s*(\d{1,2}/\d{2}/\d{4})`)
	// moneyPattern matches statement money tokens: digit groups separated
	// by space or comma thousands separators, exactly two decimal digits.
	moneyPattern = regexp.MustCompile(`\d{1,3}(?:[ ,]\d{3})*\.\d{2}`)
)

// ParseResult carries the parsed transactions plus the diagnostics the
// pipeline surfaces to the caller.
type ParseResult struct {
	Transactions []models.Transaction
	// Skipped counts blocks dropped for a missing date anchor or missing
	// money tokens. Lenient by design, but observable.
	Skipped int
	// MissingOpeningBalance is set when no row carries the opening-balance
	// marker; reconciliation will then seed from zero and is unreliable.
	MissingOpeningBalance bool
}

// ParseBlocks parses each block string and returns the rows sorted ascending
// by date. The sort is stable: same-date rows keep their encounter order.
func ParseBlocks(blocks []string) ParseResult {
	var result ParseResult

	for _, block := range blocks {
		tx, ok := parseBlock(block)
		if !ok {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	sort.SliceStable(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].ParsedDate.Before(result.Transactions[j].ParsedDate)
	})

	result.MissingOpeningBalance = true
	for i := range result.Transactions {
		if result.Transactions[i].IsOpeningBalance() {
			result.MissingOpeningBalance = false
			break
		}
	}

	return result
}

// parseBlock extracts the fields of one block. Blocks without a leading
// date or without any money token are dropped.
func parseBlock(block string) (models.Transaction, bool) {
	clean := strings.Join(strings.Fields(block), " ")

	dateMatch := datePattern.FindStringSubmatch(clean)
	if dateMatch == nil {
		log.Debug("Skipping block: no date anchor",
			logging.Field{Key: "block", Value: clean})
		return models.Transaction{}, false
	}
	dateStr := dateMatch[1]

	parsedDate, err := models.ParseDate(dateStr)
	if err != nil {
		log.WithError(err).Debug("Skipping block: unparseable date",
			logging.Field{Key: "date", Value: dateStr})
		return models.Transaction{}, false
	}

	amounts := moneyPattern.FindAllString(clean, -1)
	if len(amounts) == 0 {
		log.Debug("Skipping block: no money tokens",
			logging.Field{Key: "block", Value: clean})
		return models.Transaction{}, false
	}

	balance := models.ParseAmount(amounts[len(amounts)-1])
	amount := models.ParseAmount("0.00")
	if len(amounts) > 1 {
		amount = models.ParseAmount(amounts[len(amounts)-2])
	}

	// Description: drop the leading date, then remove every money token by
	// textual substring, then collapse whitespace again.
	desc := datePattern.ReplaceAllString(clean, "")
	for _, token := range amounts {
		desc = strings.Replace(desc, token, "", 1)
	}
	desc = strings.TrimSpace(strings.Join(strings.Fields(desc), " "))

	return models.Transaction{
		Date:        dateStr,
		ParsedDate:  parsedDate,
		Description: desc,
		Amount:      amount,
		Balance:     balance,
	}, true
}
