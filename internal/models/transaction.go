// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single statement transaction as it moves through
// the pipeline: parsed from a block, reconciled against the running balance,
// and finally categorized.
type Transaction struct {
	Date        string          // Date in DD/MM/YYYY format, as printed on the statement
	ParsedDate  time.Time       // Parsed calendar date, no time component
	Description string          // Description with the leading date and money tokens removed
	Amount      decimal.Decimal // The transaction's own monetary effect; zero when absent
	Balance     decimal.Decimal // Running account balance after this transaction
	Debit       string          // Debit amount formatted to two decimals, or empty
	Credit      string          // Credit amount formatted to two decimals, or empty
	Category    string          // Main category, or "Other"
	SubCategory string          // Subcategory, custom rule value, "Uncategorized" or "Opening Balance"
	Account     string          // Account tag, e.g. "Checking"
}

// IsOpeningBalance reports whether this row is the statement's opening
// balance record, detected by the literal marker text.
func (t *Transaction) IsOpeningBalance() bool {
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(OpeningBalanceMarker))
}

// IsDebit returns true if the transaction was reconciled as a debit.
func (t *Transaction) IsDebit() bool {
	return t.Debit != ""
}

// IsCredit returns true if the transaction was reconciled as a credit.
func (t *Transaction) IsCredit() bool {
	return t.Credit != ""
}

// NeedsReview reports whether the categorizer failed to resolve a
// subcategory for this transaction.
func (t *Transaction) NeedsReview() bool {
	return t.SubCategory == SubCategoryUncategorized
}

// ParseAmount converts a statement money token to a decimal. Tokens use
// space or comma thousands separators and a dot decimal separator
// (e.g. "1 234.56" or "1,234.56").
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, ",", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// DateLayout is the statement date layout: day 1-2 digits, month exactly
// two digits, four digit year.
const DateLayout = "2/01/2006"

// ParseDate parses a DD/MM/YYYY statement date.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(dateStr))
}
