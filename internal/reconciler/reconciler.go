// Package reconciler infers each transaction's debit/credit direction from
// running-balance arithmetic. Classification of row i depends on the balance
// after row i-1, so reconciliation is inherently sequential within one
// document's transaction sequence.
package reconciler

import (
	"github.com/shopspring/decimal"

	"statement-ledger/internal/models"
)

// Tolerance is the absolute epsilon absorbing rounding noise when comparing
// balance arithmetic.
var Tolerance = decimal.NewFromFloat(0.01)

// Result carries the reconciled rows and the per-document diagnostics.
type Result struct {
	Transactions []models.Transaction
	// Ambiguous counts rows where neither the debit nor the credit formula
	// matched: both fields are left empty rather than guessed.
	Ambiguous int
}

// Reconcile walks the date-ordered rows and fills Debit or Credit on each.
//
// The previous balance seeds from the opening-balance row if present, else
// zero. The opening-balance row itself passes through with both fields
// empty. After every row, the previous balance becomes that row's balance
// regardless of classification outcome.
func Reconcile(txns []models.Transaction) Result {
	previous := decimal.Zero
	for i := range txns {
		if txns[i].IsOpeningBalance() {
			previous = txns[i].Balance
			break
		}
	}

	result := Result{Transactions: make([]models.Transaction, 0, len(txns))}
	for _, tx := range txns {
		if tx.IsOpeningBalance() {
			tx.Debit, tx.Credit = "", ""
			result.Transactions = append(result.Transactions, tx)
			continue
		}

		debitDiff := previous.Sub(tx.Amount).Sub(tx.Balance).Abs()
		creditDiff := previous.Add(tx.Amount).Sub(tx.Balance).Abs()

		switch {
		case !previous.IsZero() && debitDiff.LessThan(Tolerance):
			tx.Debit = tx.Amount.StringFixed(2)
		case creditDiff.LessThan(Tolerance):
			tx.Credit = tx.Amount.StringFixed(2)
		case tx.Amount.IsZero():
			// Zero-value placeholder row, e.g. a fee waiver.
			tx.Debit = "0.00"
		default:
			result.Ambiguous++
		}

		previous = tx.Balance
		result.Transactions = append(result.Transactions, tx)
	}
	return result
}
