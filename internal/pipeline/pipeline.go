// Package pipeline orchestrates the full statement conversion: text
// extraction, block segmentation, parsing, balance reconciliation and
// categorization, across one or more input documents.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/extractor"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/models"
	"statement-ledger/internal/parsererror"
	"statement-ledger/internal/reconciler"
	"statement-ledger/internal/segmenter"
	"statement-ledger/internal/stmtparser"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// DocumentResult reports the outcome of processing a single input file.
// Err is set when the file could not be processed at all; the rest of the
// batch is unaffected.
type DocumentResult struct {
	File                  string
	Count                 int
	Ambiguous             int
	Skipped               int
	MissingOpeningBalance bool
	Err                   error
}

// Result is the merged outcome of a conversion run.
type Result struct {
	Transactions []models.Transaction
	Resolved     []models.Transaction
	NeedsReview  []models.Transaction
	Documents    []DocumentResult
}

// Pipeline wires the conversion stages together.
type Pipeline struct {
	extractor   extractor.TextExtractor
	categorizer *categorizer.Categorizer
	account     string
	logger      logging.Logger
}

// New creates a Pipeline. The account tag is stamped on every merged
// transaction.
func New(ext extractor.TextExtractor, cat *categorizer.Categorizer, account string, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if account == "" {
		account = models.DefaultAccount
	}
	return &Pipeline{
		extractor:   ext,
		categorizer: cat,
		account:     account,
		logger:      logger,
	}
}

// Run processes every file, merges the per-document transactions and
// categorizes the result. A file that fails to extract or parse is
// reported in its DocumentResult and skipped; Run fails only when no
// file yields any transactions.
func (p *Pipeline) Run(files []string) (*Result, error) {
	result := &Result{}

	for _, file := range files {
		docResult, txns := p.runDocument(file)
		result.Documents = append(result.Documents, docResult)
		if docResult.Err != nil {
			p.logger.WithError(docResult.Err).WithField("file", file).Warn("Skipping unreadable document")
			continue
		}
		result.Transactions = append(result.Transactions, txns...)
	}

	result.Transactions = mergeTransactions(result.Transactions)
	if len(result.Transactions) == 0 {
		return result, parsererror.ErrNoTransactions
	}

	for i := range result.Transactions {
		result.Transactions[i].Account = p.account
	}

	result.Transactions = p.categorizer.Categorize(result.Transactions)
	result.Resolved, result.NeedsReview = categorizer.Partition(result.Transactions)

	return result, nil
}

func (p *Pipeline) runDocument(file string) (DocumentResult, []models.Transaction) {
	docResult := DocumentResult{File: file}

	lines, err := p.extractor.Lines(file)
	if err != nil {
		docResult.Err = err
		return docResult, nil
	}

	blocks := segmenter.GroupBlocks(lines)
	parsed := stmtparser.ParseBlocks(blocks)
	docResult.Skipped = parsed.Skipped
	docResult.MissingOpeningBalance = parsed.MissingOpeningBalance

	reconciled := reconciler.Reconcile(parsed.Transactions)
	docResult.Ambiguous = reconciled.Ambiguous
	docResult.Count = len(reconciled.Transactions)

	p.logger.WithField("file", file).
		WithField("transactions", docResult.Count).
		WithField("skipped", docResult.Skipped).
		Info("Processed document")

	return docResult, reconciled.Transactions
}

// mergeTransactions combines per-document rows into one ledger: only the
// first opening-balance row is kept, and the merged set is re-sorted by
// date with input order preserved among equal dates.
func mergeTransactions(txns []models.Transaction) []models.Transaction {
	merged := make([]models.Transaction, 0, len(txns))
	seenOpening := false
	for _, tx := range txns {
		if tx.IsOpeningBalance() {
			if seenOpening {
				continue
			}
			seenOpening = true
		}
		merged = append(merged, tx)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ParsedDate.Before(merged[j].ParsedDate)
	})
	return merged
}

// SummaryEntry is a per-subcategory spending total.
type SummaryEntry struct {
	SubCategory string
	Total       decimal.Decimal
}

// SpendingSummary totals debit amounts per subcategory, excluding opening
// balances and incoming transfers, ordered by descending total then name.
func SpendingSummary(txns []models.Transaction) []SummaryEntry {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txns {
		if !tx.IsDebit() {
			continue
		}
		if tx.SubCategory == models.SubCategoryOpeningBalance || tx.SubCategory == models.SubCategoryTransferIn {
			continue
		}
		amount := models.ParseAmount(tx.Debit)
		if !amount.IsPositive() {
			// Placeholder debits of 0.00 are not spending.
			continue
		}
		totals[tx.SubCategory] = totals[tx.SubCategory].Add(amount)
	}

	entries := make([]SummaryEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, SummaryEntry{SubCategory: name, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Total.Equal(entries[j].Total) {
			return entries[i].Total.GreaterThan(entries[j].Total)
		}
		return entries[i].SubCategory < entries[j].SubCategory
	})
	return entries
}
