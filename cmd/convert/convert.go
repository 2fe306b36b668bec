// Package convert handles statement conversion commands
package convert

import (
	"fmt"

	"github.com/spf13/cobra"

	"statement-ledger/cmd/root"
	"statement-ledger/internal/common"
	"statement-ledger/internal/fileutils"
	"statement-ledger/internal/pipeline"
)

var showSummary bool

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert <statement>...",
	Short: "Convert statements to a categorized CSV ledger",
	Long: `Convert one or more bank statement files (text or PDF) into a single
categorized CSV ledger. Transactions from all statements are merged,
sorted by date, and reconciled against the running balance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: convertFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showSummary, "summary", false, "Print a per-category spending summary")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Convert command called")

	for _, arg := range args {
		if !fileutils.FileExists(arg) {
			return fmt.Errorf("input file does not exist: %s", arg)
		}
	}

	p := root.NewPipeline()
	result, err := p.Run(args)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	for _, doc := range result.Documents {
		if doc.Err != nil {
			continue
		}
		if doc.MissingOpeningBalance {
			root.Log.WithField("file", doc.File).Warn("No opening balance found; directions inferred from a zero start")
		}
		if doc.Ambiguous > 0 {
			root.Log.WithField("file", doc.File).
				WithField("count", doc.Ambiguous).
				Warn("Transactions with ambiguous direction left unclassified")
		}
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = "transactions.csv"
	}
	if err := common.WriteTransactionsToCSV(result.Transactions, output); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if len(result.NeedsReview) > 0 {
		root.Log.WithField("count", len(result.NeedsReview)).
			Info("Transactions need review; run the review command to label them")
	}

	if showSummary {
		printSummary(result)
	}

	root.Log.WithField("file", output).
		WithField("count", len(result.Transactions)).
		Info("Conversion completed successfully!")
	return nil
}

func printSummary(result *pipeline.Result) {
	entries := pipeline.SpendingSummary(result.Transactions)
	if len(entries) == 0 {
		fmt.Println("No spending to summarize.")
		return
	}
	fmt.Println("Spending by category:")
	for _, entry := range entries {
		fmt.Printf("  %-24s %12s\n", entry.SubCategory, entry.Total.StringFixed(2))
	}
}
