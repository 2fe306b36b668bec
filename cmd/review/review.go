// Package review implements the interactive labeling session for
// uncategorized transactions.
package review

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"statement-ledger/cmd/root"
	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/common"
	"statement-ledger/internal/models"
	"statement-ledger/internal/reviewer"
)

var suggest bool

// Cmd represents the review command
var Cmd = &cobra.Command{
	Use:   "review <statement|ledger.csv>...",
	Short: "Interactively label uncategorized transactions",
	Long: `Review converts the given statements, groups the transactions that could
not be categorized, and asks for a label per group. Confirmed labels are
saved as custom rules and applied to future conversions.

A previously exported CSV ledger can be reviewed directly by passing the
.csv file instead of statements.`,
	Args: cobra.MinimumNArgs(1),
	RunE: reviewFunc,
}

func init() {
	Cmd.Flags().BoolVar(&suggest, "suggest", false, "Show AI label suggestions (requires GEMINI_API_KEY)")
}

func reviewFunc(cmd *cobra.Command, args []string) error {
	txns, err := loadTransactions(args)
	if err != nil {
		return err
	}

	_, needsReview := categorizer.Partition(txns)
	if len(needsReview) == 0 {
		color.Green("Nothing to review: all %d transactions are categorized.", len(txns))
		return writeOutput(txns)
	}

	session := reviewer.NewSession(needsReview)
	root.Log.WithField("session", session.ID).
		WithField("groups", len(session.Groups)).
		Info("Starting review session")

	var suggester reviewer.Suggester
	if suggest {
		suggester, err = newSuggester(cmd.Context())
		if err != nil {
			root.Log.WithError(err).Warn("Suggestions unavailable")
		}
	}

	names := models.SubCategoryNames()
	reader := bufio.NewReader(os.Stdin)

	for i := range session.Groups {
		group := &session.Groups[i]
		if suggester != nil {
			if label, err := suggester.Suggest(cmd.Context(), *group); err == nil {
				group.Suggestion = label
			}
		}

		label, done := promptGroup(reader, i+1, len(session.Groups), group, names)
		if done {
			break
		}
		if label == "" {
			continue
		}
		session.ApplyLabel(root.Categorizer, i, label)
		color.Green("Saved: %q -> %s", group.Key, label)
	}

	if err := root.Categorizer.SaveRules(); err != nil {
		return fmt.Errorf("failed to save custom rules: %w", err)
	}

	// Re-run categorization so the new rules reach every matching row.
	txns = root.Categorizer.Categorize(txns)
	return writeOutput(txns)
}

// loadTransactions builds the review input: exported CSV ledgers are read
// back directly, anything else goes through statement conversion. The two
// input kinds cannot be mixed in one invocation.
func loadTransactions(args []string) ([]models.Transaction, error) {
	fromCSV := isExportedCSV(args[0])
	for _, arg := range args[1:] {
		if isExportedCSV(arg) != fromCSV {
			return nil, fmt.Errorf("cannot mix exported CSV ledgers and statement files")
		}
	}

	if !fromCSV {
		result, err := root.NewPipeline().Run(args)
		if err != nil {
			return nil, fmt.Errorf("conversion failed: %w", err)
		}
		return result.Transactions, nil
	}

	var txns []models.Transaction
	for _, file := range args {
		rows, err := common.ReadExportedCSV(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read exported ledger: %w", err)
		}
		for _, row := range rows {
			txns = append(txns, row.ToTransaction())
		}
	}
	return txns, nil
}

func isExportedCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// promptGroup displays one review group and reads the label choice.
// It returns the chosen label ("" to skip) and whether review should stop.
func promptGroup(reader *bufio.Reader, index, total int, group *reviewer.Group, names []string) (string, bool) {
	fmt.Println()
	color.Cyan("[%d/%d] %s", index, total, group.Sample)
	fmt.Printf("  %d transaction(s) match %q\n", group.Count, group.Key)
	if group.Suggestion != "" {
		color.Yellow("  Suggested: %s", group.Suggestion)
	}
	for i, name := range names {
		fmt.Printf("  %2d. %s\n", i+1, name)
	}
	fmt.Print("Label (number, free text, Enter to skip, q to quit): ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", true
	}
	line = strings.TrimSpace(line)

	if line == "q" || line == "quit" {
		return "", true
	}
	if line == "" {
		// Suggestions still need an explicit choice; Enter always skips.
		return "", false
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(names) {
			return names[n-1], false
		}
		color.Red("  No such option, skipping group")
		return "", false
	}
	return line, false
}

func newSuggester(ctx context.Context) (reviewer.Suggester, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !root.Cfg.Suggest.Enabled && root.Cfg.Suggest.APIKey == "" {
		return nil, fmt.Errorf("suggestions disabled: set GEMINI_API_KEY")
	}
	return reviewer.NewGeminiSuggester(ctx, root.Cfg.Suggest.APIKey, root.Cfg.Suggest.Model)
}

func writeOutput(txns []models.Transaction) error {
	output := root.SharedFlags.Output
	if output == "" {
		return nil
	}
	if err := common.WriteTransactionsToCSV(txns, output); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	root.Log.WithField("file", output).Info("Wrote reviewed transactions")
	return nil
}
