// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/spf13/cobra"

	"statement-ledger/internal/api"
	"statement-ledger/internal/categorizer"
	"statement-ledger/internal/common"
	"statement-ledger/internal/config"
	"statement-ledger/internal/extractor"
	"statement-ledger/internal/logging"
	"statement-ledger/internal/pipeline"
	"statement-ledger/internal/reviewer"
	"statement-ledger/internal/stmtparser"
	"statement-ledger/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output  string
	Account string
	Rules   string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// Cfg is the application configuration, populated in PersistentPreRunE
	Cfg *config.Config

	// Categorizer is the shared categorizer, built once per invocation
	Categorizer *categorizer.Categorizer

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-ledger",
		Short: "Convert bank statements into a categorized transaction ledger.",
		Long: `statement-ledger extracts transactions from bank statement text or PDF
files, reconciles debits and credits against the running balance, and
categorizes each transaction using keyword tables and learned custom rules.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				return err
			}

			// Environment variables win over the config file for logging.
			level := os.Getenv("LOG_LEVEL")
			if level == "" {
				level = Cfg.Log.Level
			}
			format := os.Getenv("LOG_FORMAT")
			if format == "" {
				format = Cfg.Log.Format
			}
			Log = logging.NewLogrusAdapter(level, format)
			setPackageLoggers(Log)

			if SharedFlags.Account == "" {
				SharedFlags.Account = Cfg.Account.Tag
			}
			if SharedFlags.Rules == "" {
				SharedFlags.Rules = Cfg.Rules.File
			}
			common.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])

			ruleStore := store.NewFileRuleStore(SharedFlags.Rules)
			Categorizer = categorizer.NewCategorizer(ruleStore, Log)
			if overrides, err := store.LoadKeywordOverrides(Cfg.Rules.Categories); err != nil {
				Log.WithError(err).Warn("Ignoring unreadable keyword overrides")
			} else {
				Categorizer.ApplyKeywordOverrides(overrides)
			}
			return nil
		},
		// Persist any rules learned while a command ran, whatever the command was.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if Categorizer == nil {
				return
			}
			if err := Categorizer.SaveRules(); err != nil {
				Log.WithError(err).Warn("Failed to save custom rules")
			}
		},
	}
)

func setPackageLoggers(logger logging.Logger) {
	extractor.SetLogger(logger)
	stmtparser.SetLogger(logger)
	store.SetLogger(logger)
	categorizer.SetLogger(logger)
	reviewer.SetLogger(logger)
	pipeline.SetLogger(logger)
	common.SetLogger(logger)
	api.SetLogger(logger)
}

// NewPipeline builds a conversion pipeline from the shared state.
func NewPipeline() *pipeline.Pipeline {
	return pipeline.New(extractor.Auto{}, Categorizer, SharedFlags.Account, Log)
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Account, "account", "a", "", "Account tag stamped on every transaction")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Rules, "rules", "r", "", "Custom rules file")
}
