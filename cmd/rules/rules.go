// Package rules manages the persisted custom categorization rules.
package rules

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"statement-ledger/cmd/root"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage custom categorization rules",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all custom rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := root.Categorizer.Rules()
		if len(rules) == 0 {
			fmt.Println("No custom rules defined.")
			return nil
		}

		keys := make([]string, 0, len(rules))
		for key := range rules {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%-40s %s\n", key, rules[key])
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <keyword> <label>",
	Short: "Add or replace a custom rule",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, label := args[0], args[1]
		root.Categorizer.UpdateRule(keyword, label)
		if err := root.Categorizer.SaveRules(); err != nil {
			return fmt.Errorf("failed to save custom rules: %w", err)
		}
		root.Log.WithField("keyword", keyword).WithField("label", label).Info("Rule saved")
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
}
