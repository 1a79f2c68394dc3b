package cmd

import "github.com/spf13/cobra"

var configRuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage per-file import rules in config.",
	Long: `Manage import rules stored under config key rules.

Rules map source files (via file template) to column and status overrides
used when converting matching files.`,
}

func init() {
	configCmd.AddCommand(configRuleCmd)
}
