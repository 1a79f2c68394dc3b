package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage goorders configuration file values.",
	Long: `Create, edit, display, and delete the goorders configuration file.

The configuration stores application-wide values and per-file import rules:
- convert.date_column / convert.status_column / convert.status
- import.date_candidates / import.orders_candidates
- kaggle.base_url / kaggle.dataset
- rules[].file_template + date_column / status_column / status overrides`,
	Example: `
  # Create default config in $HOME/.goorders.yaml
  goorders config create

  # Show active config and source file
  goorders config show

  # Open active config in editor (creates example if missing)
  goorders config edit

  # Add one per-file rule interactively
  goorders config rule add

  # Delete active config file
  goorders config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
