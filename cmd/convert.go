package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"goorders/config"
	"goorders/importer"
	"goorders/orders"
	"goorders/output"
	"goorders/storage"

	"github.com/spf13/cobra"
)

var (
	convertInput     string
	convertOutput    string
	convertFormat    string
	convertDateCol   string
	convertStatusCol string
	convertStatus    string
	convertDBPath    string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one raw order history export into the canonical daily series",
	Long: `Read one CSV or Excel order history export, count orders per calendar day,
and write the canonical two-column series date,total_orders.

Dates in the source may use free-text month names ("Sep 10, 2023",
"11:38 PM, September 10 2024"); they are normalized to ISO YYYY-MM-DD.
Rows are filtered to one order status before counting (default "Delivered",
empty --status keeps every row). The run fails when fewer than 7 distinct
dates remain after aggregation.

Column names and the status filter resolve in this order: explicit flags,
a rules entry whose file_template matches the input file, then the
convert.* config values.`,
	Example: `
  # Convert a Swiggy export with default columns
  goorders convert -i swiggy_orders.csv -o total_orders.csv

  # Override the date column for an unusual export
  goorders convert -i export.csv --date-col "Placed On" -o total_orders.csv

  # Count every order regardless of status
  goorders convert -i export.csv --status "" -o total_orders.csv

  # Also persist the daily counts in SQLite
  goorders convert -i swiggy_orders.csv -o total_orders.csv --db ./goorders.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		options := resolveConvertOptions(
			convertInput,
			*cfg,
			convertDateCol,
			convertStatusCol,
			convertStatus,
			cmd.Flags().Changed("status"),
		)

		result, err := importer.Run(convertInput, convertFormat, &importer.AggregateProjector{Options: options})
		if err != nil {
			return err
		}

		writer := &output.CSVWriter{}
		if err := writer.Write(convertOutput, result.Rows); err != nil {
			return err
		}

		fmt.Printf("Convert completed. Rows read: %d, Distinct dates: %d, Range: %s..%s, Output: %s\n",
			result.RowsRead,
			len(result.Rows),
			result.FirstDate(),
			result.LastDate(),
			convertOutput,
		)

		if strings.TrimSpace(convertDBPath) == "" {
			return nil
		}

		counts, err := orders.DailyCountsFromRows(result.Rows, filepath.Base(convertInput))
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(convertDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		saved, err := store.SaveDailyCounts(counts)
		if err != nil {
			return err
		}
		total, err := store.CountDailyCounts()
		if err != nil {
			return err
		}

		fmt.Printf("Persisted %d daily counts. Database: %s (%d days total)\n", saved, convertDBPath, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "in", "i", "", "Input file path (CSV or Excel)")
	convertCmd.Flags().StringVarP(&convertOutput, "out", "o", "./total_orders.csv", "Output CSV file path")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	convertCmd.Flags().StringVar(&convertDateCol, "date-col", "", "Date column header (overrides matching rule and convert.date_column)")
	convertCmd.Flags().StringVar(&convertStatusCol, "status-col", "", "Status column header (overrides matching rule and convert.status_column)")
	convertCmd.Flags().StringVar(&convertStatus, "status", "", "Order status to keep; pass an empty value to keep all rows")
	convertCmd.Flags().StringVar(&convertDBPath, "db", "", "Optional SQLite database to persist daily counts")

	_ = convertCmd.MarkFlagRequired("in")
}

// resolveConvertOptions layers the column and status settings: explicit flags
// win, then a rules entry matched by file template, then the convert.* config
// values. The status filter is tri-state, so an explicitly set empty flag (or
// an explicitly empty rule status) disables filtering instead of inheriting.
func resolveConvertOptions(path string, cfg config.Config, flagDateCol, flagStatusCol, flagStatus string, statusFlagSet bool) importer.AggregateOptions {
	rule := importer.MatchRuleByTemplate(path, cfg.Rules)

	dateColumn := firstNonEmpty(flagDateCol, rule.DateColumn, cfg.Convert.DateColumn)
	statusColumn := firstNonEmpty(flagStatusCol, rule.StatusColumn, cfg.Convert.StatusColumn)

	status := cfg.Convert.Status
	if rule.HasStatus() {
		status = *rule.Status
	}
	if statusFlagSet {
		status = flagStatus
	}

	return importer.AggregateOptions{
		DateCandidates:   []string{dateColumn},
		StatusCandidates: []string{statusColumn},
		Status:           status,
	}
}

// firstNonEmpty returns the first argument with non-blank content, trimmed.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
