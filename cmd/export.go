package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"goorders/orders"
	"goorders/output"
	"goorders/storage"
)

var (
	exportDBPath string
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored daily counts to a CSV or Excel file",
	Long: `Export reads the daily counts persisted by convert --db and writes them
to a file in the canonical two-column layout (date,total_orders).

The output format is taken from --format when given, otherwise inferred
from the output file extension (.xlsx selects Excel, everything else CSV).`,
	Example: `  goorders export --output ./total_orders.csv
  goorders export --db ./history.db --output ./report.xlsx
  goorders export --output ./report.data --format excel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if format == "" {
			format = detectExportFormat(exportOutput)
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		days, err := exportDailyCounts(store, writer, exportOutput, exportDBPath)
		if err != nil {
			return err
		}

		fmt.Printf("Export completed. Days: %d, Format: %s, File: %s\n", days, format, exportOutput)
		return nil
	},
}

// exportDailyCounts writes every stored daily count as a canonical series and
// reports how many days were exported. An empty store yields ErrNoDailyCounts.
func exportDailyCounts(store *storage.SQLiteStore, writer output.Writer, outputPath, dbPath string) (int, error) {
	counts, err := store.ListDailyCounts()
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, fmt.Errorf("%w in %s", storage.ErrNoDailyCounts, dbPath)
	}

	rows := orders.RowsFromDailyCounts(counts)
	if err := writer.Write(outputPath, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// detectExportFormat infers the writer format from the output file
// extension. Unknown extensions fall back to csv.
func detectExportFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDBPath, "db", "./goorders.db", "Path to the SQLite database written by convert --db")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Path of the exported file (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv or excel (default: inferred from extension)")

	_ = exportCmd.MarkFlagRequired("output")
}
