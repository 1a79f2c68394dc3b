package cmd

import (
	"fmt"
	"sort"
	"strings"

	"goorders/importer"

	"github.com/spf13/cobra"
)

var (
	analyzeInput     string
	analyzeFormat    string
	analyzeCityCol   string
	analyzeDateCol   string
	analyzeStatusCol string
	analyzeTop       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print a frequency report over one raw order history export",
	Long: `Read one CSV or Excel export and print how the orders distribute: total
row count, the most frequent cities, and the full order status breakdown.

The export must carry city, date, and status columns; every missing column
is listed in the error.`,
	Example: `
  # Analyze a Swiggy export
  goorders analyze -i swiggy_orders.csv

  # Show the twenty busiest cities
  goorders analyze -i swiggy_orders.csv --top 20
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := importer.InferFormat(analyzeInput, analyzeFormat)
		if err != nil {
			return err
		}
		reader, err := importer.ReaderForFormat(format)
		if err != nil {
			return err
		}
		table, err := reader.Read(analyzeInput)
		if err != nil {
			return err
		}

		report, err := buildAnalysis(table, analyzeCityCol, analyzeDateCol, analyzeStatusCol, analyzeTop)
		if err != nil {
			return err
		}

		fmt.Printf("Analyzed %s. Rows: %d\n", analyzeInput, report.RowsRead)
		fmt.Printf("\nTop %d cities:\n", len(report.TopCities))
		for _, entry := range report.TopCities {
			fmt.Printf("  %-30s %d\n", entry.Name, entry.Count)
		}
		fmt.Printf("\nOrder status distribution:\n")
		for _, entry := range report.Statuses {
			fmt.Printf("  %-30s %d\n", entry.Name, entry.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Input file path (CSV or Excel)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	analyzeCmd.Flags().StringVar(&analyzeCityCol, "city-col", "City", "City column header")
	analyzeCmd.Flags().StringVar(&analyzeDateCol, "date-col", "Order Placed At", "Date column header")
	analyzeCmd.Flags().StringVar(&analyzeStatusCol, "status-col", "Order Status", "Status column header")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 10, "Number of cities to list")

	_ = analyzeCmd.MarkFlagRequired("in")
}

type frequencyEntry struct {
	Name  string
	Count int
}

type analysisReport struct {
	RowsRead  int
	TopCities []frequencyEntry
	Statuses  []frequencyEntry
}

func buildAnalysis(table *importer.Table, cityCol, dateCol, statusCol string, topCities int) (*analysisReport, error) {
	cityIdx := importer.FindColumn(table.Headers, []string{cityCol})
	dateIdx := importer.FindColumn(table.Headers, []string{dateCol})
	statusIdx := importer.FindColumn(table.Headers, []string{statusCol})

	missing := make([]string, 0, 3)
	if cityIdx < 0 {
		missing = append(missing, cityCol)
	}
	if dateIdx < 0 {
		missing = append(missing, dateCol)
	}
	if statusIdx < 0 {
		missing = append(missing, statusCol)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required columns not found: %s", strings.Join(missing, ", "))
	}

	cities := sortedFrequencies(countFrequencies(table.Rows, cityIdx))
	if topCities >= 0 && len(cities) > topCities {
		cities = cities[:topCities]
	}

	return &analysisReport{
		RowsRead:  len(table.Rows),
		TopCities: cities,
		Statuses:  sortedFrequencies(countFrequencies(table.Rows, statusIdx)),
	}, nil
}

func countFrequencies(rows [][]string, idx int) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		counts[value]++
	}
	return counts
}

// sortedFrequencies orders by count descending, then name ascending for
// stable report output.
func sortedFrequencies(counts map[string]int) []frequencyEntry {
	entries := make([]frequencyEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, frequencyEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
