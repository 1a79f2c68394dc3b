package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"goorders/archive"
	"goorders/config"
	"goorders/importer"
	"goorders/output"

	"github.com/spf13/cobra"
)

var (
	importZipPath    string
	importOutput     string
	importPick       string
	importExtractDir string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Extract a dataset zip and copy the best order history CSV out of it",
	Long: `Extract a downloaded dataset archive, score every contained .csv file by
how well its headers match the configured date and orders columns, and copy
the winning file into the canonical two-column series date,total_orders.

Scoring compares normalized headers against import.date_candidates and
import.orders_candidates; ties keep the first file in sorted path order.
The copied series must contain at least 7 rows.

Without --extract-dir the archive is unpacked into a temporary directory
that is removed when the command finishes.`,
	Example: `
  # Select the best CSV from the archive automatically
  goorders import -z food-delivery-order-history-data.zip -o total_orders.csv

  # Keep the extracted files around for inspection
  goorders import -z archive.zip -o total_orders.csv --extract-dir ./extracted

  # Bypass scoring and name the file inside the archive
  goorders import -z archive.zip -o total_orders.csv --pick data/total_orders.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return runImport(importZipPath, importOutput, importPick, importExtractDir, *cfg)
	},
}

// runImport extracts the archive, selects the source CSV, and writes the
// canonical series. Without a caller-provided extract dir the archive is
// unpacked into a temporary workspace that is removed before returning.
func runImport(zipPath, outputPath, pick, extractDir string, cfg config.Config) error {
	keepExtracted := extractDir != ""
	if !keepExtracted {
		tempDir, err := os.MkdirTemp("", "goorders-import-*")
		if err != nil {
			return fmt.Errorf("create extraction workspace: %w", err)
		}
		defer os.RemoveAll(tempDir)
		extractDir = tempDir
	}

	if err := archive.Extract(zipPath, extractDir); err != nil {
		return err
	}
	if keepExtracted {
		fmt.Printf("Extracted archive to: %s\n", extractDir)
	}

	csvFiles, err := archive.ListCSVFiles(extractDir)
	if err != nil {
		return err
	}

	sourcePath, err := chooseArchiveCSV(extractDir, pick, csvFiles, cfg)
	if err != nil {
		return err
	}

	projector := &importer.CopyProjector{Options: importer.CopyOptions{
		DateCandidates:   cfg.Import.DateCandidates,
		OrdersCandidates: cfg.Import.OrdersCandidates,
	}}

	result, err := importer.Run(sourcePath, "csv", projector)
	if err != nil {
		return err
	}

	writer := &output.CSVWriter{}
	if err := writer.Write(outputPath, result.Rows); err != nil {
		return err
	}

	fmt.Printf("Import completed. Source: %s, Rows: %d, Range: %s..%s, Output: %s\n",
		filepath.Base(sourcePath),
		len(result.Rows),
		result.FirstDate(),
		result.LastDate(),
		outputPath,
	)
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importZipPath, "zip", "z", "", "Dataset zip archive path")
	importCmd.Flags().StringVarP(&importOutput, "out", "o", "./total_orders.csv", "Output CSV file path")
	importCmd.Flags().StringVar(&importPick, "pick", "", "Relative path of a file inside the archive, bypasses scoring")
	importCmd.Flags().StringVar(&importExtractDir, "extract-dir", "", "Extract into this directory and keep it (default: removed temp dir)")

	_ = importCmd.MarkFlagRequired("zip")
}

// chooseArchiveCSV picks the source file for the canonical copy: an explicit
// --pick wins, otherwise the candidate scorer runs over every extracted .csv.
func chooseArchiveCSV(extractDir, pick string, csvFiles []string, cfg config.Config) (string, error) {
	if pick != "" {
		picked := filepath.Join(extractDir, pick)
		if _, err := os.Stat(picked); err != nil {
			return "", fmt.Errorf("picked file %q not found in archive: %w", pick, err)
		}
		return picked, nil
	}

	if len(csvFiles) == 0 {
		return "", fmt.Errorf("no .csv files found inside the zip")
	}

	best, err := importer.SelectBest(csvFiles, cfg.Import.DateCandidates, cfg.Import.OrdersCandidates)
	if err != nil {
		if errors.Is(err, importer.ErrNoCandidate) {
			return "", fmt.Errorf("%w; use --pick to name a file inside the archive", err)
		}
		return "", err
	}

	fmt.Printf("Selected %s (score %d)\n", filepath.Base(best.Path), best.Score)
	return best.Path, nil
}
