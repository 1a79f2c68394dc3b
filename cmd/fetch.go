package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"goorders/archive"
	"goorders/config"
	"goorders/kaggle"

	"github.com/spf13/cobra"
)

var (
	fetchDataset     string
	fetchOut         string
	fetchKeepArchive string
	fetchTimeout     time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a Kaggle dataset archive and extract it locally",
	Long: `Download the named dataset from the Kaggle public API and extract it into
a local directory. The dataset defaults to kaggle.dataset from config.

Authentication uses the KAGGLE_USERNAME/KAGGLE_KEY environment pair when
set, otherwise the token file at ~/.kaggle/kaggle.json.

The downloaded zip lives in a temporary file that is removed afterwards;
pass --keep-archive to keep it at a named path instead.`,
	Example: `
  # Fetch the configured dataset into data/<slug>
  goorders fetch

  # Fetch a specific dataset into a chosen directory
  goorders fetch --dataset sujalsuthar/food-delivery-order-history-data --out ./data/orders

  # Keep the archive for a later 'goorders import'
  goorders fetch --keep-archive ./orders.zip
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dataset, err := kaggle.ParseDataset(firstNonEmpty(fetchDataset, cfg.Kaggle.Dataset))
		if err != nil {
			return err
		}

		credentials, err := kaggle.LoadCredentials()
		if err != nil {
			return fmt.Errorf("load kaggle credentials (set %s/%s or create ~/.kaggle/kaggle.json): %w",
				kaggle.EnvUsername, kaggle.EnvKey, err)
		}

		client, err := kaggle.NewClient(kaggle.ClientConfig{
			BaseURL:     cfg.Kaggle.BaseURL,
			Credentials: credentials,
			UserAgent:   "goorders-fetch/1.0",
		})
		if err != nil {
			return err
		}

		archivePath := fetchKeepArchive
		if archivePath == "" {
			tempFile, err := os.CreateTemp("", "goorders-dataset-*.zip")
			if err != nil {
				return fmt.Errorf("create temp archive file: %w", err)
			}
			archivePath = tempFile.Name()
			_ = tempFile.Close()
			defer os.Remove(archivePath)
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := client.DownloadDataset(ctx, dataset, archivePath); err != nil {
			return err
		}

		outDir := fetchOut
		if outDir == "" {
			outDir = filepath.Join("data", dataset.Slug)
		}
		if err := archive.Extract(archivePath, outDir); err != nil {
			return err
		}

		csvFiles, err := archive.ListCSVFiles(outDir)
		if err != nil {
			return err
		}

		fmt.Printf("Fetch completed. Dataset: %s, Extracted to: %s, CSV files: %d\n", dataset, outDir, len(csvFiles))
		if fetchKeepArchive != "" {
			fmt.Printf("Archive kept at: %s\n", archivePath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchDataset, "dataset", "d", "", "Dataset as owner/slug (default: kaggle.dataset from config)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "Extraction directory (default: data/<slug>)")
	fetchCmd.Flags().StringVar(&fetchKeepArchive, "keep-archive", "", "Keep the downloaded zip at this path")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "Timeout for the dataset download")
}
