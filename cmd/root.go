/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"os"

	"github.com/spf13/cobra"
	"goorders/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goorders",
	Short: "Fetch, canonicalize, and analyze food delivery order history exports.",
	Long: `
**********************************************
*              GO ORDERS GO                  *
**********************************************

This CLI turns messy food delivery order history exports (CSV, Excel) into a
canonical per-day series with the two columns date,total_orders. It can fetch
a dataset archive from Kaggle, pick the most plausible CSV out of a zip,
aggregate raw order rows by day, and keep daily counts in a local SQLite
database.

Supported input formats:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
`,
	Example: `
  # Create configuration file
  goorders config create

  # Convert one raw export into the canonical daily series
  goorders convert -i swiggy_orders.csv -o total_orders.csv

  # Pull the canonical series out of a dataset zip
  goorders import -z archive.zip -o total_orders.csv

  # Download and extract the configured Kaggle dataset
  goorders fetch

  # Frequency report over a raw export
  goorders analyze -i swiggy_orders.csv

  # Export persisted daily counts
  goorders export --db ./goorders.db --output ./total_orders.csv

  # Drop all persisted daily counts
  goorders clear --db ./goorders.db
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.goorders.yaml, then ./.goorders.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "convert", "import", "fetch":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".goorders" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".goorders")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: goorders config create")
	}
}
