package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"goorders/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  goorders config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", viper.ConfigFileUsed())
			fmt.Println("Configuration:")
			fmt.Printf("convert.date_column: %s\n", cfg.Convert.DateColumn)
			fmt.Printf("convert.status_column: %s\n", cfg.Convert.StatusColumn)
			fmt.Printf("convert.status: %s\n", cfg.Convert.Status)
			fmt.Printf("import.date_candidates: %s\n", strings.Join(cfg.Import.DateCandidates, ", "))
			fmt.Printf("import.orders_candidates: %s\n", strings.Join(cfg.Import.OrdersCandidates, ", "))
			fmt.Printf("kaggle.base_url: %s\n", cfg.Kaggle.BaseURL)
			fmt.Printf("kaggle.dataset: %s\n", cfg.Kaggle.Dataset)
			fmt.Printf("rules: %d\n", len(cfg.Rules))
			for i, rule := range cfg.Rules {
				fmt.Printf("rules[%d].name: %s\n", i, rule.Name)
				fmt.Printf("rules[%d].file_template: %s\n", i, rule.FileTemplate)
				fmt.Printf("rules[%d].date_column: %s\n", i, rule.DateColumn)
				fmt.Printf("rules[%d].status_column: %s\n", i, rule.StatusColumn)
				statusStr := "(inherited)"
				if rule.Status != nil {
					statusStr = fmt.Sprintf("%q", *rule.Status)
				}
				fmt.Printf("rules[%d].status: %s\n", i, statusStr)
			}
		}

	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
