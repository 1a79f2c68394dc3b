package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"goorders/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	configRuleAddName         string
	configRuleAddFileTemplate string
	configRuleAddDateCol      string
	configRuleAddStatusCol    string
	configRuleAddStatus       string
)

var configRuleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one per-file import rule to config.",
	Long: `Store a new rules entry in config, mapping a file name template to
column and status overrides used by convert for matching files.

Values not given as flags are asked for interactively. The status filter
is a three-way choice: inherit convert.status, keep only a specific
status, or disable filtering entirely for matching files.`,
	Example: `
  # Add one rule interactively
  goorders config rule add

  # Add a rule without prompts
  goorders config rule add --name zomato --file-template "zomato_*.csv" --date-col "Order Date" --status Completed

  # Disable status filtering for files that already contain one status only
  goorders config rule add --name delivered-only --file-template "delivered_*.csv" --status ""
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		_, err = ensureConfigFileWithTemplate(configPath)
		if err != nil {
			return err
		}

		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", configPath, err)
		}

		reader := bufio.NewReader(os.Stdin)

		ruleName := configRuleAddName
		if !cmd.Flags().Changed("name") {
			ruleName, err = promptRequiredString(reader, os.Stdout, "Rule name")
			if err != nil {
				return err
			}
		}

		fileTemplate := configRuleAddFileTemplate
		if !cmd.Flags().Changed("file-template") {
			fileTemplate, err = promptRequiredString(reader, os.Stdout, "File template (example: swiggy_*.csv)")
			if err != nil {
				return err
			}
		}

		dateColumn := configRuleAddDateCol
		if !cmd.Flags().Changed("date-col") {
			dateColumn, err = promptOptionalString(reader, os.Stdout, "Date column (empty keeps convert.date_column)")
			if err != nil {
				return err
			}
		}

		statusColumn := configRuleAddStatusCol
		if !cmd.Flags().Changed("status-col") {
			statusColumn, err = promptOptionalString(reader, os.Stdout, "Status column (empty keeps convert.status_column)")
			if err != nil {
				return err
			}
		}

		var status *string
		if cmd.Flags().Changed("status") {
			status = &configRuleAddStatus
		} else {
			selectedStatusIdx, err := promptSelectIndex(
				reader,
				os.Stdout,
				"Status filter for matching files:",
				[]string{
					"Inherit convert.status",
					"Keep only a specific status",
					"Disable status filtering",
				},
			)
			if err != nil {
				return err
			}
			switch selectedStatusIdx {
			case 1:
				statusValue, err := promptRequiredString(reader, os.Stdout, "Status value")
				if err != nil {
					return err
				}
				status = &statusValue
			case 2:
				empty := ""
				status = &empty
			}
		}

		newRule := config.Rule{
			Name:         ruleName,
			FileTemplate: fileTemplate,
			DateColumn:   dateColumn,
			StatusColumn: statusColumn,
			Status:       status,
		}

		current, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}

		updated, err := appendRuleToConfigYAML(current, newRule)
		if err != nil {
			return err
		}

		if err := os.WriteFile(configPath, updated, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		dateColumnStr := newRule.DateColumn
		if dateColumnStr == "" {
			dateColumnStr = "(inherited)"
		}
		statusColumnStr := newRule.StatusColumn
		if statusColumnStr == "" {
			statusColumnStr = "(inherited)"
		}
		statusStr := "(inherited)"
		if newRule.Status != nil {
			statusStr = fmt.Sprintf("%q", *newRule.Status)
		}

		fmt.Println("Rule added successfully.")
		fmt.Printf("Config:        %s\n", configPath)
		fmt.Printf("Name:          %s\n", newRule.Name)
		fmt.Printf("Template:      %s\n", newRule.FileTemplate)
		fmt.Printf("Date column:   %s\n", dateColumnStr)
		fmt.Printf("Status column: %s\n", statusColumnStr)
		fmt.Printf("Status:        %s\n", statusStr)
		return nil
	},
}

func promptSelectIndex(reader *bufio.Reader, out io.Writer, title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options available for %q", title)
	}

	for {
		fmt.Fprintln(out, title)
		for i, option := range options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, option)
		}
		fmt.Fprintf(out, "Choose [1-%d]: ", len(options))

		input, err := reader.ReadString('\n')
		if err != nil {
			return -1, fmt.Errorf("read selection input: %w", err)
		}
		input = strings.TrimSpace(input)
		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintln(out, "Invalid selection. Please enter a valid number.")
			continue
		}
		return choice - 1, nil
	}
}

func promptRequiredString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", strings.TrimSpace(label))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.ToLower(label)), err)
		}
		value := strings.TrimSpace(input)
		if value == "" {
			fmt.Fprintln(out, "Value must not be empty.")
			continue
		}
		return value, nil
	}
}

func promptOptionalString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", strings.TrimSpace(label))
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.ToLower(label)), err)
	}
	return strings.TrimSpace(input), nil
}

func appendRuleToConfigYAML(content []byte, rule config.Rule) ([]byte, error) {
	if strings.TrimSpace(rule.Name) == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if strings.TrimSpace(rule.FileTemplate) == "" {
		return nil, fmt.Errorf("file template is required")
	}
	if strings.TrimSpace(rule.DateColumn) == "" &&
		strings.TrimSpace(rule.StatusColumn) == "" &&
		!rule.HasStatus() {
		return nil, fmt.Errorf("rule must set at least one of date_column, status_column, status")
	}

	doc := map[string]any{}
	if strings.TrimSpace(string(content)) != "" {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	rulesList, err := ensureSliceAny(doc, "rules")
	if err != nil {
		return nil, err
	}

	for _, existing := range rulesList {
		ruleMap, ok := existing.(map[string]any)
		if !ok {
			continue
		}
		existingName, _ := ruleMap["name"].(string)
		if strings.EqualFold(strings.TrimSpace(existingName), strings.TrimSpace(rule.Name)) {
			return nil, fmt.Errorf("rule with name %q already exists", rule.Name)
		}
	}

	entry := map[string]any{
		"name":          rule.Name,
		"file_template": rule.FileTemplate,
	}
	if strings.TrimSpace(rule.DateColumn) != "" {
		entry["date_column"] = rule.DateColumn
	}
	if strings.TrimSpace(rule.StatusColumn) != "" {
		entry["status_column"] = rule.StatusColumn
	}
	if rule.Status != nil {
		entry["status"] = *rule.Status
	}

	rulesList = append(rulesList, entry)
	doc["rules"] = rulesList

	updated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal updated config yaml: %w", err)
	}
	if _, err := config.ValidateYAMLContent(updated); err != nil {
		return nil, fmt.Errorf("updated config is invalid: %w", err)
	}
	return updated, nil
}

func ensureSliceAny(doc map[string]any, key string) ([]any, error) {
	raw, exists := doc[key]
	if !exists || raw == nil {
		result := []any{}
		doc[key] = result
		return result, nil
	}
	result, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config key %q must be a list", key)
	}
	return result, nil
}

func init() {
	configRuleCmd.AddCommand(configRuleAddCmd)

	configRuleAddCmd.Flags().StringVar(&configRuleAddName, "name", "", "Rule name (unique, case-insensitive)")
	configRuleAddCmd.Flags().StringVar(&configRuleAddFileTemplate, "file-template", "", "File name template the rule applies to (example: swiggy_*.csv)")
	configRuleAddCmd.Flags().StringVar(&configRuleAddDateCol, "date-col", "", "Date column override for matching files")
	configRuleAddCmd.Flags().StringVar(&configRuleAddStatusCol, "status-col", "", "Status column override for matching files")
	configRuleAddCmd.Flags().StringVar(&configRuleAddStatus, "status", "", "Status filter for matching files (empty string disables filtering)")
}
