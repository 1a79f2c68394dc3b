package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyConvertDateColumn      = "convert.date_column"
	KeyConvertStatusColumn    = "convert.status_column"
	KeyConvertStatus          = "convert.status"
	KeyImportDateCandidates   = "import.date_candidates"
	KeyImportOrdersCandidates = "import.orders_candidates"
	KeyKaggleBaseURL          = "kaggle.base_url"
	KeyKaggleDataset          = "kaggle.dataset"
	KeyRules                  = "rules"
)

var defaultDateCandidates = []string{"date"}

var defaultOrdersCandidates = []string{
	"total_orders", "order_count", "orders", "total", "num_orders", "number_of_orders",
}

type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Import  ImportConfig  `mapstructure:"import"`
	Kaggle  KaggleConfig  `mapstructure:"kaggle" validate:"required"`
	Rules   []Rule        `mapstructure:"rules"`
}

type ConvertConfig struct {
	DateColumn   string `mapstructure:"date_column" validate:"required"`
	StatusColumn string `mapstructure:"status_column"`
	// Status is the order status kept during aggregation; empty disables
	// the filter.
	Status string `mapstructure:"status"`
}

type ImportConfig struct {
	DateCandidates   []string `mapstructure:"date_candidates" validate:"min=1"`
	OrdersCandidates []string `mapstructure:"orders_candidates" validate:"min=1"`
}

type KaggleConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Dataset string `mapstructure:"dataset"`
}

// Rule overrides convert column resolution for files matching a template.
// Status is a pointer so a rule can distinguish "not set" from "set to
// empty", which disables the status filter for matching files.
type Rule struct {
	Name         string  `mapstructure:"name"`
	FileTemplate string  `mapstructure:"file_template"`
	DateColumn   string  `mapstructure:"date_column"`
	StatusColumn string  `mapstructure:"status_column"`
	Status       *string `mapstructure:"status"`
}

// HasStatus reports whether the rule sets a status filter value at all.
func (r Rule) HasStatus() bool {
	return r.Status != nil
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# goorders configuration
convert:
  date_column: "Order Placed At"
  status_column: "Order Status"
  status: "Delivered"

import:
  date_candidates: ["date"]
  orders_candidates: ["total_orders", "order_count", "orders", "total", "num_orders", "number_of_orders"]

kaggle:
  base_url: "https://www.kaggle.com"
  dataset: "sujalsuthar/food-delivery-order-history-data"

rules: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyConvertDateColumn, "Order Placed At")
	v.SetDefault(KeyConvertStatusColumn, "Order Status")
	v.SetDefault(KeyConvertStatus, "Delivered")
	v.SetDefault(KeyImportDateCandidates, defaultDateCandidates)
	v.SetDefault(KeyImportOrdersCandidates, defaultOrdersCandidates)
	v.SetDefault(KeyKaggleBaseURL, "https://www.kaggle.com")
	v.SetDefault(KeyKaggleDataset, "sujalsuthar/food-delivery-order-history-data")
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(rule.FileTemplate) == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if strings.TrimSpace(rule.DateColumn) == "" &&
			strings.TrimSpace(rule.StatusColumn) == "" &&
			!rule.HasStatus() {
			return fmt.Errorf(
				"validation failed: rules[%d] must set at least one of date_column, status_column, status",
				i,
			)
		}
	}
	return nil
}
