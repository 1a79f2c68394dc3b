package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"goorders/config"
)

func TestAppendRuleToConfigYAML(t *testing.T) {
	t.Run("appends rule to example config", func(t *testing.T) {
		rule := config.Rule{
			Name:         "swiggy",
			FileTemplate: "swiggy_*.csv",
			DateColumn:   "Order Placed At",
		}

		updated, err := appendRuleToConfigYAML([]byte(config.ExampleYAML()), rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, err := config.ValidateYAMLContent(updated)
		if err != nil {
			t.Fatalf("updated config does not validate: %v", err)
		}
		if len(cfg.Rules) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(cfg.Rules))
		}
		if cfg.Rules[0].Name != "swiggy" || cfg.Rules[0].FileTemplate != "swiggy_*.csv" {
			t.Fatalf("unexpected rule: %+v", cfg.Rules[0])
		}
		if cfg.Rules[0].Status != nil {
			t.Fatalf("expected inherited status, got %q", *cfg.Rules[0].Status)
		}
	})

	t.Run("appends rule to empty config", func(t *testing.T) {
		rule := config.Rule{
			Name:         "zomato",
			FileTemplate: "zomato_*.csv",
			StatusColumn: "Delivery Status",
		}

		updated, err := appendRuleToConfigYAML(nil, rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, err := config.ValidateYAMLContent(updated)
		if err != nil {
			t.Fatalf("updated config does not validate: %v", err)
		}
		if len(cfg.Rules) != 1 || cfg.Rules[0].StatusColumn != "Delivery Status" {
			t.Fatalf("unexpected rules: %+v", cfg.Rules)
		}
	})

	t.Run("keeps custom status value", func(t *testing.T) {
		completed := "Completed"
		rule := config.Rule{
			Name:         "zomato",
			FileTemplate: "zomato_*.csv",
			Status:       &completed,
		}

		updated, err := appendRuleToConfigYAML(nil, rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, err := config.ValidateYAMLContent(updated)
		if err != nil {
			t.Fatalf("updated config does not validate: %v", err)
		}
		if cfg.Rules[0].Status == nil || *cfg.Rules[0].Status != "Completed" {
			t.Fatalf("expected status Completed, got %+v", cfg.Rules[0].Status)
		}
	})

	t.Run("keeps empty status that disables filtering", func(t *testing.T) {
		empty := ""
		rule := config.Rule{
			Name:         "delivered-only",
			FileTemplate: "delivered_*.csv",
			Status:       &empty,
		}

		updated, err := appendRuleToConfigYAML(nil, rule)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, err := config.ValidateYAMLContent(updated)
		if err != nil {
			t.Fatalf("updated config does not validate: %v", err)
		}
		if cfg.Rules[0].Status == nil {
			t.Fatalf("expected explicit empty status, got nil")
		}
		if *cfg.Rules[0].Status != "" {
			t.Fatalf("expected empty status, got %q", *cfg.Rules[0].Status)
		}
	})

	t.Run("rejects duplicate rule name case-insensitively", func(t *testing.T) {
		first := config.Rule{
			Name:         "swiggy",
			FileTemplate: "swiggy_*.csv",
			DateColumn:   "Order Placed At",
		}
		content, err := appendRuleToConfigYAML([]byte(config.ExampleYAML()), first)
		if err != nil {
			t.Fatalf("unexpected error adding first rule: %v", err)
		}

		second := config.Rule{
			Name:         "Swiggy",
			FileTemplate: "other_*.csv",
			DateColumn:   "Date",
		}
		_, err = appendRuleToConfigYAML(content, second)
		if err == nil {
			t.Fatalf("expected duplicate name error")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects rule without any override", func(t *testing.T) {
		rule := config.Rule{
			Name:         "noop",
			FileTemplate: "noop_*.csv",
		}

		_, err := appendRuleToConfigYAML(nil, rule)
		if err == nil {
			t.Fatalf("expected error for rule without overrides")
		}
		if !strings.Contains(err.Error(), "at least one of") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects missing name and template", func(t *testing.T) {
		if _, err := appendRuleToConfigYAML(nil, config.Rule{FileTemplate: "x*.csv", DateColumn: "Date"}); err == nil {
			t.Fatalf("expected error for missing name")
		}
		if _, err := appendRuleToConfigYAML(nil, config.Rule{Name: "x", DateColumn: "Date"}); err == nil {
			t.Fatalf("expected error for missing file template")
		}
	})
}

func TestPromptSelectIndex(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("9\nabc\n2\n"))
	output := &bytes.Buffer{}

	got, err := promptSelectIndex(reader, output, "Status filter for matching files:", []string{
		"Inherit convert.status",
		"Keep only a specific status",
		"Disable status filtering",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if !strings.Contains(output.String(), "Invalid selection") {
		t.Fatalf("expected re-prompt after invalid input, got:\n%s", output.String())
	}
}

func TestPromptRequiredString(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\n   \nzomato\n"))
	output := &bytes.Buffer{}

	got, err := promptRequiredString(reader, output, "Rule name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "zomato" {
		t.Fatalf("expected %q, got %q", "zomato", got)
	}
	if !strings.Contains(output.String(), "Value must not be empty.") {
		t.Fatalf("expected empty-value hint, got:\n%s", output.String())
	}
}

func TestPromptOptionalString(t *testing.T) {
	t.Run("keeps entered value", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("  Order Date \n"))
		got, err := promptOptionalString(reader, &bytes.Buffer{}, "Date column")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Order Date" {
			t.Fatalf("expected trimmed value, got %q", got)
		}
	})

	t.Run("empty line skips", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("\n"))
		got, err := promptOptionalString(reader, &bytes.Buffer{}, "Date column")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Fatalf("expected empty value, got %q", got)
		}
	})

	t.Run("eof skips", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader(""))
		got, err := promptOptionalString(reader, &bytes.Buffer{}, "Date column")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Fatalf("expected empty value, got %q", got)
		}
	})
}
