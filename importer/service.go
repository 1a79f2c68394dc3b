package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"goorders/config"
	"goorders/orders"
)

// Result summarizes one projection run for command-line reporting.
type Result struct {
	SourceFile string
	Format     string
	Projector  string
	RowsRead   int
	Rows       []orders.Row
}

// FirstDate returns the date of the first canonical row, or "" when empty.
func (r *Result) FirstDate() string {
	if len(r.Rows) == 0 {
		return ""
	}
	return r.Rows[0].Date
}

// LastDate returns the date of the last canonical row, or "" when empty.
func (r *Result) LastDate() string {
	if len(r.Rows) == 0 {
		return ""
	}
	return r.Rows[len(r.Rows)-1].Date
}

// Run reads one source file with the reader matching its format and
// projects it into canonical rows. An empty format is inferred from the
// file extension.
func Run(path, format string, projector Projector) (*Result, error) {
	sourceFormat, err := InferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	rows, err := projector.Project(table)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}

	return &Result{
		SourceFile: path,
		Format:     sourceFormat,
		Projector:  projector.Name(),
		RowsRead:   len(table.Rows),
		Rows:       rows,
	}, nil
}

// InferFormat resolves the reader format: an explicit format wins, otherwise
// the file extension decides.
func InferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}

// MatchRuleByTemplate returns the first rule whose file template matches
// the path's base name or the full path. No match returns a zero rule.
func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	baseName := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, baseName)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}
