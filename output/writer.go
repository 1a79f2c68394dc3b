package output

import (
	"fmt"
	"goorders/orders"
	"strings"
)

// Writer persists a canonical daily series as two columns: date,total_orders.
type Writer interface {
	Write(path string, rows []orders.Row) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
