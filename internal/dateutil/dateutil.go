package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// FormatDay renders a time as the canonical YYYY-MM-DD day string.
func FormatDay(value time.Time) string {
	return value.Format(dayLayout)
}

// ParseDay parses a canonical YYYY-MM-DD day string.
func ParseDay(value string) (time.Time, error) {
	parsed, err := time.Parse(dayLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return parsed, nil
}
