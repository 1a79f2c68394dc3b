package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"goorders/internal/dateutil"
)

// DateFormatError reports an order date the month-name grammar cannot parse.
// The original cell text is kept so the failure can quote it verbatim.
type DateFormatError struct {
	Raw string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Raw)
}

// monthNameDatePattern matches "<MonthName> <Day>[,] <Year>" with nothing
// around it.
var monthNameDatePattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),?\s+(\d{4})$`)

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ToISODate converts a free-text order timestamp such as
// "11:38 PM, September 10 2024" or "Jan 1, 2023" into YYYY-MM-DD form.
// The whole value is matched first; if that fails and a comma is present,
// only the substring after the last comma is retried, which discards a
// leading time prefix. The month must be spelled by name and the resulting
// calendar date must actually exist; there is no clamping and no partial
// result.
func ToISODate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	value = strings.Trim(value, `"`)
	value = strings.TrimSpace(value)

	match := monthNameDatePattern.FindStringSubmatch(value)
	if match == nil {
		if i := strings.LastIndex(value, ","); i >= 0 {
			match = monthNameDatePattern.FindStringSubmatch(strings.TrimSpace(value[i+1:]))
		}
	}
	if match == nil {
		return "", &DateFormatError{Raw: raw}
	}

	month, ok := monthsByName[strings.ToLower(match[1])]
	if !ok {
		return "", &DateFormatError{Raw: raw}
	}
	day, err := strconv.Atoi(match[2])
	if err != nil {
		return "", &DateFormatError{Raw: raw}
	}
	year, err := strconv.Atoi(match[3])
	if err != nil {
		return "", &DateFormatError{Raw: raw}
	}

	// time.Date normalizes impossible dates (Feb 30 rolls into March), so
	// an unchanged round-trip is the validity check.
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return "", &DateFormatError{Raw: raw}
	}

	return dateutil.FormatDay(date), nil
}
