package importer

import (
	"errors"
	"testing"
)

func TestToISODate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "time prefix with full month", input: "11:38 PM, September 10 2024", want: "2024-09-10"},
		{name: "abbreviated month with comma", input: "Jan 1, 2023", want: "2023-01-01"},
		{name: "plain month day year", input: "September 10 2024", want: "2024-09-10"},
		{name: "sept abbreviation", input: "Sept 1, 2024", want: "2024-09-01"},
		{name: "uppercase month", input: "MARCH 5 2022", want: "2022-03-05"},
		{name: "surrounding quotes", input: `"11:38 PM, September 10 2024"`, want: "2024-09-10"},
		{name: "surrounding whitespace", input: "  Dec 31, 2021 ", want: "2021-12-31"},
		{name: "two digit day zero padded", input: "Feb 7 2024", want: "2024-02-07"},
		{name: "leap day", input: "Feb 29 2024", want: "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToISODate(tt.input)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("unexpected iso date: expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestToISODateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "numeric format", input: "13/01/2023"},
		{name: "iso already", input: "2023-01-13"},
		{name: "impossible calendar date", input: "Feb 30 2023"},
		{name: "non leap day", input: "Feb 29 2023"},
		{name: "unknown month token", input: "Januar 5 2023"},
		{name: "two digit year", input: "Jan 5 23"},
		{name: "trailing noise", input: "Jan 5 2023 10:00"},
		{name: "comma prefix swallows the day", input: "11:38 PM, September 10, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ToISODate(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q, got %q", tt.input, got)
			}

			var formatErr *DateFormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected DateFormatError, got %T: %v", err, err)
			}
			if formatErr.Raw != tt.input {
				t.Fatalf("expected error to carry raw input %q, got %q", tt.input, formatErr.Raw)
			}
		})
	}
}
