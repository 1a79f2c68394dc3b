package importer

import (
	"strings"
	"unicode"
)

// NormalizeHeader lowercases a column label and collapses every run of
// non-alphanumeric characters into a single underscore, so variants like
// "Order Status", "order_status" and "ORDER-STATUS" compare equal. The
// result never starts or ends with an underscore.
func NormalizeHeader(label string) string {
	var builder strings.Builder
	builder.Grow(len(label))

	pendingSeparator := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingSeparator = true
			continue
		}
		if pendingSeparator && builder.Len() > 0 {
			builder.WriteByte('_')
		}
		pendingSeparator = false
		builder.WriteRune(r)
	}

	return builder.String()
}

// FindColumn resolves a semantic field against a header row. Candidates are
// tried in priority order, headers in positional order, both compared in
// normalized form; the first hit wins. Returns -1 when no candidate matches.
func FindColumn(headers []string, candidates []string) int {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = NormalizeHeader(header)
	}

	for _, candidate := range candidates {
		want := NormalizeHeader(candidate)
		if want == "" {
			continue
		}
		for i, header := range normalized {
			if header == want {
				return i
			}
		}
	}
	return -1
}
