package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
)

// fieldWeight is the score contribution of each semantic field a header set
// resolves.
const fieldWeight = 5

// ErrNoCandidate reports that no readable CSV in the considered set looked
// like an order history export.
var ErrNoCandidate = errors.New("no order history csv detected")

// Candidate is one scored CSV file considered during auto-detection.
type Candidate struct {
	Path      string
	Score     int
	Delimiter rune
	Headers   []string
}

// ScoreHeaders rates how much a header set looks like an order history:
// one weight class for resolving the date field, one for resolving the
// orders field. Both weigh the same and neither is required, so a file
// carrying only one of the signals still scores.
func ScoreHeaders(headers, dateCandidates, ordersCandidates []string) int {
	score := 0
	if FindColumn(headers, dateCandidates) >= 0 {
		score += fieldWeight
	}
	if FindColumn(headers, ordersCandidates) >= 0 {
		score += fieldWeight
	}
	return score
}

// ReadHeaders sniffs the delimiter from a bounded prefix of the file and
// parses the first record with it.
func ReadHeaders(path string) ([]string, rune, error) {
	sample, err := ReadSample(path, sampleLineLimit)
	if err != nil {
		return nil, 0, err
	}
	delimiter := DetectDelimiter(sample)

	reader := csv.NewReader(strings.NewReader(sample))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read headers from %s: %w", path, err)
	}
	return headers, delimiter, nil
}

// SelectBest scores every path and returns the best-scoring readable file.
// Files whose headers cannot be read are skipped, never scored. Ties keep
// the first file in path order, and a readable file scoring zero still
// beats nothing: only an empty or fully unreadable set yields
// ErrNoCandidate.
func SelectBest(paths, dateCandidates, ordersCandidates []string) (*Candidate, error) {
	var best *Candidate
	bestScore := -1

	for _, path := range paths {
		headers, delimiter, err := ReadHeaders(path)
		if err != nil {
			continue
		}
		score := ScoreHeaders(headers, dateCandidates, ordersCandidates)
		if score > bestScore {
			best = &Candidate{Path: path, Score: score, Delimiter: delimiter, Headers: headers}
			bestScore = score
		}
	}

	if best == nil {
		return nil, ErrNoCandidate
	}
	return best, nil
}
