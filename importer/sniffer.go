package importer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sampleLineLimit bounds how much of a file the delimiter sniffer and the
// header preview read.
const sampleLineLimit = 25

// Candidate delimiters in tie-break order.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// ReadSample returns up to maxLines decoded lines from the start of the
// file, joined with newlines. Input is treated as UTF-8 with an optional
// BOM; bytes that cannot be decoded are replaced instead of failing the
// read.
func ReadSample(path string, maxLines int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(file, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0, maxLines)
	for len(lines) < maxLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read sample from %s: %w", path, err)
	}
	return strings.Join(lines, "\n"), nil
}

// DetectDelimiter picks the most plausible delimiter for the sampled prefix
// of a delimited file. A candidate is plausible when it appears the same
// number of times, at least once, in every non-empty sample line; the
// plausible candidate with the highest per-line count wins and ties keep
// the earlier candidate. When nothing is plausible the sniffer falls back
// to comma, so detection itself never fails.
func DetectDelimiter(sample string) rune {
	lines := make([]string, 0, sampleLineLimit)
	for _, line := range strings.Split(sample, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		token := string(candidate)
		count := strings.Count(lines[0], token)
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, token) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}
