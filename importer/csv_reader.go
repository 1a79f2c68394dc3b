package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type CSVReader struct{}

// Read parses the whole file into a Table. The delimiter is sniffed from a
// bounded prefix first; the file content is decoded as UTF-8 with BOM
// handling and replacement of undecodable bytes, so messy exports never
// fail on encoding alone.
func (r *CSVReader) Read(path string) (*Table, error) {
	sample, err := ReadSample(path, sampleLineLimit)
	if err != nil {
		return nil, err
	}
	delimiter := DetectDelimiter(sample)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(file, decoder))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header from %s: %w", path, err)
	}

	rows := make([][]string, 0, 128)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d from %s: %w", len(rows)+2, path, err)
		}
		rows = append(rows, row)
	}

	return &Table{Path: path, Delimiter: delimiter, Headers: headers, Rows: rows}, nil
}
