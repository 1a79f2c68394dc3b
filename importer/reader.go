package importer

import "fmt"

// Table holds one parsed source file: the header row as it appeared in the
// file plus every data row in positional form. Rows may be shorter or
// longer than the header row; projection treats missing cells as empty.
type Table struct {
	Path      string
	Delimiter rune
	Headers   []string
	Rows      [][]string
}

type Reader interface {
	Read(path string) (*Table, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch NormalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}
