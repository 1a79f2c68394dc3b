package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"goorders/internal/dateutil"
)

// Row is one record of the canonical orders CSV. Total stays textual
// because the archive import path copies source values through without
// re-parsing them.
type Row struct {
	Date  string
	Total string
}

// DailyCount is the parsed form of a canonical row as kept in storage.
type DailyCount struct {
	Date        time.Time
	TotalOrders int
	SourceFile  string
}

// DailyCountsFromRows parses canonical rows into storable daily counts.
// Every row must carry a canonical day and a non-negative integer total.
func DailyCountsFromRows(rows []Row, sourceFile string) ([]DailyCount, error) {
	counts := make([]DailyCount, 0, len(rows))
	for i, row := range rows {
		day, err := dateutil.ParseDay(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		total, err := strconv.Atoi(strings.TrimSpace(row.Total))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse total %q: %w", i+1, row.Total, err)
		}
		if total < 0 {
			return nil, fmt.Errorf("row %d: total must not be negative, got %d", i+1, total)
		}
		counts = append(counts, DailyCount{Date: day, TotalOrders: total, SourceFile: sourceFile})
	}
	return counts, nil
}

// RowsFromDailyCounts renders stored daily counts back into canonical rows.
func RowsFromDailyCounts(counts []DailyCount) []Row {
	rows := make([]Row, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, Row{
			Date:  dateutil.FormatDay(count.Date),
			Total: strconv.Itoa(count.TotalOrders),
		})
	}
	return rows
}
