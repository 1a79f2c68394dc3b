package importer

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"goorders/orders"
)

// minOutputRows is the sanity floor shared by both projectors: fewer than
// this many distinct dates (aggregate) or copied rows (copy) means the
// selected input was not a real order history.
const minOutputRows = 7

var (
	// ErrColumnNotFound reports a required semantic column no header
	// matched.
	ErrColumnNotFound = errors.New("required column not found")

	// ErrInsufficientData reports canonical output below the sanity floor.
	ErrInsufficientData = errors.New("insufficient order data")
)

// Projector turns a raw source table into canonical date/total rows. The
// aggregate variant parses dates and counts orders per day; the copy
// variant keeps the source values verbatim.
type Projector interface {
	Name() string
	Project(table *Table) ([]orders.Row, error)
}

type AggregateOptions struct {
	DateCandidates   []string
	StatusCandidates []string
	// Status is the order status to keep, compared case-insensitively
	// after trimming both sides. Empty keeps every row.
	Status string
}

// AggregateProjector counts orders per calendar day. Rows with an empty
// date cell are skipped; a non-empty date the month-name grammar cannot
// parse aborts the whole run.
type AggregateProjector struct {
	Options AggregateOptions
}

func (p *AggregateProjector) Name() string { return "aggregate" }

func (p *AggregateProjector) Project(table *Table) ([]orders.Row, error) {
	dateIdx := FindColumn(table.Headers, p.Options.DateCandidates)
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: date (candidates: %s)", ErrColumnNotFound, strings.Join(p.Options.DateCandidates, ", "))
	}

	// A missing status column disables filtering instead of failing; some
	// exports simply do not carry one.
	statusIdx := FindColumn(table.Headers, p.Options.StatusCandidates)
	statusFilter := strings.TrimSpace(p.Options.Status)

	counts := make(map[string]int)
	for _, row := range table.Rows {
		if statusFilter != "" && statusIdx >= 0 {
			if !strings.EqualFold(strings.TrimSpace(cell(row, statusIdx)), statusFilter) {
				continue
			}
		}

		rawDate := strings.TrimSpace(cell(row, dateIdx))
		if rawDate == "" {
			continue
		}
		isoDate, err := ToISODate(rawDate)
		if err != nil {
			return nil, err
		}
		counts[isoDate]++
	}

	if len(counts) < minOutputRows {
		return nil, fmt.Errorf("%w: only %d distinct dates after aggregation, need at least %d", ErrInsufficientData, len(counts), minOutputRows)
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	rows := make([]orders.Row, 0, len(days))
	for _, day := range days {
		rows = append(rows, orders.Row{Date: day, Total: strconv.Itoa(counts[day])})
	}
	return rows, nil
}

type CopyOptions struct {
	DateCandidates   []string
	OrdersCandidates []string
}

// CopyProjector carries date and total cells over verbatim (trimmed), in
// source row order, without parsing dates or summing totals. Used for
// archives whose selected CSV already is a daily series.
type CopyProjector struct {
	Options CopyOptions
}

func (p *CopyProjector) Name() string { return "copy" }

func (p *CopyProjector) Project(table *Table) ([]orders.Row, error) {
	dateIdx := FindColumn(table.Headers, p.Options.DateCandidates)
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: date (candidates: %s)", ErrColumnNotFound, strings.Join(p.Options.DateCandidates, ", "))
	}
	ordersIdx := FindColumn(table.Headers, p.Options.OrdersCandidates)
	if ordersIdx < 0 {
		return nil, fmt.Errorf("%w: orders (candidates: %s)", ErrColumnNotFound, strings.Join(p.Options.OrdersCandidates, ", "))
	}

	rows := make([]orders.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		date := strings.TrimSpace(cell(row, dateIdx))
		if date == "" {
			continue
		}
		rows = append(rows, orders.Row{Date: date, Total: strings.TrimSpace(cell(row, ordersIdx))})
	}

	if len(rows) < minOutputRows {
		return nil, fmt.Errorf("%w: only %d rows in the converted series, need at least %d", ErrInsufficientData, len(rows), minOutputRows)
	}
	return rows, nil
}

// cell reads a column bounds-safely; short rows read as empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
