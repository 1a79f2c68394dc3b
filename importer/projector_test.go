package importer

import (
	"errors"
	"testing"

	"goorders/orders"
)

func aggregateTable(rows [][]string) *Table {
	return &Table{
		Path:    "orders.csv",
		Headers: []string{"Order ID", "Order Placed At", "Order Status"},
		Rows:    rows,
	}
}

func defaultAggregateProjector() *AggregateProjector {
	return &AggregateProjector{Options: AggregateOptions{
		DateCandidates:   []string{"Order Placed At"},
		StatusCandidates: []string{"Order Status"},
		Status:           "Delivered",
	}}
}

func sevenDeliveredRows() [][]string {
	return [][]string{
		{"1", "11:38 PM, September 1 2024", "Delivered"},
		{"2", "10:00 AM, September 1 2024", "delivered"},
		{"3", "09:12 AM, September 2 2024", "DELIVERED "},
		{"4", "08:01 PM, September 3 2024", "Delivered"},
		{"5", "07:44 PM, September 4 2024", "Delivered"},
		{"6", "06:30 PM, September 5 2024", "Delivered"},
		{"7", "05:15 PM, September 6 2024", "Delivered"},
		{"8", "04:00 PM, September 7 2024", "Delivered"},
	}
}

func TestAggregateProjectorCountsAndFilters(t *testing.T) {
	t.Parallel()

	rows := sevenDeliveredRows()
	rows = append(rows,
		[]string{"9", "03:00 PM, September 1 2024", "Cancelled"},
		[]string{"10", "02:00 PM, September 8 2024", "Cancelled"},
	)

	got, err := defaultAggregateProjector().Project(aggregateTable(rows))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	want := []orders.Row{
		{Date: "2024-09-01", Total: "2"},
		{Date: "2024-09-02", Total: "1"},
		{Date: "2024-09-03", Total: "1"},
		{Date: "2024-09-04", Total: "1"},
		{Date: "2024-09-05", Total: "1"},
		{Date: "2024-09-06", Total: "1"},
		{Date: "2024-09-07", Total: "1"},
	}
	assertRowsEqual(t, want, got)
}

func TestAggregateProjectorStatusFilterVariants(t *testing.T) {
	t.Parallel()

	// Mixed-case and padded statuses must pass the filter; September 8
	// exists only as a cancelled order and must not appear at all.
	rows := sevenDeliveredRows()
	rows = append(rows, []string{"9", "02:00 PM, September 8 2024", "Cancelled"})

	got, err := defaultAggregateProjector().Project(aggregateTable(rows))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if len(got) != 7 {
		t.Fatalf("expected 7 distinct dates, got %d", len(got))
	}
	for _, row := range got {
		if row.Date == "2024-09-08" {
			t.Fatalf("cancelled-only date leaked into output: %+v", got)
		}
	}
	if got[0].Total != "2" {
		t.Fatalf("expected the three delivered spellings of Sep 1 plus none filtered, got total %q", got[0].Total)
	}
}

func TestAggregateProjectorEmptyStatusKeepsEverything(t *testing.T) {
	t.Parallel()

	rows := sevenDeliveredRows()
	rows = append(rows, []string{"9", "02:00 PM, September 8 2024", "Cancelled"})

	projector := defaultAggregateProjector()
	projector.Options.Status = ""

	got, err := projector.Project(aggregateTable(rows))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 distinct dates without filtering, got %d", len(got))
	}
}

func TestAggregateProjectorMissingStatusColumnBypassesFilter(t *testing.T) {
	t.Parallel()

	table := &Table{
		Headers: []string{"Order Placed At"},
		Rows: [][]string{
			{"Sep 1 2024"}, {"Sep 2 2024"}, {"Sep 3 2024"}, {"Sep 4 2024"},
			{"Sep 5 2024"}, {"Sep 6 2024"}, {"Sep 7 2024"},
		},
	}

	got, err := defaultAggregateProjector().Project(table)
	if err != nil {
		t.Fatalf("expected filter bypass when status column is missing, got %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(got))
	}
}

func TestAggregateProjectorSkipsEmptyDates(t *testing.T) {
	t.Parallel()

	rows := sevenDeliveredRows()
	rows = append(rows,
		[]string{"9", "", "Delivered"},
		[]string{"10", "   ", "Delivered"},
		[]string{"11"}, // short row: both cells read as empty
	)

	got, err := defaultAggregateProjector().Project(aggregateTable(rows))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected empty dates to be skipped silently, got %d rows", len(got))
	}
}

func TestAggregateProjectorAbortsOnUnparsableDate(t *testing.T) {
	t.Parallel()

	rows := sevenDeliveredRows()
	rows = append(rows, []string{"9", "13/01/2023", "Delivered"})

	_, err := defaultAggregateProjector().Project(aggregateTable(rows))
	if err == nil {
		t.Fatal("expected error for unparsable date, got nil")
	}
	var formatErr *DateFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected DateFormatError, got %T: %v", err, err)
	}
	if formatErr.Raw != "13/01/2023" {
		t.Fatalf("expected offending value in error, got %q", formatErr.Raw)
	}
}

func TestAggregateProjectorTooFewDistinctDates(t *testing.T) {
	t.Parallel()

	six := sevenDeliveredRows()[:7] // rows 1-7 cover six distinct dates (Sep 1 twice)

	_, err := defaultAggregateProjector().Project(aggregateTable(six))
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 6 distinct dates, got %v", err)
	}

	if _, err := defaultAggregateProjector().Project(aggregateTable(sevenDeliveredRows())); err != nil {
		t.Fatalf("expected 7 distinct dates to pass, got %v", err)
	}
}

func TestAggregateProjectorMissingDateColumn(t *testing.T) {
	t.Parallel()

	table := &Table{Headers: []string{"City", "Order Status"}, Rows: [][]string{{"Pune", "Delivered"}}}

	_, err := defaultAggregateProjector().Project(table)
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestCopyProjectorCopiesVerbatim(t *testing.T) {
	t.Parallel()

	table := &Table{
		Headers: []string{"Date", "City", "Order Count"},
		Rows: [][]string{
			{" 2024-09-01 ", "Pune", " 2 "},
			{"2024-09-02", "Pune", "5"},
			{"", "Pune", "9"},
			{"2024-09-03", "Pune", "x"},
			{"2024-09-04", "Pune", "4"},
			{"2024-09-05", "Pune", "6"},
			{"2024-09-06", "Pune", "1"},
			{"2024-09-07", "Pune"},
		},
	}

	projector := &CopyProjector{Options: CopyOptions{
		DateCandidates:   testDateCandidates,
		OrdersCandidates: testOrdersCandidates,
	}}

	got, err := projector.Project(table)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	want := []orders.Row{
		{Date: "2024-09-01", Total: "2"},
		{Date: "2024-09-02", Total: "5"},
		{Date: "2024-09-03", Total: "x"},
		{Date: "2024-09-04", Total: "4"},
		{Date: "2024-09-05", Total: "6"},
		{Date: "2024-09-06", Total: "1"},
		{Date: "2024-09-07", Total: ""},
	}
	assertRowsEqual(t, want, got)
}

func TestCopyProjectorRequiresBothColumns(t *testing.T) {
	t.Parallel()

	projector := &CopyProjector{Options: CopyOptions{
		DateCandidates:   testDateCandidates,
		OrdersCandidates: testOrdersCandidates,
	}}

	noDate := &Table{Headers: []string{"day", "order_count"}, Rows: nil}
	if _, err := projector.Project(noDate); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound for missing date column, got %v", err)
	}

	noOrders := &Table{Headers: []string{"date", "city"}, Rows: nil}
	if _, err := projector.Project(noOrders); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound for missing orders column, got %v", err)
	}
}

func TestCopyProjectorTooFewRows(t *testing.T) {
	t.Parallel()

	table := &Table{
		Headers: []string{"date", "orders"},
		Rows: [][]string{
			{"2024-09-01", "1"}, {"2024-09-02", "2"}, {"2024-09-03", "3"},
			{"2024-09-04", "4"}, {"2024-09-05", "5"}, {"2024-09-06", "6"},
		},
	}

	projector := &CopyProjector{Options: CopyOptions{
		DateCandidates:   testDateCandidates,
		OrdersCandidates: testOrdersCandidates,
	}}

	if _, err := projector.Project(table); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 6 rows, got %v", err)
	}
}

func assertRowsEqual(t *testing.T, want, got []orders.Row) {
	t.Helper()

	if len(want) != len(got) {
		t.Fatalf("unexpected row count: expected %d, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("unexpected row %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
