package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"goorders/internal/dateutil"
	"goorders/orders"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrNoDailyCounts = errors.New("no daily counts stored")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS daily_counts (
	date TEXT PRIMARY KEY,
	total_orders INTEGER NOT NULL CHECK(total_orders >= 0),
	source_file TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := s.ensureSourceFileColumn(); err != nil {
		return err
	}

	return nil
}

// ensureSourceFileColumn migrates databases created before source_file existed.
func (s *SQLiteStore) ensureSourceFileColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(daily_counts);`)
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	hasSourceFile := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, "source_file") {
			hasSourceFile = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}

	if hasSourceFile {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE daily_counts ADD COLUMN source_file TEXT NOT NULL DEFAULT '';`); err != nil {
		return fmt.Errorf("add source_file column: %w", err)
	}

	return nil
}

// SaveDailyCounts upserts one row per calendar day. Re-running a conversion
// for the same dates overwrites the stored totals instead of duplicating them.
func (s *SQLiteStore) SaveDailyCounts(counts []orders.DailyCount) (int, error) {
	if len(counts) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const upsertStmt = `
INSERT INTO daily_counts (date, total_orders, source_file)
VALUES (?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
	total_orders = excluded.total_orders,
	source_file = excluded.source_file;`

	stmt, err := tx.Prepare(upsertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, count := range counts {
		res, err := stmt.Exec(
			dateutil.FormatDay(count.Date),
			count.TotalOrders,
			count.SourceFile,
		)
		if err != nil {
			_ = tx.Rollback()
			return saved, fmt.Errorf("save daily count %s: %w", dateutil.FormatDay(count.Date), err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("commit transaction: %w", err)
	}

	return saved, nil
}

func (s *SQLiteStore) ListDailyCounts() ([]orders.DailyCount, error) {
	const query = `
SELECT
	date,
	total_orders,
	source_file
FROM daily_counts
ORDER BY date;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query daily counts: %w", err)
	}
	defer rows.Close()

	counts := make([]orders.DailyCount, 0, 64)
	for rows.Next() {
		var (
			dayRaw string
			count  orders.DailyCount
		)

		if err := rows.Scan(&dayRaw, &count.TotalOrders, &count.SourceFile); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}

		count.Date, err = dateutil.ParseDay(dayRaw)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dayRaw, err)
		}

		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily counts: %w", err)
	}

	return counts, nil
}

func (s *SQLiteStore) CountDailyCounts() (int64, error) {
	var total int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_counts;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count daily counts: %w", err)
	}
	return total, nil
}

func (s *SQLiteStore) DeleteAllDailyCounts() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM daily_counts;`)
	if err != nil {
		return 0, fmt.Errorf("delete daily counts: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
