package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS days (
	day           INTEGER PRIMARY KEY,
	cash          INTEGER NOT NULL,
	loan          INTEGER NOT NULL,
	interest_paid INTEGER NOT NULL,
	taxes_paid    INTEGER NOT NULL,
	wages_paid    INTEGER NOT NULL,
	net_worth     INTEGER NOT NULL,
	recorded_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	day         INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	property_id TEXT,
	amount      INTEGER NOT NULL,
	detail      TEXT,
	recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_day ON transactions(day);
`

// Store is the SQLite-backed Recorder.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the ledger database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping ledger db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) RecordDay(rec DayRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO days
			(day, cash, loan, interest_paid, taxes_paid, wages_paid, net_worth, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Day, rec.Cash, rec.Loan, rec.InterestPaid, rec.TaxesPaid, rec.WagesPaid,
		rec.NetWorth, rec.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record day %d: %w", rec.Day, err)
	}
	return nil
}

func (s *Store) RecordTransaction(rec TransactionRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO transactions (day, kind, property_id, amount, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Day, string(rec.Kind), rec.PropertyID, rec.Amount, rec.Detail,
		rec.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record %s transaction: %w", rec.Kind, err)
	}
	return nil
}

// History returns the most recent day records, newest first, capped at limit.
func (s *Store) History(limit int) ([]DayRecord, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.Query(`
		SELECT day, cash, loan, interest_paid, taxes_paid, wages_paid, net_worth, recorded_at
		FROM days ORDER BY day DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []DayRecord{}
	for rows.Next() {
		var rec DayRecord
		var ts string
		if err := rows.Scan(&rec.Day, &rec.Cash, &rec.Loan, &rec.InterestPaid,
			&rec.TaxesPaid, &rec.WagesPaid, &rec.NetWorth, &ts); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.RecordedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Transactions returns every transaction recorded for one day, oldest first.
func (s *Store) Transactions(day int) ([]TransactionRecord, error) {
	rows, err := s.db.Query(`
		SELECT day, kind, COALESCE(property_id, ''), amount, COALESCE(detail, ''), recorded_at
		FROM transactions WHERE day = ? ORDER BY id`, day)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []TransactionRecord{}
	for rows.Next() {
		var rec TransactionRecord
		var kind, ts string
		if err := rows.Scan(&rec.Day, &kind, &rec.PropertyID, &rec.Amount, &rec.Detail, &ts); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		rec.Kind = TransactionKind(kind)
		rec.RecordedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
