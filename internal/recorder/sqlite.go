package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			period      TEXT,
			interval    TEXT,
			price       REAL,
			score       INTEGER,
			tier        TEXT,
			reasons     TEXT,
			rsi         REAL,
			mfi         REAL,
			stoch_k     REAL,
			macd        REAL,
			short_float REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons, err := json.Marshal(rec.Reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, period, interval, price, score, tier, reasons,
		 rsi, mfi, stoch_k, macd, short_float)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), rec.Symbol, rec.Period, rec.Interval, rec.Price,
		rec.Score, rec.TierKey, string(reasons),
		nullable(rec.RSI), nullable(rec.MFI), nullable(rec.StochK),
		nullable(rec.MACD), nullable(rec.ShortFloat),
	)
	return err
}

func (r *SQLiteRecorder) RecentBySymbol(symbol string, limit int) ([]AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT timestamp, symbol, period, interval, price, score, tier, reasons,
		rsi, mfi, stoch_k, macd, short_float
		FROM analyses WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var ts int64
		var reasons string
		var rsi, mfi, stochK, macd, shortFloat sql.NullFloat64
		if err := rows.Scan(&ts, &rec.Symbol, &rec.Period, &rec.Interval, &rec.Price,
			&rec.Score, &rec.TierKey, &reasons,
			&rsi, &mfi, &stochK, &macd, &shortFloat); err != nil {
			return nil, err
		}
		rec.Timestamp = time.Unix(ts, 0)
		if err := json.Unmarshal([]byte(reasons), &rec.Reasons); err != nil {
			return nil, fmt.Errorf("unmarshal reasons: %w", err)
		}
		rec.RSI = fromNull(rsi)
		rec.MFI = fromNull(mfi)
		rec.StochK = fromNull(stochK)
		rec.MACD = fromNull(macd)
		rec.ShortFloat = fromNull(shortFloat)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func nullable(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func fromNull(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
