package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cyberust/DietSimulation/internal/model"
)

// SQLiteRecorder persists projection runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers (e.g. Grafana) don't block writes.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			start_date        TEXT NOT NULL,
			end_date          TEXT NOT NULL,
			days              INTEGER NOT NULL,
			initial_weight_kg REAL,
			final_weight_kg   REAL,
			final_fat_pct     REAL,
			final_bmr_kcal    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_records (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL,
			date      TEXT NOT NULL,
			weight_kg REAL,
			fat_pct   REAL,
			bmr_kcal  REAL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_run ON daily_records(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run metadata and its full daily trajectory in one transaction.
func (r *SQLiteRecorder) RecordRun(sum *RunSummary, records []model.DailyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, start_date, end_date, days,
		 initial_weight_kg, final_weight_kg, final_fat_pct, final_bmr_kcal)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(),
		sum.StartDate.Format("2006-01-02"), sum.EndDate.Format("2006-01-02"),
		sum.Days, sum.InitialWeightKg, sum.FinalWeightKg, sum.FinalFatPct, sum.FinalBMRKcal,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO daily_records
		(run_id, date, weight_kg, fat_pct, bmr_kcal) VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare daily insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(runID, rec.Date.Format("2006-01-02"),
			rec.WeightKg, rec.FatPercentage, rec.BasalMetabolismKcal); err != nil {
			return fmt.Errorf("insert daily record: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
