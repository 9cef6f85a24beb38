package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cyberust/DietSimulation/internal/model"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	rec, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	start := time.Date(2025, time.July, 16, 0, 0, 0, 0, time.UTC)
	records := []model.DailyRecord{
		{Date: start, WeightKg: 65.1, FatPercentage: 21.4, BasalMetabolismKcal: 1477.2},
		{Date: start.AddDate(0, 0, 1), WeightKg: 64.9, FatPercentage: 21.3, BasalMetabolismKcal: 1476.1},
	}
	sum := &RunSummary{
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 1),
		InitialWeightKg: 65.3,
		FinalWeightKg:   64.9,
		FinalFatPct:     21.3,
		FinalBMRKcal:    1476.1,
		Days:            2,
	}
	if err := rec.RecordRun(sum, records); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var runs, daily int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&daily); err != nil {
		t.Fatalf("count daily records: %v", err)
	}
	if runs != 1 {
		t.Errorf("expected 1 run row, got %d", runs)
	}
	if daily != len(records) {
		t.Errorf("expected %d daily rows, got %d", len(records), daily)
	}

	var weight float64
	if err := rec.db.QueryRow(
		"SELECT weight_kg FROM daily_records ORDER BY date DESC LIMIT 1").Scan(&weight); err != nil {
		t.Fatalf("query last weight: %v", err)
	}
	if weight != 64.9 {
		t.Errorf("last weight: expected 64.9, got %v", weight)
	}
}
