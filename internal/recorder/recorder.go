package recorder

import (
	"time"

	"github.com/cyberust/DietSimulation/internal/model"
)

// RunSummary holds metadata for one completed projection run.
type RunSummary struct {
	StartDate       time.Time
	EndDate         time.Time
	InitialWeightKg float64
	FinalWeightKg   float64
	FinalFatPct     float64
	FinalBMRKcal    float64
	Days            int
}

// Recorder persists projection runs for later analysis.
type Recorder interface {
	RecordRun(sum *RunSummary, records []model.DailyRecord) error
	Close() error
}
