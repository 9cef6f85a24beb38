package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cyberust/DietSimulation/internal/engine"
	"github.com/cyberust/DietSimulation/internal/model"
	"github.com/cyberust/DietSimulation/internal/recorder"
	"github.com/cyberust/DietSimulation/internal/report"
)

// Scheduler reruns the projection on a cron schedule, shifting the start
// date to the current day so the remaining window shrinks as time passes.
type Scheduler struct {
	Cron      *cron.Cron
	Plan      *model.Plan
	Targets   model.Targets
	Recorder  recorder.Recorder
	ChartPath string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, plan *model.Plan, targets model.Targets, rec recorder.Recorder, chartPath string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Plan:      plan,
		Targets:   targets,
		Recorder:  rec,
		ChartPath: chartPath,
		Ctx:       ctx,
	}
}

// Register registers the daily reprojection task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.reprojectTask); err != nil {
		return fmt.Errorf("register daily reprojection: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the reprojection immediately (for manual trigger).
func (s *Scheduler) RunNow() {
	s.reprojectTask()
}

func (s *Scheduler) reprojectTask() {
	log.Println("[INFO] running daily reprojection")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(s.Plan.EndDate) {
		log.Printf("[WARN] plan window ended %s, skipping reprojection",
			s.Plan.EndDate.Format("2006-01-02"))
		return
	}

	plan := *s.Plan
	if today.After(plan.StartDate) {
		plan.StartDate = today
	}

	records := engine.Run(&plan)
	last := records[len(records)-1]

	log.Printf("[INFO] reprojection: %d days remaining, final %.2f kg / %.2f %% fat",
		len(records), last.WeightKg, last.FatPercentage)
	fmt.Print(report.FormatSummary(&plan, records, s.Targets))

	if s.ChartPath != "" {
		if err := report.RenderChart(records, s.Targets, s.ChartPath); err != nil {
			log.Printf("[ERROR] render chart: %v", err)
		}
	}

	if err := s.Recorder.RecordRun(&recorder.RunSummary{
		StartDate:       plan.StartDate,
		EndDate:         plan.EndDate,
		InitialWeightKg: plan.InitialWeightKg,
		FinalWeightKg:   last.WeightKg,
		FinalFatPct:     last.FatPercentage,
		FinalBMRKcal:    last.BasalMetabolismKcal,
		Days:            len(records),
	}, records); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
