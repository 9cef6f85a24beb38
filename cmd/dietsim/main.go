package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyberust/DietSimulation/internal/config"
	"github.com/cyberust/DietSimulation/internal/engine"
	"github.com/cyberust/DietSimulation/internal/recorder"
	"github.com/cyberust/DietSimulation/internal/report"
	"github.com/cyberust/DietSimulation/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] dietsim starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	plan, err := cfg.Plan()
	if err != nil {
		log.Fatalf("[FATAL] build plan: %v", err)
	}
	targets := cfg.PlanTargets()

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// One-shot projection
	records := engine.Run(plan)
	last := records[len(records)-1]
	fmt.Print(report.FormatSummary(plan, records, targets))

	if cfg.Output.ChartPath != "" {
		if err := report.RenderChart(records, targets, cfg.Output.ChartPath); err != nil {
			log.Printf("[ERROR] render chart: %v", err)
		} else {
			log.Printf("[INFO] chart written: %s", cfg.Output.ChartPath)
		}
	}

	if err := rec.RecordRun(&recorder.RunSummary{
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

	// Without a cron schedule this is a one-shot tool.
	if cfg.Schedule.DailyCron == "" {
		log.Println("[INFO] dietsim done")
		return
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, plan, targets, rec, cfg.Output.ChartPath)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] dietsim is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] dietsim stopped")
}
