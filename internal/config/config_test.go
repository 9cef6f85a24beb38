package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
simulation:
  start_date: "2025-07-16"
  end_date: "2025-09-30"
  initial_weight_kg: 65.3
  initial_fat_fraction: 0.215
  daily_calorie_intake: 1100
exercise:
  - kcal: 335
    days_per_week: 5
  - kcal: 100
    days_per_week: 3
targets:
  weight_kg: 55
  fat_pct_low: 10
  fat_pct_high: 12
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.TEFFraction != 0.15 {
		t.Errorf("tef default: expected 0.15, got %v", cfg.Simulation.TEFFraction)
	}
	if cfg.Simulation.NEATFraction != 0.20 {
		t.Errorf("neat default: expected 0.20, got %v", cfg.Simulation.NEATFraction)
	}
	if cfg.Simulation.FatLossRatio != 0.80 || cfg.Simulation.LBMLossRatio != 0.20 {
		t.Errorf("partition defaults: got %v / %v",
			cfg.Simulation.FatLossRatio, cfg.Simulation.LBMLossRatio)
	}
	if cfg.Simulation.KcalPerKg != 7200 {
		t.Errorf("kcal_per_kg default: expected 7200, got %v", cfg.Simulation.KcalPerKg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAILY_CALORIE_INTAKE", "1500")
	t.Setenv("SQLITE_PATH", "/tmp/runs.db")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Simulation.DailyCalorieIntake != 1500 {
		t.Errorf("intake override: expected 1500, got %v", cfg.Simulation.DailyCalorieIntake)
	}
	if cfg.Database.SQLitePath != "/tmp/runs.db" {
		t.Errorf("sqlite override: got %q", cfg.Database.SQLitePath)
	}
}

func TestValidate_Rejections(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted dates", func(c *Config) {
			c.Simulation.StartDate, c.Simulation.EndDate = c.Simulation.EndDate, c.Simulation.StartDate
		}},
		{"bad start date", func(c *Config) { c.Simulation.StartDate = "16/07/2025" }},
		{"zero weight", func(c *Config) { c.Simulation.InitialWeightKg = 0 }},
		{"fat fraction above 1", func(c *Config) { c.Simulation.InitialFatFraction = 1.5 }},
		{"negative intake", func(c *Config) { c.Simulation.DailyCalorieIntake = -1 }},
		{"tef out of range", func(c *Config) { c.Simulation.TEFFraction = -0.1 }},
		{"ratios not summing to 1", func(c *Config) { c.Simulation.FatLossRatio = 0.9 }},
		{"zero energy density", func(c *Config) { c.Simulation.KcalPerKg = 0 }},
		{"eight exercise days", func(c *Config) { c.Exercise[0].DaysPerWeek = 8 }},
	}
	for _, tt := range mutations {
		cfg, err := Load(writeConfig(t, validYAML))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tt.name)
		}
	}
}

func TestPlan_FromConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	plan, err := cfg.Plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	if plan.Days() != 77 {
		t.Errorf("expected 77 days, got %d", plan.Days())
	}
	wantExercise := (335*5 + 100*3) / 7.0
	if math.Abs(plan.ExerciseExpenditureKcal-wantExercise) > 1e-9 {
		t.Errorf("exercise average: expected %.4f, got %.4f",
			wantExercise, plan.ExerciseExpenditureKcal)
	}

	state := plan.InitialState()
	if math.Abs(state.LeanMassKg-65.3*0.785) > 1e-9 {
		t.Errorf("initial lean mass: expected %.4f, got %.4f", 65.3*0.785, state.LeanMassKg)
	}
	if math.Abs(state.FatMassKg+state.LeanMassKg-state.WeightKg) > 1e-9 {
		t.Errorf("initial state does not conserve mass")
	}
}
