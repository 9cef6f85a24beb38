package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cyberust/DietSimulation/internal/calculator"
	"github.com/cyberust/DietSimulation/internal/model"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Simulation struct {
		StartDate          string  `yaml:"start_date"`
		EndDate            string  `yaml:"end_date"`
		InitialWeightKg    float64 `yaml:"initial_weight_kg"`
		InitialFatFraction float64 `yaml:"initial_fat_fraction"`
		DailyCalorieIntake float64 `yaml:"daily_calorie_intake"`
		TEFFraction        float64 `yaml:"tef_fraction"`
		NEATFraction       float64 `yaml:"neat_fraction"`
		FatLossRatio       float64 `yaml:"fat_loss_ratio"`
		LBMLossRatio       float64 `yaml:"lbm_loss_ratio"`
		KcalPerKg          float64 `yaml:"kcal_per_kg"`
	} `yaml:"simulation"`
	Exercise []struct {
		Kcal        float64 `yaml:"kcal"`
		DaysPerWeek int     `yaml:"days_per_week"`
	} `yaml:"exercise"`
	Targets struct {
		WeightKg   float64 `yaml:"weight_kg"`
		FatPctLow  float64 `yaml:"fat_pct_low"`
		FatPctHigh float64 `yaml:"fat_pct_high"`
	} `yaml:"targets"`
	Output struct {
		ChartPath string `yaml:"chart_path"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SIM_START_DATE"); v != "" {
		cfg.Simulation.StartDate = v
	}
	if v := os.Getenv("SIM_END_DATE"); v != "" {
		cfg.Simulation.EndDate = v
	}
	if v := os.Getenv("DAILY_CALORIE_INTAKE"); v != "" {
		var intake float64
		if _, err := fmt.Sscanf(v, "%f", &intake); err == nil {
			cfg.Simulation.DailyCalorieIntake = intake
		}
	}
	if v := os.Getenv("CHART_PATH"); v != "" {
		cfg.Output.ChartPath = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	// Defaults
	if cfg.Simulation.TEFFraction == 0 {
		cfg.Simulation.TEFFraction = 0.15
	}
	if cfg.Simulation.NEATFraction == 0 {
		cfg.Simulation.NEATFraction = 0.20
	}
	if cfg.Simulation.FatLossRatio == 0 && cfg.Simulation.LBMLossRatio == 0 {
		cfg.Simulation.FatLossRatio = 0.80
		cfg.Simulation.LBMLossRatio = 0.20
	}
	if cfg.Simulation.KcalPerKg == 0 {
		cfg.Simulation.KcalPerKg = 7200
	}
	if cfg.Output.ChartPath == "" {
		cfg.Output.ChartPath = "data/projection.png"
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	start, err := time.Parse(dateLayout, c.Simulation.StartDate)
	if err != nil {
		return fmt.Errorf("simulation.start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, c.Simulation.EndDate)
	if err != nil {
		return fmt.Errorf("simulation.end_date: %w", err)
	}
	if start.After(end) {
		return fmt.Errorf("simulation.start_date must not be after end_date")
	}
	if c.Simulation.InitialWeightKg <= 0 {
		return fmt.Errorf("simulation.initial_weight_kg must be positive")
	}
	if c.Simulation.InitialFatFraction < 0 || c.Simulation.InitialFatFraction > 1 {
		return fmt.Errorf("simulation.initial_fat_fraction must be within [0,1]")
	}
	if c.Simulation.DailyCalorieIntake < 0 {
		return fmt.Errorf("simulation.daily_calorie_intake must not be negative")
	}
	if c.Simulation.TEFFraction < 0 || c.Simulation.TEFFraction > 1 {
		return fmt.Errorf("simulation.tef_fraction must be within [0,1]")
	}
	if c.Simulation.NEATFraction < 0 || c.Simulation.NEATFraction > 1 {
		return fmt.Errorf("simulation.neat_fraction must be within [0,1]")
	}
	if c.Simulation.FatLossRatio < 0 || c.Simulation.FatLossRatio > 1 {
		return fmt.Errorf("simulation.fat_loss_ratio must be within [0,1]")
	}
	if c.Simulation.LBMLossRatio < 0 || c.Simulation.LBMLossRatio > 1 {
		return fmt.Errorf("simulation.lbm_loss_ratio must be within [0,1]")
	}
	if sum := c.Simulation.FatLossRatio + c.Simulation.LBMLossRatio; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("fat_loss_ratio + lbm_loss_ratio must equal 1, got %.6f", sum)
	}
	if c.Simulation.KcalPerKg <= 0 {
		return fmt.Errorf("simulation.kcal_per_kg must be positive")
	}
	for i, e := range c.Exercise {
		if e.DaysPerWeek < 0 || e.DaysPerWeek > 7 {
			return fmt.Errorf("exercise[%d].days_per_week must be between 0 and 7", i)
		}
		if e.Kcal < 0 {
			return fmt.Errorf("exercise[%d].kcal must not be negative", i)
		}
	}
	return nil
}

// Plan builds the immutable simulation inputs from the validated config.
func (c *Config) Plan() (*model.Plan, error) {
	start, err := time.Parse(dateLayout, c.Simulation.StartDate)
	if err != nil {
		return nil, fmt.Errorf("simulation.start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, c.Simulation.EndDate)
	if err != nil {
		return nil, fmt.Errorf("simulation.end_date: %w", err)
	}

	sessions := make([]model.ExerciseSession, len(c.Exercise))
	for i, e := range c.Exercise {
		sessions[i] = model.ExerciseSession{Kcal: e.Kcal, DaysPerWeek: e.DaysPerWeek}
	}
	exercise, err := calculator.WeeklyExerciseAverage(sessions)
	if err != nil {
		return nil, fmt.Errorf("exercise: %w", err)
	}

	return &model.Plan{
		StartDate:               start,
		EndDate:                 end,
		InitialWeightKg:         c.Simulation.InitialWeightKg,
		InitialFatFraction:      c.Simulation.InitialFatFraction,
		DailyCalorieIntake:      c.Simulation.DailyCalorieIntake,
		ExerciseExpenditureKcal: exercise,
		TEFFraction:             c.Simulation.TEFFraction,
		NEATFraction:            c.Simulation.NEATFraction,
		FatLossRatio:            c.Simulation.FatLossRatio,
		LBMLossRatio:            c.Simulation.LBMLossRatio,
		KcalPerKg:               c.Simulation.KcalPerKg,
	}, nil
}

// PlanTargets returns the reporting targets from the config.
func (c *Config) PlanTargets() model.Targets {
	return model.Targets{
		WeightKg:   c.Targets.WeightKg,
		FatPctLow:  c.Targets.FatPctLow,
		FatPctHigh: c.Targets.FatPctHigh,
	}
}
