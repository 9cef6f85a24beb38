package model

import "time"

// BodyState is the body composition carried across simulated days.
type BodyState struct {
	WeightKg   float64
	FatMassKg  float64
	LeanMassKg float64
}

// DailyRecord is a single day's snapshot emitted by the engine.
type DailyRecord struct {
	Date                time.Time
	WeightKg            float64
	FatPercentage       float64 // 0 ~ 100
	BasalMetabolismKcal float64
}
