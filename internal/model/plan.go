package model

import "time"

// Plan holds all simulation inputs. It is built once from config and never mutated.
type Plan struct {
	StartDate time.Time
	EndDate   time.Time

	InitialWeightKg    float64
	InitialFatFraction float64 // 0 ~ 1

	DailyCalorieIntake      float64
	ExerciseExpenditureKcal float64 // weighted weekly average, kcal/day

	TEFFraction  float64
	NEATFraction float64

	// Fractions of each day's mass change attributed to fat vs lean mass.
	// FatLossRatio + LBMLossRatio must equal 1.
	FatLossRatio float64
	LBMLossRatio float64

	// Energy density converting a caloric deficit to mass loss, kcal per kg.
	KcalPerKg float64
}

// InitialState derives the starting body composition from the plan.
func (p *Plan) InitialState() BodyState {
	fat := p.InitialWeightKg * p.InitialFatFraction
	return BodyState{
		WeightKg:   p.InitialWeightKg,
		FatMassKg:  fat,
		LeanMassKg: p.InitialWeightKg - fat,
	}
}

// Days returns the number of calendar days the plan spans, endpoints inclusive.
func (p *Plan) Days() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// ExerciseSession describes one recurring weekly workout type.
type ExerciseSession struct {
	Kcal        float64 // kcal burned per session
	DaysPerWeek int
}

// Targets are reference values consumed by reporting only; the engine never reads them.
type Targets struct {
	WeightKg   float64
	FatPctLow  float64
	FatPctHigh float64
}
