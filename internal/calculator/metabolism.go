package calculator

import (
	"errors"

	"github.com/cyberust/DietSimulation/internal/model"
)

// Katch-McArdle coefficients (kcal/day per kg of lean body mass).
const (
	bmrBaseKcal  = 370.0
	bmrPerKgLean = 21.6
)

// BMR computes the basal metabolic rate from lean body mass using the
// Katch-McArdle formula.
func BMR(leanMassKg float64) float64 {
	return bmrBaseKcal + bmrPerKgLean*leanMassKg
}

// TEF computes the thermic effect of food for a day's intake.
func TEF(intakeKcal, tefFraction float64) float64 {
	return intakeKcal * tefFraction
}

// NEAT computes non-exercise activity thermogenesis as a fraction of BMR.
func NEAT(bmrKcal, neatFraction float64) float64 {
	return bmrKcal * neatFraction
}

// TDEE sums all expenditure components into the total daily energy expenditure.
func TDEE(bmrKcal, exerciseKcal, tefKcal, neatKcal float64) float64 {
	return bmrKcal + exerciseKcal + tefKcal + neatKcal
}

// WeeklyExerciseAverage converts recurring weekly sessions into an average
// daily expenditure: sum of kcal x days over all sessions, divided by 7.
func WeeklyExerciseAverage(sessions []model.ExerciseSession) (float64, error) {
	total := 0.0
	for _, s := range sessions {
		if s.DaysPerWeek < 0 || s.DaysPerWeek > 7 {
			return 0, errors.New("days per week must be between 0 and 7")
		}
		if s.Kcal < 0 {
			return 0, errors.New("session kcal must not be negative")
		}
		total += s.Kcal * float64(s.DaysPerWeek)
	}
	return total / 7.0, nil
}
