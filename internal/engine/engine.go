package engine

import (
	"time"

	"github.com/cyberust/DietSimulation/internal/calculator"
	"github.com/cyberust/DietSimulation/internal/model"
)

// Step applies one day of the energy-balance recurrence and returns the
// day's record plus the state to carry into the next day.
//
// The emitted BMR is computed from lean mass at the start of the day;
// weight and fat percentage reflect the state after the day's change.
func Step(plan *model.Plan, state model.BodyState, date time.Time) (model.DailyRecord, model.BodyState) {
	bmr := calculator.BMR(state.LeanMassKg)
	tef := calculator.TEF(plan.DailyCalorieIntake, plan.TEFFraction)
	neat := calculator.NEAT(bmr, plan.NEATFraction)
	tdee := calculator.TDEE(bmr, plan.ExerciseExpenditureKcal, tef, neat)

	// Unclamped: a surplus (negative deficit) produces mass gain,
	// partitioned by the same fat/lean ratios.
	deficit := tdee - plan.DailyCalorieIntake
	massLossKg := deficit / plan.KcalPerKg

	state.WeightKg -= massLossKg
	state.FatMassKg -= massLossKg * plan.FatLossRatio
	state.LeanMassKg -= massLossKg * plan.LBMLossRatio

	fatPct := 0.0
	if state.WeightKg > 0 {
		fatPct = state.FatMassKg / state.WeightKg * 100
	}

	rec := model.DailyRecord{
		Date:                date,
		WeightKg:            state.WeightKg,
		FatPercentage:       fatPct,
		BasalMetabolismKcal: bmr,
	}
	return rec, state
}

// Run folds Step over every calendar day from StartDate to EndDate inclusive
// and returns the records in ascending date order.
func Run(plan *model.Plan) []model.DailyRecord {
	records := make([]model.DailyRecord, 0, plan.Days())
	state := plan.InitialState()
	for d := plan.StartDate; !d.After(plan.EndDate); d = d.AddDate(0, 0, 1) {
		var rec model.DailyRecord
		rec, state = Step(plan, state, d)
		records = append(records, rec)
	}
	return records
}
