package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/cyberust/DietSimulation/internal/model"
)

// FormatSummary renders the final-day projection report for the console.
func FormatSummary(plan *model.Plan, records []model.DailyRecord, targets model.Targets) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Projection %s → %s (%d days)\n",
		plan.StartDate.Format("2006-01-02"), plan.EndDate.Format("2006-01-02"), len(records)))
	b.WriteString(fmt.Sprintf("Intake %.0f kcal/day | exercise %.1f kcal/day avg\n\n",
		plan.DailyCalorieIntake, plan.ExerciseExpenditureKcal))

	if len(records) == 0 {
		b.WriteString("no records produced\n")
		return b.String()
	}
	last := records[len(records)-1]

	b.WriteString(fmt.Sprintf("Final weight:  %.2f kg\n", last.WeightKg))
	b.WriteString(fmt.Sprintf("Final fat:     %.2f %%\n", last.FatPercentage))
	b.WriteString(fmt.Sprintf("Final BMR:     %.0f kcal/day\n", math.Round(last.BasalMetabolismKcal)))

	if targets.WeightKg > 0 {
		delta := last.WeightKg - targets.WeightKg
		if delta <= 0 {
			b.WriteString(fmt.Sprintf("\nTarget weight %.1f kg reached (%.2f kg under)\n",
				targets.WeightKg, -delta))
		} else {
			b.WriteString(fmt.Sprintf("\nTarget weight %.1f kg missed by %.2f kg\n",
				targets.WeightKg, delta))
		}
	}
	if targets.FatPctLow > 0 || targets.FatPctHigh > 0 {
		b.WriteString(fmt.Sprintf("Target fat band: %.1f ~ %.1f %%\n",
			targets.FatPctLow, targets.FatPctHigh))
	}

	return b.String()
}
