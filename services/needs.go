package services

import (
	"nutriplan/models"
	"nutriplan/utils"
)

const fallbackTargetCalories = 2000

// CalculatedNeedsFor reads the derived values stored on the profile. A
// profile without a target uses 2000 kcal for the meal and macro split.
func CalculatedNeedsFor(p *models.UserProfile) models.CalculatedNeeds {
	target := float64(fallbackTargetCalories)
	if positive(p.TargetCalories) {
		target = *p.TargetCalories
	}
	needs := models.CalculatedNeeds{
		BMR:            valueOr(p.BMR),
		TDEE:           valueOr(p.TDEE),
		TargetCalories: target,
		BMI:            valueOr(p.BMI),
		MealCalories:   utils.CalculateMealCalories(target, p.MealDistribution),
		Macros:         utils.CalculateMacroTargets(target, p.MacroRatio, p.ProteinTarget, p.CarbTarget, p.FatTarget),
	}
	if needs.BMI > 0 {
		needs.BMICategory = utils.BMICategory(needs.BMI)
	}
	return needs
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
