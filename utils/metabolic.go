package utils

import (
	"math"
	"time"

	"nutriplan/models"
)

const minTargetCalories = 1200

// NeedsInput is the subset of a profile the calculator reads.
type NeedsInput struct {
	Gender            models.Gender
	BirthDate         *time.Time
	Weight            *float64
	Height            *float64
	ActivityLevel     models.ActivityLevel
	Goal              models.Goal
	WeightChangeRate  models.WeightChangeRate
	LeanMass          *float64
	BodyFatPercentage *float64
	MeasuredBMR       *float64
	MetabolicFactor   *float64
}

func NeedsInputFromProfile(p *models.UserProfile) NeedsInput {
	return NeedsInput{
		Gender:            p.Gender,
		BirthDate:         p.BirthDate,
		Weight:            p.Weight,
		Height:            p.Height,
		ActivityLevel:     p.ActivityLevel,
		Goal:              p.Goal,
		WeightChangeRate:  p.WeightChangeRate,
		LeanMass:          p.LeanMass,
		BodyFatPercentage: p.BodyFatPercentage,
		MeasuredBMR:       p.MeasuredBMR,
		MetabolicFactor:   p.MetabolicFactor,
	}
}

func activityMultiplier(level models.ActivityLevel) (float64, bool) {
	switch level {
	case models.ActivitySedentary:
		return 1.2, true
	case models.ActivityLightlyActive:
		return 1.375, true
	case models.ActivityModeratelyActive:
		return 1.55, true
	case models.ActivityVeryActive:
		return 1.725, true
	case models.ActivityExtraActive:
		return 1.9, true
	}
	return 0, false
}

// goalAdjustment is the signed kcal delta applied to TDEE.
func goalAdjustment(goal models.Goal) float64 {
	switch goal {
	case models.GoalLoseWeight:
		return -500
	case models.GoalGainWeight, models.GoalBuildMuscle, models.GoalPregnancy:
		return 300
	case models.GoalRecomposition:
		return -250
	case models.GoalPerformance:
		return 200
	case models.GoalLactation:
		return 500
	}
	return 0
}

func rateAdjustment(rate models.WeightChangeRate) (float64, bool) {
	switch rate {
	case models.RateConservative:
		return 250, true
	case models.RateModerate:
		return 500, true
	case models.RateAggressive:
		return 750, true
	}
	return 0, false
}

type macroSplit struct{ protein, carbs, fat float64 }

func macroPreset(ratio models.MacroRatio) macroSplit {
	switch ratio {
	case models.RatioHighProtein:
		return macroSplit{35, 35, 30}
	case models.RatioLowCarb:
		return macroSplit{30, 10, 60}
	case models.RatioModerateCarb:
		return macroSplit{30, 30, 40}
	case models.RatioHighCarb:
		return macroSplit{25, 55, 20}
	case models.RatioLowFat:
		return macroSplit{40, 50, 10}
	case models.RatioHighFat:
		return macroSplit{25, 30, 45}
	case models.RatioKeto:
		return macroSplit{20, 10, 70}
	}
	// BALANCED, MODERATE_FAT and anything unknown
	return macroSplit{30, 40, 30}
}

// CalculateAge returns whole years elapsed since birthDate, one less when the
// birthday has not yet occurred this year.
func CalculateAge(birthDate *time.Time) (int, bool) {
	return ageAt(birthDate, time.Now())
}

func ageAt(birthDate *time.Time, now time.Time) (int, bool) {
	if birthDate == nil || birthDate.IsZero() {
		return 0, false
	}
	b := *birthDate
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age, true
}

// CalculateBMR uses Mifflin-St Jeor. Genders other than MALE/FEMALE get the
// midpoint offset.
func CalculateBMR(gender models.Gender, weightKg, heightCm float64, age int) (float64, bool) {
	if gender == "" || weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0, false
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case models.GenderMale:
		return base + 5, true
	case models.GenderFemale:
		return base - 161, true
	default:
		return base - 78, true
	}
}

func CalculateBMRKatchMcArdle(leanMassKg float64) (float64, bool) {
	if leanMassKg <= 0 {
		return 0, false
	}
	return 370 + 21.6*leanMassKg, true
}

func CalculateTDEE(bmr float64, level models.ActivityLevel) (float64, bool) {
	m, ok := activityMultiplier(level)
	if bmr <= 0 || !ok {
		return 0, false
	}
	return bmr * m, true
}

// CalculateTargetCalories applies the goal delta, then the rate delta for
// LOSE_WEIGHT (relative to 500) and GAIN_WEIGHT (relative to 300). The result
// never drops below 1200.
func CalculateTargetCalories(tdee float64, goal models.Goal, rate models.WeightChangeRate) (float64, bool) {
	if tdee <= 0 || goal == "" {
		return 0, false
	}
	target := tdee + goalAdjustment(goal)
	if r, ok := rateAdjustment(rate); ok {
		switch goal {
		case models.GoalLoseWeight:
			target -= r - 500
		case models.GoalGainWeight:
			target += r - 300
		}
	}
	return math.Max(target, minTargetCalories), true
}

// CalculateAllNeeds derives every metabolic value it can. BMR priority is
// measured, then Katch-McArdle from lean mass, then Mifflin-St Jeor; the
// metabolic factor multiplies whichever was used.
func CalculateAllNeeds(in NeedsInput) models.MetabolicNeeds {
	return allNeedsAt(in, time.Now())
}

func allNeedsAt(in NeedsInput, now time.Time) models.MetabolicNeeds {
	var out models.MetabolicNeeds

	age, hasAge := ageAt(in.BirthDate, now)
	if hasAge {
		out.Age = &age
	}

	if bmi, ok := bmiFrom(in.Weight, in.Height); ok {
		out.BMI = &bmi
	}

	var bmr float64
	if positive(in.MeasuredBMR) {
		bmr = *in.MeasuredBMR
	}
	if bmr == 0 {
		if lean, ok := leanMass(in); ok {
			bmr, _ = CalculateBMRKatchMcArdle(lean)
		}
	}
	if bmr == 0 && hasAge && positive(in.Weight) && positive(in.Height) {
		bmr, _ = CalculateBMR(in.Gender, *in.Weight, *in.Height, age)
	}
	if bmr > 0 && positive(in.MetabolicFactor) {
		bmr *= *in.MetabolicFactor
	}
	if bmr <= 0 {
		return out
	}
	out.BMR = &bmr

	if tdee, ok := CalculateTDEE(bmr, in.ActivityLevel); ok {
		out.TDEE = &tdee
		if target, ok := CalculateTargetCalories(tdee, in.Goal, in.WeightChangeRate); ok {
			out.TargetCalories = &target
		}
	}
	return out
}

// leanMass prefers the stored value and falls back to weight and body fat.
func leanMass(in NeedsInput) (float64, bool) {
	if positive(in.LeanMass) {
		return *in.LeanMass, true
	}
	if positive(in.Weight) && positive(in.BodyFatPercentage) && *in.BodyFatPercentage < 100 {
		return *in.Weight * (1 - *in.BodyFatPercentage/100), true
	}
	return 0, false
}

// CalculateMealCalories splits the daily target using the distribution
// (25/35/30/10 when nil). Percentages are not normalised.
func CalculateMealCalories(targetCalories float64, d *models.MealDistribution) models.MealCalories {
	dist := models.DefaultMealDistribution()
	if d != nil {
		dist = *d
	}
	part := func(pct float64) int { return int(math.Round(targetCalories * pct / 100)) }
	return models.MealCalories{
		Breakfast: part(dist.BreakfastPercent),
		Lunch:     part(dist.LunchPercent),
		Dinner:    part(dist.DinnerPercent),
		Snack:     part(dist.SnackPercent),
	}
}

// CalculateMacroTargets returns daily grams. When all three explicit targets
// are set they win: values all <= 100 are percentages, otherwise grams.
// Otherwise the ratio preset applies (BALANCED by default).
func CalculateMacroTargets(targetCalories float64, ratio models.MacroRatio, protein, carbs, fat *float64) models.MacroTargets {
	if positive(protein) && positive(carbs) && positive(fat) {
		p, c, f := *protein, *carbs, *fat
		if p <= 100 && c <= 100 && f <= 100 {
			return gramsFromPercent(targetCalories, macroSplit{p, c, f})
		}
		return models.MacroTargets{
			Protein: int(math.Round(p)),
			Carbs:   int(math.Round(c)),
			Fat:     int(math.Round(f)),
		}
	}
	return gramsFromPercent(targetCalories, macroPreset(ratio))
}

// 4 kcal/g for protein and carbohydrates, 9 kcal/g for fat.
func gramsFromPercent(kcal float64, s macroSplit) models.MacroTargets {
	return models.MacroTargets{
		Protein: int(math.Round(kcal * s.protein / 100 / 4)),
		Carbs:   int(math.Round(kcal * s.carbs / 100 / 4)),
		Fat:     int(math.Round(kcal * s.fat / 100 / 9)),
	}
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
