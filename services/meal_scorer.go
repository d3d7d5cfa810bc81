package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"nutriplan/models"
)

const neutralScore = 50.0

type macroBucket int

const (
	bucketNone macroBucket = iota
	bucketProtein
	bucketCarbohydrates
	bucketLipids
	bucketFiber
)

// classifyMacro maps a macro display name to its bucket by case-insensitive
// substring (French and English names).
func classifyMacro(name string) macroBucket {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "protéine"), strings.Contains(n, "proteine"), strings.Contains(n, "protein"):
		return bucketProtein
	case strings.Contains(n, "glucide"), strings.Contains(n, "carb"):
		return bucketCarbohydrates
	case strings.Contains(n, "lipide"), strings.Contains(n, "fat"):
		return bucketLipids
	case strings.Contains(n, "fibre"), strings.Contains(n, "fiber"):
		return bucketFiber
	}
	return bucketNone
}

var errIncompleteMeal = errors.New("meal links are not loaded")

type nutritionTotals struct {
	protein, carbohydrates, lipids, fiber float64
	calories                              float64
}

// sumNutrition scales per-100g values by quantity/100. Links without their
// aliment or macro loaded are skipped and reported through the error.
func sumNutrition(meal *models.Meal) (nutritionTotals, error) {
	var t nutritionTotals
	var err error
	for _, ma := range meal.Aliments {
		if ma.Aliment == nil {
			err = errIncompleteMeal
			continue
		}
		portion := ma.Quantity / 100
		t.calories += float64(ma.Aliment.Cal100g) * portion
		for _, am := range ma.Aliment.Macros {
			if am.Macro == nil {
				err = errIncompleteMeal
				continue
			}
			q := am.Quantity * portion
			switch classifyMacro(am.Macro.Name) {
			case bucketProtein:
				t.protein += q
			case bucketCarbohydrates:
				t.carbohydrates += q
			case bucketLipids:
				t.lipids += q
			case bucketFiber:
				t.fiber += q
			}
		}
	}
	return t, err
}

// CalculateMealNutrition returns whole grams of protein, carbohydrates and
// lipids for the whole meal.
func CalculateMealNutrition(meal *models.Meal) models.MealNutrition {
	t, _ := sumNutrition(meal)
	return models.MealNutrition{
		Protein:       math.Round(t.protein),
		Carbohydrates: math.Round(t.carbohydrates),
		Lipids:        math.Round(t.lipids),
	}
}

// AnalyzeMealNutrition includes fiber and aliment-derived calories, rounded
// to one decimal.
func AnalyzeMealNutrition(meal *models.Meal) models.NutritionAnalysis {
	t, _ := sumNutrition(meal)
	return models.NutritionAnalysis{
		MealID:          meal.ID,
		Title:           meal.Title,
		Calories:        meal.Calories,
		AlimentCalories: round1(t.calories),
		Nutrition: models.MealNutrition{
			Protein:       round1(t.protein),
			Carbohydrates: round1(t.carbohydrates),
			Lipids:        round1(t.lipids),
			Fiber:         round1(t.fiber),
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// scoringInput is everything the relevance score reads. Zero values disable
// the corresponding term.
type scoringInput struct {
	targetCalories float64
	maxPrepTime    int
	preferred      macroBucket
	liked          map[string]struct{}
	disliked       map[string]struct{}
}

// CalculateRelevanceScore ranks a meal for a user. It never fails: a meal
// that cannot be scored gets a neutral 50.
func CalculateRelevanceScore(meal *models.Meal, profile *models.UserProfile, needs *models.CalculatedNeeds, mealType models.MealType) float64 {
	return scoreMeal(meal, profileScoringInput(profile, needs, mealType))
}

func profileScoringInput(profile *models.UserProfile, needs *models.CalculatedNeeds, mealType models.MealType) scoringInput {
	in := scoringInput{targetCalories: mealTarget(profile, needs, mealType)}
	if profile == nil {
		return in
	}
	if profile.MaxPrepTimePerMeal != nil {
		in.maxPrepTime = *profile.MaxPrepTimePerMeal
	}
	in.preferred = preferredMacro(profile.Goal, profile.TrainingGoal)
	in.liked = toSet(profile.LikedMeals)
	in.disliked = toSet(profile.DislikedMeals)
	return in
}

// mealTarget is the calorie slice for the meal type, or the daily target
// divided by meals per day when the type is unknown.
func mealTarget(profile *models.UserProfile, needs *models.CalculatedNeeds, mealType models.MealType) float64 {
	if needs == nil {
		return 0
	}
	if slice, ok := needs.MealCalories.For(mealType); ok {
		return float64(slice)
	}
	perDay := defaultMealsPerDay
	if profile != nil && profile.MealsPerDay != nil && *profile.MealsPerDay > 0 {
		perDay = *profile.MealsPerDay
	}
	return needs.TargetCalories / float64(perDay)
}

func preferredMacro(goal models.Goal, training models.TrainingGoal) macroBucket {
	if goal == models.GoalBuildMuscle {
		return bucketProtein
	}
	switch training {
	case models.TrainingStrengthGain, models.TrainingMuscleGain, models.TrainingFatLoss:
		return bucketProtein
	case models.TrainingEndurance:
		return bucketCarbohydrates
	}
	return bucketNone
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func scoreMeal(meal *models.Meal, in scoringInput) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scoring meal %s failed: %v", mealID(meal), r)
			score = neutralScore
		}
	}()

	score, err := relevance(meal, in)
	if err != nil {
		log.Printf("scoring meal %s failed: %v", mealID(meal), err)
		return neutralScore
	}
	return score
}

func relevance(meal *models.Meal, in scoringInput) (float64, error) {
	if meal == nil {
		return 0, errors.New("nil meal")
	}
	score := 100.0

	if in.targetCalories > 0 {
		diff := math.Abs(float64(meal.Calories)-in.targetCalories) / in.targetCalories
		switch {
		case diff <= 0.05:
			score += 20
		case diff <= 0.10:
			score += 10
		case diff > 0.15:
			score -= 30
		}
	}

	if in.maxPrepTime > 0 {
		if meal.TotalPreparationTime() <= in.maxPrepTime {
			score += 10
		} else {
			score -= 20
		}
	}

	if in.preferred != bucketNone {
		t, err := sumNutrition(meal)
		if err != nil {
			return 0, fmt.Errorf("nutrition: %w", err)
		}
		switch in.preferred {
		case bucketProtein:
			score += 0.1 * math.Round(t.protein)
		case bucketCarbohydrates:
			score += 0.1 * math.Round(t.carbohydrates)
		case bucketLipids:
			score += 0.1 * math.Round(t.lipids)
		}
	}

	if _, ok := in.liked[meal.ID]; ok {
		score += 15
	}
	if _, ok := in.disliked[meal.ID]; ok {
		score -= 50
	}
	return score, nil
}

func mealID(meal *models.Meal) string {
	if meal == nil {
		return "<nil>"
	}
	return meal.ID
}
