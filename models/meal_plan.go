package models

import "time"

type MacroObjectives struct {
	Protein       *float64 `json:"protein,omitempty" binding:"omitempty,min=0"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty" binding:"omitempty,min=0"`
	Lipids        *float64 `json:"lipids,omitempty" binding:"omitempty,min=0"`
}

type NutritionalObjectives struct {
	TargetCalories float64          `json:"targetCalories" binding:"required,min=1200,max=5000"`
	Macros         *MacroObjectives `json:"macros,omitempty"`
}

// DietaryConstraints narrow the candidate meals. Nil fields are unset.
type DietaryConstraints struct {
	ExcludedAliments    []string `json:"excludedAliments,omitempty"`
	AvailableEquipments []string `json:"availableEquipments,omitempty"`
	MealsPerDay         *int     `json:"mealsPerDay,omitempty" binding:"omitempty,min=1,max=6"`
	MaxPreparationTime  *int     `json:"maxPreparationTime,omitempty" binding:"omitempty,min=5,max=240"`
}

type MealPlanGenerationParams struct {
	UserID      string                 `json:"userId,omitempty"`
	Objectives  *NutritionalObjectives `json:"objectives,omitempty"`
	Constraints *DietaryConstraints    `json:"constraints,omitempty"`
}

type PlannedMealInfo struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	Calories             int    `json:"calories"`
	TotalPreparationTime int    `json:"totalPreparationTime"`
}

type PlannedMeal struct {
	Meal     PlannedMealInfo `json:"meal"`
	MealType MealType        `json:"mealType"`
}

type NutritionalSummary struct {
	TotalCalories      int     `json:"totalCalories"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalCarbohydrates float64 `json:"totalCarbohydrates"`
	TotalLipids        float64 `json:"totalLipids"`
}

type DailyMealPlan struct {
	Date                 time.Time          `json:"date"`
	Meals                []PlannedMeal      `json:"meals"`
	NutritionalSummary   NutritionalSummary `json:"nutritionalSummary"`
	TotalPreparationTime int                `json:"totalPreparationTime"`
}

type MealPlan struct {
	DailyPlan DailyMealPlan `json:"dailyPlan"`
}

// MealNutrition holds grams of each macro bucket for a whole meal.
type MealNutrition struct {
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Lipids        float64 `json:"lipids"`
	Fiber         float64 `json:"fiber,omitempty"`
}

// NutritionAnalysis compares the declared calories of a meal with the
// calories implied by its aliments.
type NutritionAnalysis struct {
	MealID          string        `json:"mealId"`
	Title           string        `json:"title"`
	Calories        int           `json:"calories"`
	AlimentCalories float64       `json:"alimentCalories"`
	Nutrition       MealNutrition `json:"nutrition"`
}

// ScoredMeal is a suggestion candidate.
type ScoredMeal struct {
	Meal
	PreparationTime int           `json:"preparationTime"`
	Nutrition       MealNutrition `json:"nutrition"`
	RelevanceScore  float64       `json:"relevanceScore"`
}
