package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
)

var planMealTypes = [...]models.MealType{
	models.MealTypeBreakfast,
	models.MealTypeLunch,
	models.MealTypeDinner,
	models.MealTypeSnack,
	models.MealTypeSnack,
	models.MealTypeSnack,
}

type MealPlanService struct {
	meals    MealFinder
	profiles ProfileFinder
	now      func() time.Time
}

func NewMealPlanService(meals MealFinder, profiles ProfileFinder) *MealPlanService {
	return &MealPlanService{meals: meals, profiles: profiles, now: time.Now}
}

// GenerateMealPlan builds a one-day plan. Candidates come from the catalog
// filtered by excluded aliments and available equipment, then by maximum
// preparation time; both filters fail with 422 when nothing is left. The
// meals closest to the per-meal calorie target are picked in order.
func (s *MealPlanService) GenerateMealPlan(ctx context.Context, params models.MealPlanGenerationParams) (*models.MealPlan, error) {
	profile, err := resolveProfile(ctx, s.profiles, params.UserID)
	if err != nil {
		return nil, err
	}

	objectives, err := ResolveObjectives(profile, params.Objectives)
	if err != nil {
		return nil, err
	}
	constraints := ResolveConstraints(profile, params.Constraints)

	meals, err := s.meals.FindMeals(ctx, repository.MealFilter{
		ExcludedAliments:    constraints.ExcludedAliments,
		AvailableEquipments: constraints.AvailableEquipments,
	})
	if err != nil {
		return nil, fmt.Errorf("load candidate meals: %w", err)
	}
	if len(meals) == 0 {
		return nil, errNoCandidateMeals(constraints)
	}

	candidates := annotate(meals)
	if maxPrep := constraints.MaxPreparationTime; maxPrep != nil {
		candidates = withinPrepTime(candidates, *maxPrep)
		if len(candidates) == 0 {
			return nil, errPreparationTime(*maxPrep)
		}
	}

	mealsPerDay := *constraints.MealsPerDay
	if mealsPerDay < 1 {
		mealsPerDay = defaultMealsPerDay
	}
	perMeal := math.Round(objectives.TargetCalories / float64(mealsPerDay))
	sortByCalorieDistance(candidates, perMeal)

	n := min(mealsPerDay, len(candidates), len(planMealTypes))
	return &models.MealPlan{DailyPlan: s.dailyPlan(candidates[:n])}, nil
}

func (s *MealPlanService) dailyPlan(selected []candidate) models.DailyMealPlan {
	plan := models.DailyMealPlan{
		Date:  s.now(),
		Meals: make([]models.PlannedMeal, len(selected)),
	}
	for i, c := range selected {
		plan.Meals[i] = models.PlannedMeal{
			Meal: models.PlannedMealInfo{
				ID:                   c.meal.ID,
				Title:                c.meal.Title,
				Description:          c.meal.Description,
				Calories:             c.meal.Calories,
				TotalPreparationTime: c.prepTime,
			},
			MealType: planMealTypes[i],
		}
		plan.NutritionalSummary.TotalCalories += c.meal.Calories
		plan.NutritionalSummary.TotalProtein += c.nutrition.Protein
		plan.NutritionalSummary.TotalCarbohydrates += c.nutrition.Carbohydrates
		plan.NutritionalSummary.TotalLipids += c.nutrition.Lipids
		plan.TotalPreparationTime += c.prepTime
	}
	return plan
}
