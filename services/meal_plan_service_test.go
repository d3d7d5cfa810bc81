package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan/models"
)

func newTestPlanService(catalog *fakeCatalog, profiles fakeProfiles) *MealPlanService {
	s := NewMealPlanService(catalog, profiles)
	s.now = func() time.Time { return time.Date(2025, time.October, 30, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestGenerateMealPlanPicksClosestMeals(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives: &models.NutritionalObjectives{TargetCalories: 1800},
	})
	require.NoError(t, err)

	day := plan.DailyPlan
	assert.Equal(t, []string{"meal-a", "meal-b", "meal-c"}, plannedIDs(plan))
	assert.Equal(t, models.MealTypeBreakfast, day.Meals[0].MealType)
	assert.Equal(t, models.MealTypeLunch, day.Meals[1].MealType)
	assert.Equal(t, models.MealTypeDinner, day.Meals[2].MealType)
	assert.Equal(t, 30, day.Meals[0].Meal.TotalPreparationTime)

	assert.Equal(t, models.NutritionalSummary{
		TotalCalories:      1470,
		TotalProtein:       92,
		TotalCarbohydrates: 133,
		TotalLipids:        25,
	}, day.NutritionalSummary)
	assert.Equal(t, 50, day.TotalPreparationTime)
	assert.Equal(t, 2025, day.Date.Year())
}

func TestGenerateMealPlanMealTypesFollowMealsPerDay(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives:  &models.NutritionalObjectives{TargetCalories: 2000},
		Constraints: &models.DietaryConstraints{MealsPerDay: ptr(6)},
	})
	require.NoError(t, err)

	types := make([]models.MealType, 0, 4)
	for _, m := range plan.DailyPlan.Meals {
		types = append(types, m.MealType)
	}
	assert.Equal(t, []models.MealType{"breakfast", "lunch", "dinner", "snack"}, types, "only four candidates exist")
}

func TestGenerateMealPlanFromProfile(t *testing.T) {
	profiles := fakeProfiles{"u1": {
		UserID:         "u1",
		TargetCalories: ptr(2400.0),
		MealsPerDay:    ptr(4),
		DislikedFoods:  models.StringList{"Saumon"},
	}}
	catalog := &fakeCatalog{meals: testCatalog()}
	s := newTestPlanService(catalog, profiles)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"meal-a", "meal-c", "meal-d"}, plannedIDs(plan))
	require.Len(t, catalog.filters, 1)
	assert.Equal(t, []string{"Saumon"}, catalog.filters[0].ExcludedAliments)
}

func TestGenerateMealPlanExcludedAlimentRemovesMeal(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives:  &models.NutritionalObjectives{TargetCalories: 1800},
		Constraints: &models.DietaryConstraints{ExcludedAliments: []string{"Poulet"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"meal-b", "meal-c", "meal-d"}, plannedIDs(plan))
}

func TestGenerateMealPlanAppliesEquipment(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives:  &models.NutritionalObjectives{TargetCalories: 1800},
		Constraints: &models.DietaryConstraints{AvailableEquipments: []string{"eq-pan"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, plannedIDs(plan), "meal-b")
}

func TestGenerateMealPlanMaxPreparationTime(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	plan, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives:  &models.NutritionalObjectives{TargetCalories: 1800},
		Constraints: &models.DietaryConstraints{MaxPreparationTime: ptr(15)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"meal-b", "meal-c"}, plannedIDs(plan))
}

func TestGenerateMealPlanPreparationTimeUnsatisfiable(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	_, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives: &models.NutritionalObjectives{TargetCalories: 1800},
		Constraints: &models.DietaryConstraints{
			ExcludedAliments:   []string{"Poulet", "Saumon", "Riz basmati"},
			MaxPreparationTime: ptr(10),
		},
	})

	var genErr *MealPlanGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindPreparationTimeUnsatisfiable, genErr.Kind)
	assert.Equal(t, 422, genErr.StatusCode)
	assert.Equal(t, "no meal respects the requested maximum preparation time", genErr.Message)
	assert.Equal(t, 10, genErr.Details["maxPreparationTime"])
}

func TestGenerateMealPlanNoCandidates(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, nil)

	_, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives:  &models.NutritionalObjectives{TargetCalories: 1800},
		Constraints: &models.DietaryConstraints{ExcludedAliments: []string{"Poulet", "Brocolis", "Riz basmati"}},
	})

	var genErr *MealPlanGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindNoCandidateMeals, genErr.Kind)
	assert.Equal(t, 422, genErr.StatusCode)
	assert.Contains(t, genErr.Details, "constraints")
}

func TestGenerateMealPlanErrors(t *testing.T) {
	s := newTestPlanService(&fakeCatalog{meals: testCatalog()}, fakeProfiles{})

	_, err := s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{UserID: "ghost"})
	var genErr *MealPlanGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 404, genErr.StatusCode)

	_, err = s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{})
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindObjectivesUnresolved, genErr.Kind)

	storage := errors.New("connection reset")
	s = newTestPlanService(&fakeCatalog{err: storage}, nil)
	_, err = s.GenerateMealPlan(context.Background(), models.MealPlanGenerationParams{
		Objectives: &models.NutritionalObjectives{TargetCalories: 1800},
	})
	assert.ErrorIs(t, err, storage)
	assert.False(t, errors.As(err, &genErr))
}
