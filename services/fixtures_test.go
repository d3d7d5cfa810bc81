package services

import (
	"context"
	"slices"

	"nutriplan/models"
	"nutriplan/repository"
)

var (
	macroProtein = &models.Macro{ID: "mac-p", Name: "Protéines"}
	macroCarbs   = &models.Macro{ID: "mac-c", Name: "Glucides"}
	macroFat     = &models.Macro{ID: "mac-f", Name: "Lipides"}
	macroFiber   = &models.Macro{ID: "mac-fi", Name: "Fibres"}

	chicken  = aliment("al-chicken", "Poulet", 165, per100(macroProtein, 31), per100(macroFat, 3.6))
	rice     = aliment("al-rice", "Riz basmati", 130, per100(macroCarbs, 28), per100(macroProtein, 2.7), per100(macroFiber, 0.4))
	salmon   = aliment("al-salmon", "Saumon", 208, per100(macroProtein, 20), per100(macroFat, 13))
	broccoli = aliment("al-broccoli", "Brocolis", 34, per100(macroCarbs, 7), per100(macroFiber, 2.6), per100(macroProtein, 2.8))
)

func per100(m *models.Macro, grams float64) models.AlimentMacro {
	return models.AlimentMacro{MacroID: m.ID, Quantity: grams, Macro: m}
}

func aliment(id, name string, kcal int, macros ...models.AlimentMacro) *models.Aliment {
	return &models.Aliment{ID: id, Name: name, Cal100g: kcal, Macros: macros}
}

func portion(a *models.Aliment, grams float64) models.MealAliment {
	return models.MealAliment{AlimentID: a.ID, Quantity: grams, Aliment: a}
}

func meal(id, title string, kcal int, steps []int, equipment []string, aliments ...models.MealAliment) models.Meal {
	m := models.Meal{ID: id, Title: title, Calories: kcal, Aliments: aliments}
	for i, minutes := range steps {
		m.Preparations = append(m.Preparations, models.MealPreparation{
			MealID:      id,
			Order:       i + 1,
			Preparation: &models.Preparation{Step: i + 1, EstimatedTime: minutes},
		})
	}
	for _, eq := range equipment {
		m.Equipments = append(m.Equipments, models.MealEquipment{MealID: id, EquipmentID: eq})
	}
	return m
}

// testCatalog: 600/30min, 520/15min, 350/5min, 150/45min.
func testCatalog() []models.Meal {
	return []models.Meal{
		meal("meal-a", "Poulet au riz", 600, []int{10, 20}, []string{"eq-pan"}, portion(chicken, 150), portion(rice, 200)),
		meal("meal-b", "Saumon et brocolis", 520, []int{15}, []string{"eq-oven"}, portion(salmon, 150), portion(broccoli, 100)),
		meal("meal-c", "Bol de riz", 350, []int{5}, nil, portion(rice, 250)),
		meal("meal-d", "Brocolis vapeur", 150, []int{45}, nil, portion(broccoli, 300)),
	}
}

type fakeCatalog struct {
	meals   []models.Meal
	err     error
	filters []repository.MealFilter
}

func (f *fakeCatalog) FindMeals(_ context.Context, filter repository.MealFilter) ([]models.Meal, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Meal
	for _, m := range f.meals {
		if containsExcluded(m, filter.ExcludedAliments) || !equipped(m, filter.AvailableEquipments) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func containsExcluded(m models.Meal, names []string) bool {
	for _, a := range m.Aliments {
		if a.Aliment != nil && slices.Contains(names, a.Aliment.Name) {
			return true
		}
	}
	return false
}

func equipped(m models.Meal, available []string) bool {
	if len(available) == 0 {
		return true
	}
	for _, e := range m.Equipments {
		if !slices.Contains(available, e.EquipmentID) {
			return false
		}
	}
	return true
}

type fakeProfiles map[string]*models.UserProfile

func (f fakeProfiles) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	p, ok := f[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return p, nil
}

func ptr[T any](v T) *T { return &v }

func mealIDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func plannedIDs(p *models.MealPlan) []string {
	return mealIDs(p.DailyPlan.Meals, func(m models.PlannedMeal) string { return m.Meal.ID })
}

func suggestedIDs(s []models.ScoredMeal) []string {
	return mealIDs(s, func(m models.ScoredMeal) string { return m.ID })
}

func reverseShuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func keepOrder(int, func(i, j int)) {}
