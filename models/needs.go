package models

// MetabolicNeeds is the calculator output. A nil field could not be computed
// from the available profile data.
type MetabolicNeeds struct {
	Age            *int     `json:"age,omitempty"`
	BMR            *float64 `json:"bmr"`
	TDEE           *float64 `json:"tdee"`
	TargetCalories *float64 `json:"targetCalories"`
	BMI            *float64 `json:"bmi"`
}

// MealCalories are integer kcal per meal type.
type MealCalories struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Snack     int `json:"snack"`
}

// For returns the slice for a meal type, false for an unknown type.
func (m MealCalories) For(t MealType) (int, bool) {
	switch t {
	case MealTypeBreakfast:
		return m.Breakfast, true
	case MealTypeLunch:
		return m.Lunch, true
	case MealTypeDinner:
		return m.Dinner, true
	case MealTypeSnack:
		return m.Snack, true
	}
	return 0, false
}

// MacroTargets are daily grams.
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

type CalculatedNeeds struct {
	BMR            float64      `json:"bmr"`
	TDEE           float64      `json:"tdee"`
	TargetCalories float64      `json:"targetCalories"`
	BMI            float64      `json:"bmi"`
	BMICategory    string       `json:"bmiCategory,omitempty"`
	MealCalories   MealCalories `json:"mealCalories"`
	Macros         MacroTargets `json:"macros"`
}
