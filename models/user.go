package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string       `gorm:"uniqueIndex;not null" json:"email"`
	Username  string       `gorm:"size:50" json:"username,omitempty"`
	Profile   *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// StringList is a list column stored as a JSON array.
type StringList = datatypes.JSONSlice[string]

// UserProfile holds the physical data, goals and food constraints of a user,
// plus the derived metabolic values (BMR, TDEE, BMI, TargetCalories).
type UserProfile struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`

	Gender            Gender     `gorm:"size:20" json:"gender,omitempty"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	Height            *float64   `json:"height,omitempty"`
	Weight            *float64   `json:"weight,omitempty"`
	TargetWeight      *float64   `json:"targetWeight,omitempty"`
	BodyFatPercentage *float64   `json:"bodyFatPercentage,omitempty"`
	LeanMass          *float64   `json:"leanMass,omitempty"`
	MeasuredBMR       *float64   `gorm:"column:measured_bmr" json:"measuredBMR,omitempty"`
	MetabolicFactor   *float64   `json:"metabolicFactor,omitempty"`

	ActivityLevel    ActivityLevel    `gorm:"size:30" json:"activityLevel,omitempty"`
	TrainingGoal     TrainingGoal     `gorm:"size:30" json:"trainingGoal,omitempty"`
	Goal             Goal             `gorm:"size:30" json:"goal,omitempty"`
	WeightChangeRate WeightChangeRate `gorm:"size:20" json:"weightChangeRate,omitempty"`

	MealsPerDay         *int         `json:"mealsPerDay,omitempty"`
	SnacksPerDay        *int         `json:"snacksPerDay,omitempty"`
	AvailableEquipments StringList   `json:"availableEquipments"`
	CookingSkill        CookingSkill `gorm:"size:20" json:"cookingSkill,omitempty"`
	MaxPrepTimePerMeal  *int         `json:"maxPrepTimePerMeal,omitempty"`
	MaxPrepTimePerDay   *int         `json:"maxPrepTimePerDay,omitempty"`

	MacroRatio    MacroRatio `gorm:"size:20" json:"macroRatio,omitempty"`
	ProteinTarget *float64   `json:"proteinTarget,omitempty"`
	CarbTarget    *float64   `json:"carbTarget,omitempty"`
	FatTarget     *float64   `json:"fatTarget,omitempty"`
	FiberTarget   *float64   `json:"fiberTarget,omitempty"`

	ExcludedAliments  StringList `json:"excludedAliments"`
	Allergies         StringList `json:"allergies"`
	Intolerances      StringList `json:"intolerances"`
	LikedFoods        StringList `json:"likedFoods"`
	DislikedFoods     StringList `json:"dislikedFoods"`
	MedicalConditions StringList `json:"medicalConditions"`
	LikedMeals        StringList `json:"likedMeals"`
	DislikedMeals     StringList `json:"dislikedMeals"`

	BMR            *float64   `gorm:"column:bmr" json:"bmr,omitempty"`
	TDEE           *float64   `gorm:"column:tdee" json:"tdee,omitempty"`
	BMI            *float64   `gorm:"column:bmi" json:"bmi,omitempty"`
	TargetCalories *float64   `json:"targetCalories,omitempty"`
	LastCalculated *time.Time `json:"lastCalculated,omitempty"`

	MealDistribution *MealDistribution `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"mealDistribution,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// MealDistribution splits daily calories across meal types, in percent.
type MealDistribution struct {
	ID               string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProfileID        string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"profileId"`
	BreakfastPercent float64 `gorm:"not null" json:"breakfastPercent"`
	LunchPercent     float64 `gorm:"not null" json:"lunchPercent"`
	DinnerPercent    float64 `gorm:"not null" json:"dinnerPercent"`
	SnackPercent     float64 `gorm:"not null" json:"snackPercent"`
}

func (MealDistribution) TableName() string { return "meal_distributions" }

func DefaultMealDistribution() MealDistribution {
	return MealDistribution{BreakfastPercent: 25, LunchPercent: 35, DinnerPercent: 30, SnackPercent: 10}
}

type WeightHistory struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProfileID string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Notes     string    `json:"notes,omitempty"`
}

func (WeightHistory) TableName() string { return "weight_histories" }

type MealConsumption struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProfileID  string    `gorm:"type:varchar(36);index;not null" json:"-"`
	MealID     string    `gorm:"type:varchar(36);not null" json:"mealId"`
	MealType   MealType  `gorm:"size:20" json:"mealType,omitempty"`
	Rating     *int      `json:"rating,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	ConsumedAt time.Time `gorm:"index;not null" json:"consumedAt"`
}

func (MealConsumption) TableName() string { return "meal_consumptions" }
