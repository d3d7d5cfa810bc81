package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

const mealHistoryLimit = 100

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	DeleteProfile(ctx context.Context, userID string) error
	AddWeight(ctx context.Context, w *models.WeightHistory) error
	WeightHistory(ctx context.Context, profileID string, since *time.Time) ([]models.WeightHistory, error)
	AddMealConsumption(ctx context.Context, m *models.MealConsumption) error
	MealHistory(ctx context.Context, profileID string, limit int) ([]models.MealConsumption, error)
}

type MealGetter interface {
	GetByID(ctx context.Context, id string) (*models.Meal, error)
}

type UserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"omitempty,max=50"`
}

type MealDistributionInput struct {
	Breakfast *float64 `json:"breakfastPercent" binding:"omitempty,min=0,max=100"`
	Lunch     *float64 `json:"lunchPercent" binding:"omitempty,min=0,max=100"`
	Dinner    *float64 `json:"dinnerPercent" binding:"omitempty,min=0,max=100"`
	Snack     *float64 `json:"snackPercent" binding:"omitempty,min=0,max=100"`
}

// ProfileInput is a partial profile: nil fields are left untouched.
// BirthDate is YYYY-MM-DD.
type ProfileInput struct {
	Gender            *models.Gender `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER PREFER_NOT_TO_SAY"`
	BirthDate         *string        `json:"birthDate"`
	Height            *float64       `json:"height" binding:"omitempty,gt=0,max=300"`
	Weight            *float64       `json:"weight" binding:"omitempty,gt=0,max=500"`
	TargetWeight      *float64       `json:"targetWeight" binding:"omitempty,gt=0,max=500"`
	BodyFatPercentage *float64       `json:"bodyFatPercentage" binding:"omitempty,min=0,max=100"`
	LeanMass          *float64       `json:"leanMass" binding:"omitempty,gt=0"`
	MeasuredBMR       *float64       `json:"measuredBMR" binding:"omitempty,gt=0"`
	MetabolicFactor   *float64       `json:"metabolicFactor" binding:"omitempty,gt=0,max=3"`

	ActivityLevel    *models.ActivityLevel    `json:"activityLevel" binding:"omitempty,oneof=SEDENTARY LIGHTLY_ACTIVE MODERATELY_ACTIVE VERY_ACTIVE EXTRA_ACTIVE"`
	TrainingGoal     *models.TrainingGoal     `json:"trainingGoal" binding:"omitempty,oneof=ENDURANCE STRENGTH_GAIN MUSCLE_GAIN FAT_LOSS FLEXIBILITY GENERAL_FITNESS"`
	Goal             *models.Goal             `json:"goal" binding:"omitempty,oneof=LOSE_WEIGHT MAINTAIN_WEIGHT GAIN_WEIGHT BUILD_MUSCLE RECOMPOSITION IMPROVE_HEALTH PERFORMANCE PREGNANCY LACTATION"`
	WeightChangeRate *models.WeightChangeRate `json:"weightChangeRate" binding:"omitempty,oneof=CONSERVATIVE MODERATE AGGRESSIVE"`

	MealsPerDay         *int                 `json:"mealsPerDay" binding:"omitempty,min=1,max=6"`
	SnacksPerDay        *int                 `json:"snacksPerDay" binding:"omitempty,min=0,max=5"`
	AvailableEquipments *[]string            `json:"availableEquipments"`
	CookingSkill        *models.CookingSkill `json:"cookingSkill" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL"`
	MaxPrepTimePerMeal  *int                 `json:"maxPrepTimePerMeal" binding:"omitempty,min=0"`
	MaxPrepTimePerDay   *int                 `json:"maxPrepTimePerDay" binding:"omitempty,min=0"`

	MacroRatio    *models.MacroRatio `json:"macroRatio" binding:"omitempty,oneof=HIGH_PROTEIN BALANCED LOW_CARB MODERATE_CARB HIGH_CARB LOW_FAT MODERATE_FAT HIGH_FAT KETO_RATIO"`
	ProteinTarget *float64           `json:"proteinTarget" binding:"omitempty,min=0"`
	CarbTarget    *float64           `json:"carbTarget" binding:"omitempty,min=0"`
	FatTarget     *float64           `json:"fatTarget" binding:"omitempty,min=0"`
	FiberTarget   *float64           `json:"fiberTarget" binding:"omitempty,min=0"`

	ExcludedAliments  *[]string `json:"excludedAliments"`
	Allergies         *[]string `json:"allergies"`
	Intolerances      *[]string `json:"intolerances"`
	LikedFoods        *[]string `json:"likedFoods"`
	DislikedFoods     *[]string `json:"dislikedFoods"`
	MedicalConditions *[]string `json:"medicalConditions"`

	TargetCalories   *float64               `json:"targetCalories" binding:"omitempty,gt=0"`
	MealDistribution *MealDistributionInput `json:"mealDistribution"`
}

type WeightInput struct {
	Weight float64    `json:"weight" binding:"required,gt=0,max=500"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes" binding:"max=500"`
}

type MealConsumptionInput struct {
	MealID     string          `json:"mealId" binding:"required"`
	MealType   models.MealType `json:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Rating     *int            `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes      string          `json:"notes" binding:"max=500"`
	ConsumedAt *time.Time      `json:"consumedAt"`
}

type MealPreference string

const (
	PreferenceLiked    MealPreference = "liked"
	PreferenceDisliked MealPreference = "disliked"
	PreferenceNeutral  MealPreference = "neutral"
)

// UserProfileService manages users, their profile and histories, and keeps
// the derived metabolic values in sync with the profile inputs.
type UserProfileService struct {
	store     UserStore
	meals     MealGetter
	publisher NeedsPublisher
	now       func() time.Time
}

func NewUserProfileService(store UserStore, meals MealGetter, publisher NeedsPublisher) *UserProfileService {
	return &UserProfileService{store: store, meals: meals, publisher: publisher, now: time.Now}
}

func (s *UserProfileService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	u := &models.User{Email: strings.TrimSpace(in.Email), Username: strings.TrimSpace(in.Username)}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserProfileService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserProfileService) UpdateUser(ctx context.Context, id string, in UserInput) (*models.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Email = strings.TrimSpace(in.Email)
	if in.Username != "" {
		u.Username = strings.TrimSpace(in.Username)
	}
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *UserProfileService) DeleteUser(ctx context.Context, id string) error {
	return s.store.DeleteUser(ctx, id)
}

func (s *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.store.GetProfile(ctx, userID)
}

// CreateOrUpdateProfile creates the profile on first call and otherwise
// applies the input like UpdateProfile. A new profile is always calculated.
func (s *UserProfileService) CreateOrUpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.UserProfile, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.store.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		p = &models.UserProfile{UserID: userID}
		return s.apply(ctx, p, in, true)
	case err != nil:
		return nil, err
	}
	return s.apply(ctx, p, in, false)
}

func (s *UserProfileService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.UserProfile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, p, in, false)
}

func (s *UserProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.store.DeleteProfile(ctx, userID)
}

func (s *UserProfileService) apply(ctx context.Context, p *models.UserProfile, in ProfileInput, recalc bool) (*models.UserProfile, error) {
	changed, err := applyProfileInput(p, in)
	if err != nil {
		return nil, err
	}
	recalc = recalc || changed
	if recalc {
		s.recalculate(p)
	}
	if in.TargetCalories != nil {
		target := *in.TargetCalories
		p.TargetCalories = &target
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if recalc || in.TargetCalories != nil {
		s.publish(p)
	}
	return p, nil
}

// applyProfileInput copies the supplied fields onto p and reports whether a
// metabolic input changed.
func applyProfileInput(p *models.UserProfile, in ProfileInput) (bool, error) {
	metabolic := false
	if in.BirthDate != nil {
		birth, err := parseBirthDate(*in.BirthDate)
		if err != nil {
			return false, err
		}
		p.BirthDate = birth
		metabolic = true
	}

	metabolic = setValue(&p.Gender, in.Gender) || metabolic
	metabolic = setValue(&p.ActivityLevel, in.ActivityLevel) || metabolic
	metabolic = setValue(&p.Goal, in.Goal) || metabolic
	metabolic = setValue(&p.WeightChangeRate, in.WeightChangeRate) || metabolic
	metabolic = setPointer(&p.Height, in.Height) || metabolic
	metabolic = setPointer(&p.Weight, in.Weight) || metabolic
	metabolic = setPointer(&p.LeanMass, in.LeanMass) || metabolic
	metabolic = setPointer(&p.BodyFatPercentage, in.BodyFatPercentage) || metabolic
	metabolic = setPointer(&p.MeasuredBMR, in.MeasuredBMR) || metabolic
	metabolic = setPointer(&p.MetabolicFactor, in.MetabolicFactor) || metabolic

	setPointer(&p.TargetWeight, in.TargetWeight)
	setValue(&p.TrainingGoal, in.TrainingGoal)
	setPointer(&p.MealsPerDay, in.MealsPerDay)
	setPointer(&p.SnacksPerDay, in.SnacksPerDay)
	setValue(&p.CookingSkill, in.CookingSkill)
	setPointer(&p.MaxPrepTimePerMeal, in.MaxPrepTimePerMeal)
	setPointer(&p.MaxPrepTimePerDay, in.MaxPrepTimePerDay)
	setValue(&p.MacroRatio, in.MacroRatio)
	setPointer(&p.ProteinTarget, in.ProteinTarget)
	setPointer(&p.CarbTarget, in.CarbTarget)
	setPointer(&p.FatTarget, in.FatTarget)
	setPointer(&p.FiberTarget, in.FiberTarget)

	setList(&p.AvailableEquipments, in.AvailableEquipments)
	setList(&p.ExcludedAliments, in.ExcludedAliments)
	setList(&p.Allergies, in.Allergies)
	setList(&p.Intolerances, in.Intolerances)
	setList(&p.LikedFoods, in.LikedFoods)
	setList(&p.DislikedFoods, in.DislikedFoods)
	setList(&p.MedicalConditions, in.MedicalConditions)

	if in.MealDistribution != nil {
		d := models.DefaultMealDistribution()
		if p.MealDistribution != nil {
			d = *p.MealDistribution
		}
		setValue(&d.BreakfastPercent, in.MealDistribution.Breakfast)
		setValue(&d.LunchPercent, in.MealDistribution.Lunch)
		setValue(&d.DinnerPercent, in.MealDistribution.Dinner)
		setValue(&d.SnackPercent, in.MealDistribution.Snack)
		p.MealDistribution = &d
	}
	return metabolic, nil
}

func parseBirthDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		t, err = time.Parse(time.RFC3339, v)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: birthDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &t, nil
}

func setValue[T any](dst *T, v *T) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

func setPointer[T any](dst **T, v *T) bool {
	if v == nil {
		return false
	}
	val := *v
	*dst = &val
	return true
}

func setList(dst *models.StringList, v *[]string) {
	if v == nil {
		return
	}
	list := uniqueTrimmed(*v)
	if list == nil {
		list = []string{}
	}
	*dst = models.StringList(list)
}

// recalculate replaces the derived values with a fresh calculation.
func (s *UserProfileService) recalculate(p *models.UserProfile) {
	needs := utils.CalculateAllNeeds(utils.NeedsInputFromProfile(p))
	p.BMR = needs.BMR
	p.TDEE = needs.TDEE
	p.BMI = needs.BMI
	p.TargetCalories = needs.TargetCalories
	now := s.now()
	p.LastCalculated = &now
}

func (s *UserProfileService) publish(p *models.UserProfile) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishNeeds(p.UserID, CalculatedNeedsFor(p))
}

func (s *UserProfileService) GetCalculatedNeeds(ctx context.Context, userID string) (models.CalculatedNeeds, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.CalculatedNeeds{}, err
	}
	return CalculatedNeedsFor(p), nil
}

func (s *UserProfileService) RecalculateNeeds(ctx context.Context, userID string) (models.CalculatedNeeds, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.CalculatedNeeds{}, err
	}
	s.recalculate(p)
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return models.CalculatedNeeds{}, err
	}
	s.publish(p)
	return CalculatedNeedsFor(p), nil
}

// AddWeight records a weight entry, makes it the profile's current weight
// and recalculates.
func (s *UserProfileService) AddWeight(ctx context.Context, userID string, in WeightInput) (*models.WeightHistory, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}
	entry := &models.WeightHistory{ProfileID: p.ID, Weight: in.Weight, Date: date, Notes: strings.TrimSpace(in.Notes)}
	if err := s.store.AddWeight(ctx, entry); err != nil {
		return nil, fmt.Errorf("add weight: %w", err)
	}

	w := in.Weight
	p.Weight = &w
	s.recalculate(p)
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	s.publish(p)
	return entry, nil
}

// WeightHistory lists entries newest first, limited to the last days when
// days > 0.
func (s *UserProfileService) WeightHistory(ctx context.Context, userID string, days int) ([]models.WeightHistory, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	var since *time.Time
	if days > 0 {
		t := s.now().AddDate(0, 0, -days)
		since = &t
	}
	return s.store.WeightHistory(ctx, p.ID, since)
}

func (s *UserProfileService) AddMealConsumption(ctx context.Context, userID string, in MealConsumptionInput) (*models.MealConsumption, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.meals.GetByID(ctx, in.MealID); err != nil {
		return nil, err
	}
	at := s.now()
	if in.ConsumedAt != nil {
		at = *in.ConsumedAt
	}
	entry := &models.MealConsumption{
		ProfileID:  p.ID,
		MealID:     in.MealID,
		MealType:   in.MealType,
		Rating:     in.Rating,
		Notes:      strings.TrimSpace(in.Notes),
		ConsumedAt: at,
	}
	if err := s.store.AddMealConsumption(ctx, entry); err != nil {
		return nil, fmt.Errorf("add meal consumption: %w", err)
	}
	return entry, nil
}

func (s *UserProfileService) MealHistory(ctx context.Context, userID string) ([]models.MealConsumption, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.MealHistory(ctx, p.ID, mealHistoryLimit)
}

// SetMealPreference moves mealID into the liked or disliked set, or out of
// both for PreferenceNeutral.
func (s *UserProfileService) SetMealPreference(ctx context.Context, userID, mealID string, pref MealPreference) (*models.UserProfile, error) {
	switch pref {
	case PreferenceLiked, PreferenceDisliked, PreferenceNeutral:
	default:
		return nil, fmt.Errorf("%w: preference must be liked, disliked or neutral", ErrInvalidInput)
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.meals.GetByID(ctx, mealID); err != nil {
		return nil, err
	}

	p.LikedMeals = without(p.LikedMeals, mealID)
	p.DislikedMeals = without(p.DislikedMeals, mealID)
	switch pref {
	case PreferenceLiked:
		p.LikedMeals = append(p.LikedMeals, mealID)
	case PreferenceDisliked:
		p.DislikedMeals = append(p.DislikedMeals, mealID)
	}
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func without(list models.StringList, id string) models.StringList {
	out := slices.DeleteFunc(slices.Clone(list), func(v string) bool { return v == id })
	if out == nil {
		return models.StringList{}
	}
	return out
}
