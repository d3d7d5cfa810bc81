package services

import (
	"context"
	"fmt"
	"math/rand"

	"nutriplan/models"
	"nutriplan/repository"
)

const (
	defaultSuggestionLimit   = 5
	defaultPersonalizedLimit = 10
)

// SuggestionParams drive filter-based suggestions. TargetCalories is the
// target for one meal.
type SuggestionParams struct {
	TargetCalories      *float64
	MaxTime             *int
	ExcludedAliments    []string
	AvailableEquipments []string
	PreferredMacros     string
	Limit               int
}

type MealSuggestionService struct {
	meals    MealFinder
	profiles ProfileFinder
	shuffle  shuffleFunc
}

func NewMealSuggestionService(meals MealFinder, profiles ProfileFinder) *MealSuggestionService {
	return &MealSuggestionService{meals: meals, profiles: profiles, shuffle: rand.Shuffle}
}

// GetSuggestions ranks catalog meals against explicit criteria. The
// preparation time and calorie filters are relaxed rather than returning
// nothing: when the calorie filter leaves no meal, every candidate is
// returned nearest-first instead. AvailableEquipments is accepted but not
// applied.
func (s *MealSuggestionService) GetSuggestions(ctx context.Context, p SuggestionParams) ([]models.ScoredMeal, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	meals, err := s.meals.FindMeals(ctx, repository.MealFilter{
		ExcludedAliments: uniqueTrimmed(p.ExcludedAliments),
	})
	if err != nil {
		return nil, fmt.Errorf("load candidate meals: %w", err)
	}
	candidates := annotate(meals)
	if len(candidates) == 0 {
		return []models.ScoredMeal{}, nil
	}

	in := scoringInput{preferred: classifyMacro(p.PreferredMacros)}
	if p.MaxTime != nil && *p.MaxTime > 0 {
		in.maxPrepTime = *p.MaxTime
		if kept := withinPrepTime(candidates, in.maxPrepTime); len(kept) > 0 {
			candidates = kept
		}
	}
	if p.TargetCalories != nil && *p.TargetCalories > 0 {
		in.targetCalories = *p.TargetCalories
		kept := withinCalories(candidates, in.targetCalories, suggestionCalorieTolerance)
		if len(kept) == 0 {
			for i := range candidates {
				candidates[i].score = scoreMeal(&candidates[i].meal, in)
			}
			sortByCalorieDistance(candidates, in.targetCalories)
			return toScoredMeals(candidates, limit), nil
		}
		candidates = kept
	}

	return s.rank(candidates, in, limit), nil
}

// GetPersonalizedSuggestions ranks meals for a user and meal type using the
// profile's exclusions, time limit and calorie slice. When the time and
// calorie filters leave nothing, every meal passing the exclusions is ranked.
func (s *MealSuggestionService) GetPersonalizedSuggestions(ctx context.Context, userID string, mealType models.MealType, limit int) ([]models.ScoredMeal, error) {
	if limit <= 0 {
		limit = defaultPersonalizedLimit
	}
	profile, err := resolveProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errProfileNotFound(userID)
	}
	needs := CalculatedNeedsFor(profile)
	constraints := ResolveConstraints(profile, nil)
	in := profileScoringInput(profile, &needs, mealType)

	meals, err := s.meals.FindMeals(ctx, repository.MealFilter{ExcludedAliments: constraints.ExcludedAliments})
	if err != nil {
		return nil, fmt.Errorf("load candidate meals: %w", err)
	}
	all := annotate(meals)
	candidates := all
	if maxPrep := constraints.MaxPreparationTime; maxPrep != nil {
		candidates = withinPrepTime(candidates, *maxPrep)
	}
	if in.targetCalories > 0 {
		candidates = withinCalories(candidates, in.targetCalories, suggestionCalorieTolerance)
	}
	// The fallback widens to every meal passing the exclusions, not the
	// whole catalog: an allergy or excluded aliment must never be suggested,
	// so a profile excluding every meal gets an empty list.
	if len(candidates) == 0 {
		candidates = all
	}
	return s.rank(candidates, in, limit), nil
}

func (s *MealSuggestionService) rank(candidates []candidate, in scoringInput, limit int) []models.ScoredMeal {
	for i := range candidates {
		candidates[i].score = scoreMeal(&candidates[i].meal, in)
	}
	sortByScore(candidates)
	return toScoredMeals(diversify(candidates, s.shuffle), limit)
}
