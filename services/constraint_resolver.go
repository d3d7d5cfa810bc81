package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"nutriplan/models"
	"nutriplan/repository"
)

const defaultMealsPerDay = 3

// resolveProfile loads the profile for userID. An empty userID yields nil.
func resolveProfile(ctx context.Context, profiles ProfileFinder, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, nil
	}
	profile, err := profiles.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, errProfileNotFound(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}
	return profile, nil
}

// ResolveObjectives picks target calories from the overrides, then the
// profile's target, then its TDEE.
func ResolveObjectives(profile *models.UserProfile, overrides *models.NutritionalObjectives) (models.NutritionalObjectives, error) {
	var target float64
	switch {
	case overrides != nil && overrides.TargetCalories > 0:
		target = overrides.TargetCalories
	case profile != nil && profile.TargetCalories != nil:
		target = *profile.TargetCalories
	case profile != nil && profile.TDEE != nil:
		target = *profile.TDEE
	}
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return models.NutritionalObjectives{}, errObjectivesUnresolved()
	}

	out := models.NutritionalObjectives{TargetCalories: target}
	if overrides != nil && overrides.Macros != nil {
		out.Macros = overrides.Macros
	} else {
		out.Macros = profileMacroObjectives(profile)
	}
	return out, nil
}

func profileMacroObjectives(p *models.UserProfile) *models.MacroObjectives {
	if p == nil {
		return nil
	}
	if !positive(p.ProteinTarget) && !positive(p.CarbTarget) && !positive(p.FatTarget) {
		return nil
	}
	return &models.MacroObjectives{
		Protein:       p.ProteinTarget,
		Carbohydrates: p.CarbTarget,
		Lipids:        p.FatTarget,
	}
}

// ResolveConstraints merges request overrides with the profile. MealsPerDay is
// always set on the result.
func ResolveConstraints(profile *models.UserProfile, overrides *models.DietaryConstraints) models.DietaryConstraints {
	var in models.DietaryConstraints
	if overrides != nil {
		in = *overrides
	}
	var out models.DietaryConstraints

	mealsPerDay := defaultMealsPerDay
	switch {
	case in.MealsPerDay != nil:
		mealsPerDay = *in.MealsPerDay
	case profile != nil && profile.MealsPerDay != nil:
		mealsPerDay = *profile.MealsPerDay
	}
	out.MealsPerDay = &mealsPerDay

	excluded := [][]string{in.ExcludedAliments}
	if profile != nil {
		excluded = append(excluded,
			profile.ExcludedAliments,
			profile.Allergies,
			profile.Intolerances,
			profile.DislikedFoods,
		)
	}
	if names := uniqueTrimmed(excluded...); len(names) > 0 {
		out.ExcludedAliments = names
	}

	equipments := in.AvailableEquipments
	if equipments == nil && profile != nil {
		equipments = profile.AvailableEquipments
	}
	if ids := uniqueTrimmed(equipments); len(ids) > 0 {
		out.AvailableEquipments = ids
	}

	var maxPrep *int
	switch {
	case in.MaxPreparationTime != nil:
		maxPrep = in.MaxPreparationTime
	case profile != nil:
		maxPrep = profile.MaxPrepTimePerMeal
	}
	if maxPrep != nil && *maxPrep > 0 {
		v := *maxPrep
		out.MaxPreparationTime = &v
	}
	return out
}

// uniqueTrimmed concatenates the lists, trims every value, drops empties and
// keeps the first occurrence of each.
func uniqueTrimmed(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}
