package services

import (
	"context"

	"nutriplan/models"
	"nutriplan/repository"
)

// MealFinder is the catalog query used by plan and suggestion generation.
type MealFinder interface {
	FindMeals(ctx context.Context, f repository.MealFilter) ([]models.Meal, error)
}

// ProfileFinder returns repository.ErrProfileNotFound for an unknown user.
type ProfileFinder interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}
