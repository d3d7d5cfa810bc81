package services

import (
	"errors"
	"fmt"
	"net/http"

	"nutriplan/models"
)

var (
	// ErrInvalidInput wraps request values the binding layer cannot check.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownReference is returned when a catalog entity points at ids that do not exist.
	ErrUnknownReference = errors.New("unknown reference")
)

type GenerationErrorKind string

const (
	KindProfileNotFound              GenerationErrorKind = "ProfileNotFound"
	KindObjectivesUnresolved         GenerationErrorKind = "ObjectivesUnresolved"
	KindNoCandidateMeals             GenerationErrorKind = "NoCandidateMeals"
	KindPreparationTimeUnsatisfiable GenerationErrorKind = "PreparationTimeUnsatisfiable"
)

// MealPlanGenerationError is returned by plan and suggestion generation.
// Details echo the offending input.
type MealPlanGenerationError struct {
	Kind       GenerationErrorKind
	Message    string
	StatusCode int
	Details    map[string]any
}

func (e *MealPlanGenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errProfileNotFound(userID string) *MealPlanGenerationError {
	return &MealPlanGenerationError{
		Kind:       KindProfileNotFound,
		Message:    "user profile not found",
		StatusCode: http.StatusNotFound,
		Details:    map[string]any{"userId": userID},
	}
}

func errObjectivesUnresolved() *MealPlanGenerationError {
	return &MealPlanGenerationError{
		Kind:       KindObjectivesUnresolved,
		Message:    "cannot determine target calories; supply explicit objectives or complete the user profile",
		StatusCode: http.StatusBadRequest,
		Details:    map[string]any{},
	}
}

func errNoCandidateMeals(c models.DietaryConstraints) *MealPlanGenerationError {
	return &MealPlanGenerationError{
		Kind:       KindNoCandidateMeals,
		Message:    "no meal satisfies these constraints",
		StatusCode: http.StatusUnprocessableEntity,
		Details:    map[string]any{"constraints": c},
	}
}

func errPreparationTime(maxMinutes int) *MealPlanGenerationError {
	return &MealPlanGenerationError{
		Kind:       KindPreparationTimeUnsatisfiable,
		Message:    "no meal respects the requested maximum preparation time",
		StatusCode: http.StatusUnprocessableEntity,
		Details:    map[string]any{"maxPreparationTime": maxMinutes},
	}
}
