package services

import (
	"context"
	"slices"
	"strings"

	"nutriplan/models"
)

type MealStore interface {
	List(ctx context.Context) ([]models.Meal, error)
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	Create(ctx context.Context, meal *models.Meal) error
	Update(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id string) error
}

type MealAlimentInput struct {
	AlimentID string  `json:"alimentId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"gt=0"`
}

type MealPreparationInput struct {
	PreparationID string `json:"preparationId" binding:"required"`
	Order         int    `json:"order" binding:"min=1"`
}

// MealInput describes a catalog meal. On update a nil link list keeps the
// stored links and an empty one clears them.
type MealInput struct {
	Title        string                 `json:"title" binding:"required,min=12,max=60"`
	Description  string                 `json:"description"`
	Calories     int                    `json:"calories" binding:"min=0"`
	Aliments     []MealAlimentInput     `json:"aliments" binding:"omitempty,dive"`
	Preparations []MealPreparationInput `json:"preparations" binding:"omitempty,dive"`
	Equipments   []string               `json:"equipments" binding:"omitempty,dive,required"`
}

type MealCatalogService struct {
	meals        MealStore
	aliments     idLookup[models.Aliment]
	preparations idLookup[models.Preparation]
	equipments   idLookup[models.Equipment]
}

func NewMealCatalogService(meals MealStore, aliments idLookup[models.Aliment], preparations idLookup[models.Preparation], equipments idLookup[models.Equipment]) *MealCatalogService {
	return &MealCatalogService{meals: meals, aliments: aliments, preparations: preparations, equipments: equipments}
}

func (s *MealCatalogService) List(ctx context.Context) ([]models.Meal, error) {
	return s.meals.List(ctx)
}

func (s *MealCatalogService) Get(ctx context.Context, id string) (*models.Meal, error) {
	return s.meals.GetByID(ctx, id)
}

func (s *MealCatalogService) Create(ctx context.Context, in MealInput) (*models.Meal, error) {
	meal := &models.Meal{}
	if err := s.apply(ctx, meal, in); err != nil {
		return nil, err
	}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	return s.meals.GetByID(ctx, meal.ID)
}

func (s *MealCatalogService) Update(ctx context.Context, id string, in MealInput) (*models.Meal, error) {
	meal, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	meal.Aliments, meal.Preparations, meal.Equipments = nil, nil, nil
	if err := s.apply(ctx, meal, in); err != nil {
		return nil, err
	}
	if err := s.meals.Update(ctx, meal); err != nil {
		return nil, err
	}
	return s.meals.GetByID(ctx, id)
}

func (s *MealCatalogService) Delete(ctx context.Context, id string) error {
	return s.meals.Delete(ctx, id)
}

// Nutrition returns the macro totals and aliment-derived calories of a meal.
func (s *MealCatalogService) Nutrition(ctx context.Context, id string) (models.NutritionAnalysis, error) {
	meal, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return models.NutritionAnalysis{}, err
	}
	return AnalyzeMealNutrition(meal), nil
}

func (s *MealCatalogService) apply(ctx context.Context, meal *models.Meal, in MealInput) error {
	meal.Title = strings.TrimSpace(in.Title)
	meal.Description = strings.TrimSpace(in.Description)
	meal.Calories = in.Calories

	if in.Aliments != nil {
		ids := make([]string, 0, len(in.Aliments))
		meal.Aliments = make([]models.MealAliment, 0, len(in.Aliments))
		index := make(map[string]int, len(in.Aliments))
		for _, a := range in.Aliments {
			// repeated aliments are merged into one portion
			if i, ok := index[a.AlimentID]; ok {
				meal.Aliments[i].Quantity += a.Quantity
				continue
			}
			index[a.AlimentID] = len(meal.Aliments)
			ids = append(ids, a.AlimentID)
			meal.Aliments = append(meal.Aliments, models.MealAliment{AlimentID: a.AlimentID, Quantity: a.Quantity})
		}
		if err := checkReferences(ctx, s.aliments, "aliment", ids); err != nil {
			return err
		}
	}
	if in.Preparations != nil {
		ids := make([]string, 0, len(in.Preparations))
		meal.Preparations = make([]models.MealPreparation, 0, len(in.Preparations))
		for _, p := range in.Preparations {
			if slices.Contains(ids, p.PreparationID) {
				continue
			}
			ids = append(ids, p.PreparationID)
			meal.Preparations = append(meal.Preparations, models.MealPreparation{PreparationID: p.PreparationID, Order: p.Order})
		}
		if err := checkReferences(ctx, s.preparations, "preparation", ids); err != nil {
			return err
		}
	}
	if in.Equipments != nil {
		ids := uniqueTrimmed(in.Equipments)
		meal.Equipments = make([]models.MealEquipment, 0, len(ids))
		for _, id := range ids {
			meal.Equipments = append(meal.Equipments, models.MealEquipment{EquipmentID: id})
		}
		if err := checkReferences(ctx, s.equipments, "equipment", ids); err != nil {
			return err
		}
	}
	return nil
}
