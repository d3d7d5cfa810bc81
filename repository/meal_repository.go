package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutriplan/models"
)

// MealFilter is applied in SQL. ExcludedAliments matches aliment names
// exactly (case-sensitive); AvailableEquipments holds equipment ids and keeps
// only meals whose every required equipment is in the list.
type MealFilter struct {
	ExcludedAliments    []string
	AvailableEquipments []string
}

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func withMealAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Aliments.Aliment.Macros.Macro").
		Preload("Preparations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Preparations.Preparation").
		Preload("Equipments.Equipment")
}

// FindMeals returns the catalog meals matching the filter with aliments
// (and their macros), ordered preparations and equipments loaded.
func (r *MealRepository) FindMeals(ctx context.Context, f MealFilter) ([]models.Meal, error) {
	q := withMealAssociations(r.db.WithContext(ctx).Model(&models.Meal{}))
	if len(f.ExcludedAliments) > 0 {
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM meal_aliments ma
			JOIN aliments a ON a.id = ma.aliment_id
			WHERE ma.meal_id = meals.id AND a.name IN ?)`, f.ExcludedAliments)
	}
	if len(f.AvailableEquipments) > 0 {
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM meal_equipments me
			WHERE me.meal_id = meals.id AND me.equipment_id NOT IN ?)`, f.AvailableEquipments)
	}

	var meals []models.Meal
	if err := q.Order("meals.title ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("find meals: %w", err)
	}
	return meals, nil
}

func (r *MealRepository) List(ctx context.Context) ([]models.Meal, error) {
	return r.FindMeals(ctx, MealFilter{})
}

func (r *MealRepository) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	err := withMealAssociations(r.db.WithContext(ctx)).Where("id = ?", id).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *MealRepository) GetByTitle(ctx context.Context, title string) (*models.Meal, error) {
	var meal models.Meal
	err := withMealAssociations(r.db.WithContext(ctx)).Where("title = ?", title).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *MealRepository) Create(ctx context.Context, meal *models.Meal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meal).Error; err != nil {
			return err
		}
		return replaceMealLinks(tx, meal, true)
	})
}

// Update saves the scalar fields; each non-nil link slice replaces the stored
// links of that kind.
func (r *MealRepository) Update(ctx context.Context, meal *models.Meal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(meal).Error; err != nil {
			return err
		}
		return replaceMealLinks(tx, meal, false)
	})
}

func replaceMealLinks(tx *gorm.DB, meal *models.Meal, fresh bool) error {
	if meal.Aliments != nil {
		if !fresh {
			if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealAliment{}).Error; err != nil {
				return fmt.Errorf("clear meal aliments: %w", err)
			}
		}
		rows := make([]models.MealAliment, len(meal.Aliments))
		for i, a := range meal.Aliments {
			rows[i] = models.MealAliment{MealID: meal.ID, AlimentID: a.AlimentID, Quantity: a.Quantity}
		}
		if err := createRows(tx, rows); err != nil {
			return fmt.Errorf("insert meal aliments: %w", err)
		}
	}
	if meal.Preparations != nil {
		if !fresh {
			if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealPreparation{}).Error; err != nil {
				return fmt.Errorf("clear meal preparations: %w", err)
			}
		}
		rows := make([]models.MealPreparation, len(meal.Preparations))
		for i, p := range meal.Preparations {
			rows[i] = models.MealPreparation{MealID: meal.ID, PreparationID: p.PreparationID, Order: p.Order}
		}
		if err := createRows(tx, rows); err != nil {
			return fmt.Errorf("insert meal preparations: %w", err)
		}
	}
	if meal.Equipments != nil {
		if !fresh {
			if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealEquipment{}).Error; err != nil {
				return fmt.Errorf("clear meal equipments: %w", err)
			}
		}
		rows := make([]models.MealEquipment, len(meal.Equipments))
		for i, e := range meal.Equipments {
			rows[i] = models.MealEquipment{MealID: meal.ID, EquipmentID: e.EquipmentID}
		}
		if err := createRows(tx, rows); err != nil {
			return fmt.Errorf("insert meal equipments: %w", err)
		}
	}
	return nil
}

func createRows[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *MealRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range []any{&models.MealAliment{}, &models.MealPreparation{}, &models.MealEquipment{}} {
			if err := tx.Where("meal_id = ?", id).Delete(link).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Meal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMealNotFound
		}
		return nil
	})
}
