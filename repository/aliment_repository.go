package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutriplan/models"
)

// AlimentRepository handles aliments and their per-100g macro quantities.
type AlimentRepository struct {
	db *gorm.DB
}

func NewAlimentRepository(db *gorm.DB) *AlimentRepository {
	return &AlimentRepository{db: db}
}

func (r *AlimentRepository) withMacros(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Macros.Macro")
}

func (r *AlimentRepository) List(ctx context.Context) ([]models.Aliment, error) {
	var aliments []models.Aliment
	err := r.withMacros(ctx).Order("name ASC").Find(&aliments).Error
	return aliments, err
}

func (r *AlimentRepository) GetByID(ctx context.Context, id string) (*models.Aliment, error) {
	var a models.Aliment
	err := r.withMacros(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAlimentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlimentRepository) GetByName(ctx context.Context, name string) (*models.Aliment, error) {
	var a models.Aliment
	err := r.withMacros(ctx).Where("name = ?", name).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAlimentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlimentRepository) Create(ctx context.Context, a *models.Aliment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		macros := a.Macros
		a.Macros = nil
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		a.Macros = macros
		return replaceAlimentMacros(tx, a)
	})
}

// Update saves the scalar fields. A non-nil Macros slice replaces the stored
// macro quantities wholesale.
func (r *AlimentRepository) Update(ctx context.Context, a *models.Aliment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(a).Error; err != nil {
			return err
		}
		if a.Macros == nil {
			return nil
		}
		if err := tx.Where("aliment_id = ?", a.ID).Delete(&models.AlimentMacro{}).Error; err != nil {
			return fmt.Errorf("clear aliment macros: %w", err)
		}
		return replaceAlimentMacros(tx, a)
	})
}

func replaceAlimentMacros(tx *gorm.DB, a *models.Aliment) error {
	if len(a.Macros) == 0 {
		return nil
	}
	rows := make([]models.AlimentMacro, len(a.Macros))
	for i, m := range a.Macros {
		rows[i] = models.AlimentMacro{AlimentID: a.ID, MacroID: m.MacroID, Quantity: m.Quantity}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert aliment macros: %w", err)
	}
	return nil
}

func (r *AlimentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("aliment_id = ?", id).Delete(&models.AlimentMacro{}).Error; err != nil {
			return err
		}
		if err := tx.Where("aliment_id = ?", id).Delete(&models.MealAliment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Aliment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlimentNotFound
		}
		return nil
	})
}
