package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are UUID strings assigned on insert unless the caller set one.

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (a *Aliment) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}

func (m *Macro) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	newID(&e.ID)
	return nil
}

func (p *Preparation) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

func (d *MealDistribution) BeforeCreate(tx *gorm.DB) error {
	newID(&d.ID)
	return nil
}

func (w *WeightHistory) BeforeCreate(tx *gorm.DB) error {
	newID(&w.ID)
	return nil
}

func (m *MealConsumption) BeforeCreate(tx *gorm.DB) error {
	newID(&m.ID)
	return nil
}

func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	newID(&k.ID)
	return nil
}
