package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutriplan/models"
)

// UserRepository persists users, their profile and the profile histories.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Preload("Profile.MealDistribution").Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
}

// DeleteUser removes the user and everything hanging off its profile.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteProfileTx(tx, id); err != nil && !errors.Is(err, ErrProfileNotFound) {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// GetProfile loads the profile of a user with its meal distribution.
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.WithContext(ctx).Preload("MealDistribution").Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile inserts or updates the profile. A non-nil MealDistribution is
// upserted alongside it.
func (r *UserRepository) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if p.ID == "" {
			err = tx.Omit(clause.Associations).Create(p).Error
		} else {
			err = tx.Omit(clause.Associations).Save(p).Error
		}
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		if p.MealDistribution == nil {
			return nil
		}
		d := p.MealDistribution
		d.ProfileID = p.ID
		if d.ID == "" {
			var existing models.MealDistribution
			err := tx.Where("profile_id = ?", p.ID).First(&existing).Error
			switch {
			case err == nil:
				d.ID = existing.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		if d.ID == "" {
			return tx.Create(d).Error
		}
		return tx.Save(d).Error
	})
}

func (r *UserRepository) DeleteProfile(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProfileTx(tx, userID)
	})
}

func deleteProfileTx(tx *gorm.DB, userID string) error {
	var p models.UserProfile
	if err := tx.Select("id").Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	for _, child := range []any{&models.MealDistribution{}, &models.WeightHistory{}, &models.MealConsumption{}} {
		if err := tx.Where("profile_id = ?", p.ID).Delete(child).Error; err != nil {
			return err
		}
	}
	return tx.Where("id = ?", p.ID).Delete(&models.UserProfile{}).Error
}

func (r *UserRepository) AddWeight(ctx context.Context, w *models.WeightHistory) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *UserRepository) WeightHistory(ctx context.Context, profileID string, since *time.Time) ([]models.WeightHistory, error) {
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if since != nil {
		q = q.Where("date >= ?", *since)
	}
	var entries []models.WeightHistory
	err := q.Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *UserRepository) AddMealConsumption(ctx context.Context, m *models.MealConsumption) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// MealHistory returns the latest consumptions, newest first.
func (r *UserRepository) MealHistory(ctx context.Context, profileID string, limit int) ([]models.MealConsumption, error) {
	var entries []models.MealConsumption
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("consumed_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
