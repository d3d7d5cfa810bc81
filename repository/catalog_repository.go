package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nutriplan/models"
)

// CatalogRepository persists the flat catalog entities (macros, equipments,
// preparations) that have no nested associations of their own.
type CatalogRepository[T any] struct {
	db       *gorm.DB
	notFound error
	order    string
	key      string
}

func NewMacroRepository(db *gorm.DB) *CatalogRepository[models.Macro] {
	return &CatalogRepository[models.Macro]{db: db, notFound: ErrMacroNotFound, order: "name ASC", key: "name"}
}

func NewEquipmentRepository(db *gorm.DB) *CatalogRepository[models.Equipment] {
	return &CatalogRepository[models.Equipment]{db: db, notFound: ErrEquipmentNotFound, order: "name ASC", key: "name"}
}

func NewPreparationRepository(db *gorm.DB) *CatalogRepository[models.Preparation] {
	return &CatalogRepository[models.Preparation]{db: db, notFound: ErrPreparationNotFound, order: "step ASC", key: "description"}
}

func (r *CatalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order(r.order).Find(&items).Error
	return items, err
}

func (r *CatalogRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByName looks an entity up by its natural key: the name, or the
// description for preparations.
func (r *CatalogRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Where(r.key+" = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, r.notFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CatalogRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *CatalogRepository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}
