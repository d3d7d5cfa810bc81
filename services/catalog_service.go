package services

import (
	"context"
	"fmt"
	"strings"

	"nutriplan/models"
)

// CatalogStore is the CRUD surface of the simple catalog tables.
type CatalogStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

// CatalogInput copies validated request fields onto an entity.
type CatalogInput[T any] interface {
	Apply(item *T)
}

type CatalogService[T any] struct {
	store CatalogStore[T]
}

func NewCatalogService[T any](store CatalogStore[T]) *CatalogService[T] {
	return &CatalogService[T]{store: store}
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

func (s *CatalogService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CatalogService[T]) Create(ctx context.Context, in CatalogInput[T]) (*T, error) {
	item := new(T)
	in.Apply(item)
	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService[T]) Update(ctx context.Context, id string, in CatalogInput[T]) (*T, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(item)
	if err := s.store.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

type MacroInput struct {
	Name string `json:"name" binding:"required,min=2,max=30"`
}

func (in MacroInput) Apply(m *models.Macro) { m.Name = strings.TrimSpace(in.Name) }

type EquipmentInput struct {
	Name string `json:"name" binding:"required,min=2,max=40"`
}

func (in EquipmentInput) Apply(e *models.Equipment) { e.Name = strings.TrimSpace(in.Name) }

type PreparationInput struct {
	Step          int    `json:"step" binding:"required,min=1"`
	Description   string `json:"description" binding:"required,min=5,max=200"`
	EstimatedTime int    `json:"estimatedTime" binding:"required,min=1"`
}

func (in PreparationInput) Apply(p *models.Preparation) {
	p.Step = in.Step
	p.Description = strings.TrimSpace(in.Description)
	p.EstimatedTime = in.EstimatedTime
}

type idLookup[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
}

// checkReferences fails with ErrUnknownReference on the first id that does
// not resolve.
func checkReferences[T any](ctx context.Context, lookup idLookup[T], kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := lookup.GetByID(ctx, id); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: %s %q", ErrUnknownReference, kind, id)
			}
			return err
		}
	}
	return nil
}
