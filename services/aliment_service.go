package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"nutriplan/models"
	"nutriplan/repository"
)

type AlimentStore interface {
	List(ctx context.Context) ([]models.Aliment, error)
	GetByID(ctx context.Context, id string) (*models.Aliment, error)
	Create(ctx context.Context, a *models.Aliment) error
	Update(ctx context.Context, a *models.Aliment) error
	Delete(ctx context.Context, id string) error
}

type AlimentMacroInput struct {
	MacroID  string  `json:"macroId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"min=0,max=100"`
}

// AlimentInput carries per-100 g values. A nil Macros leaves the stored
// macro quantities untouched on update.
type AlimentInput struct {
	Name    string              `json:"name" binding:"required,min=2,max=50"`
	Cal100g int                 `json:"cal_100g" binding:"min=0,max=900"`
	Macros  []AlimentMacroInput `json:"macros" binding:"omitempty,dive"`
}

type AlimentService struct {
	aliments AlimentStore
	macros   idLookup[models.Macro]
}

func NewAlimentService(aliments AlimentStore, macros idLookup[models.Macro]) *AlimentService {
	return &AlimentService{aliments: aliments, macros: macros}
}

func (s *AlimentService) List(ctx context.Context) ([]models.Aliment, error) {
	return s.aliments.List(ctx)
}

func (s *AlimentService) Get(ctx context.Context, id string) (*models.Aliment, error) {
	return s.aliments.GetByID(ctx, id)
}

func (s *AlimentService) Create(ctx context.Context, in AlimentInput) (*models.Aliment, error) {
	a := &models.Aliment{}
	if err := s.apply(ctx, a, in); err != nil {
		return nil, err
	}
	if err := s.aliments.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.aliments.GetByID(ctx, a.ID)
}

func (s *AlimentService) Update(ctx context.Context, id string, in AlimentInput) (*models.Aliment, error) {
	a, err := s.aliments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Macros == nil {
		a.Macros = nil
	}
	if err := s.apply(ctx, a, in); err != nil {
		return nil, err
	}
	if err := s.aliments.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.aliments.GetByID(ctx, id)
}

func (s *AlimentService) Delete(ctx context.Context, id string) error {
	return s.aliments.Delete(ctx, id)
}

func (s *AlimentService) apply(ctx context.Context, a *models.Aliment, in AlimentInput) error {
	a.Name = strings.TrimSpace(in.Name)
	a.Cal100g = in.Cal100g
	if in.Macros == nil {
		return nil
	}
	ids := make([]string, 0, len(in.Macros))
	macros := make([]models.AlimentMacro, 0, len(in.Macros))
	for _, m := range in.Macros {
		if slices.Contains(ids, m.MacroID) {
			continue
		}
		ids = append(ids, m.MacroID)
		macros = append(macros, models.AlimentMacro{MacroID: m.MacroID, Quantity: m.Quantity})
	}
	if err := checkReferences(ctx, s.macros, "macro", ids); err != nil {
		return err
	}
	a.Macros = macros
	return nil
}

func isNotFound(err error) bool {
	for _, target := range []error{
		repository.ErrAlimentNotFound,
		repository.ErrMacroNotFound,
		repository.ErrEquipmentNotFound,
		repository.ErrPreparationNotFound,
		repository.ErrMealNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
