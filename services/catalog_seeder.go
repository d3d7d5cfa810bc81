package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"nutriplan/models"
)

// CatalogSeed is the JSON document loaded by cmd/seed. Aliments, meals and
// preparations reference other entries by name (description for
// preparations), not by id.
type CatalogSeed struct {
	Macros       []SeedNamed       `json:"macros"`
	Equipments   []SeedNamed       `json:"equipments"`
	Preparations []SeedPreparation `json:"preparations"`
	Aliments     []SeedAliment     `json:"aliments"`
	Meals        []SeedMeal        `json:"meals"`
}

type SeedNamed struct {
	Name string `json:"name"`
}

type SeedPreparation struct {
	Step          int    `json:"step"`
	Description   string `json:"description"`
	EstimatedTime int    `json:"estimatedTime"`
}

type SeedAliment struct {
	Name    string             `json:"name"`
	Cal100g int                `json:"cal_100g"`
	Macros  map[string]float64 `json:"macros"`
}

type SeedMeal struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Calories     int                `json:"calories"`
	Aliments     map[string]float64 `json:"aliments"`
	Preparations []string           `json:"preparations"`
	Equipments   []string           `json:"equipments"`
}

type SeedCount struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

func (c *SeedCount) add(created bool) {
	if created {
		c.Created++
	} else {
		c.Updated++
	}
}

type SeedReport struct {
	Macros       SeedCount `json:"macros"`
	Equipments   SeedCount `json:"equipments"`
	Preparations SeedCount `json:"preparations"`
	Aliments     SeedCount `json:"aliments"`
	Meals        SeedCount `json:"meals"`
}

type NamedStore[T any] interface {
	GetByName(ctx context.Context, name string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
}

type MealTitleStore interface {
	GetByTitle(ctx context.Context, title string) (*models.Meal, error)
	Create(ctx context.Context, meal *models.Meal) error
	Update(ctx context.Context, meal *models.Meal) error
}

type mealsByTitle struct{ MealTitleStore }

func (m mealsByTitle) GetByName(ctx context.Context, title string) (*models.Meal, error) {
	return m.GetByTitle(ctx, title)
}

// CatalogSeeder upserts a CatalogSeed: entries matching an existing natural
// key are updated in place, the rest are created.
type CatalogSeeder struct {
	macros       NamedStore[models.Macro]
	equipments   NamedStore[models.Equipment]
	preparations NamedStore[models.Preparation]
	aliments     NamedStore[models.Aliment]
	meals        NamedStore[models.Meal]
}

func NewCatalogSeeder(
	macros NamedStore[models.Macro],
	equipments NamedStore[models.Equipment],
	preparations NamedStore[models.Preparation],
	aliments NamedStore[models.Aliment],
	meals MealTitleStore,
) *CatalogSeeder {
	return &CatalogSeeder{
		macros:       macros,
		equipments:   equipments,
		preparations: preparations,
		aliments:     aliments,
		meals:        mealsByTitle{meals},
	}
}

func ParseCatalogSeed(data []byte) (CatalogSeed, error) {
	var seed CatalogSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("%w: catalog seed: %v", ErrInvalidInput, err)
	}
	return seed, nil
}

func (s *CatalogSeeder) Seed(ctx context.Context, seed CatalogSeed) (SeedReport, error) {
	var report SeedReport
	macroIDs := make(map[string]string)
	equipmentIDs := make(map[string]string)
	preparationIDs := make(map[string]string)
	alimentIDs := make(map[string]string)

	for _, m := range seed.Macros {
		name := strings.TrimSpace(m.Name)
		item, created, err := upsertByName(ctx, s.macros, name, func(x *models.Macro) { x.Name = name })
		if err != nil {
			return report, fmt.Errorf("macro %q: %w", name, err)
		}
		macroIDs[name] = item.ID
		report.Macros.add(created)
	}

	for _, e := range seed.Equipments {
		name := strings.TrimSpace(e.Name)
		item, created, err := upsertByName(ctx, s.equipments, name, func(x *models.Equipment) { x.Name = name })
		if err != nil {
			return report, fmt.Errorf("equipment %q: %w", name, err)
		}
		equipmentIDs[name] = item.ID
		report.Equipments.add(created)
	}

	for _, p := range seed.Preparations {
		desc := strings.TrimSpace(p.Description)
		item, created, err := upsertByName(ctx, s.preparations, desc, func(x *models.Preparation) {
			x.Step = p.Step
			x.Description = desc
			x.EstimatedTime = p.EstimatedTime
		})
		if err != nil {
			return report, fmt.Errorf("preparation %q: %w", desc, err)
		}
		preparationIDs[desc] = item.ID
		report.Preparations.add(created)
	}

	for _, a := range seed.Aliments {
		name := strings.TrimSpace(a.Name)
		macros := make([]models.AlimentMacro, 0, len(a.Macros))
		for _, macro := range slices.Sorted(maps.Keys(a.Macros)) {
			id, err := resolveID(ctx, s.macros, macroIDs, "macro", macro, func(x *models.Macro) string { return x.ID })
			if err != nil {
				return report, fmt.Errorf("aliment %q: %w", name, err)
			}
			macros = append(macros, models.AlimentMacro{MacroID: id, Quantity: a.Macros[macro]})
		}
		item, created, err := upsertByName(ctx, s.aliments, name, func(x *models.Aliment) {
			x.Name = name
			x.Cal100g = a.Cal100g
			x.Macros = macros
		})
		if err != nil {
			return report, fmt.Errorf("aliment %q: %w", name, err)
		}
		alimentIDs[name] = item.ID
		report.Aliments.add(created)
	}

	for _, m := range seed.Meals {
		title := strings.TrimSpace(m.Title)
		links, err := s.mealLinks(ctx, m, alimentIDs, preparationIDs, equipmentIDs)
		if err != nil {
			return report, fmt.Errorf("meal %q: %w", title, err)
		}
		_, created, err := upsertByName(ctx, s.meals, title, func(x *models.Meal) {
			x.Title = title
			x.Description = strings.TrimSpace(m.Description)
			x.Calories = m.Calories
			x.Aliments = links.Aliments
			x.Preparations = links.Preparations
			x.Equipments = links.Equipments
		})
		if err != nil {
			return report, fmt.Errorf("meal %q: %w", title, err)
		}
		report.Meals.add(created)
	}
	return report, nil
}

// mealLinks resolves the names of a seed meal against this seed first, then
// the stored catalog. The returned slices are never nil so an update
// replaces every stored link.
func (s *CatalogSeeder) mealLinks(ctx context.Context, m SeedMeal, aliments, preparations, equipments map[string]string) (models.Meal, error) {
	links := models.Meal{
		Aliments:     make([]models.MealAliment, 0, len(m.Aliments)),
		Preparations: make([]models.MealPreparation, 0, len(m.Preparations)),
		Equipments:   make([]models.MealEquipment, 0, len(m.Equipments)),
	}
	for _, name := range slices.Sorted(maps.Keys(m.Aliments)) {
		id, err := resolveID(ctx, s.aliments, aliments, "aliment", name, func(x *models.Aliment) string { return x.ID })
		if err != nil {
			return links, err
		}
		links.Aliments = append(links.Aliments, models.MealAliment{AlimentID: id, Quantity: m.Aliments[name]})
	}
	seen := make(map[string]struct{}, len(m.Preparations))
	for _, desc := range m.Preparations {
		id, err := resolveID(ctx, s.preparations, preparations, "preparation", desc, func(x *models.Preparation) string { return x.ID })
		if err != nil {
			return links, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		links.Preparations = append(links.Preparations, models.MealPreparation{PreparationID: id, Order: len(links.Preparations) + 1})
	}
	for _, name := range uniqueTrimmed(m.Equipments) {
		id, err := resolveID(ctx, s.equipments, equipments, "equipment", name, func(x *models.Equipment) string { return x.ID })
		if err != nil {
			return links, err
		}
		links.Equipments = append(links.Equipments, models.MealEquipment{EquipmentID: id})
	}
	return links, nil
}

func resolveID[T any](ctx context.Context, store NamedStore[T], cache map[string]string, kind, name string, idOf func(*T) string) (string, error) {
	name = strings.TrimSpace(name)
	if id, ok := cache[name]; ok {
		return id, nil
	}
	item, err := store.GetByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %s %q", ErrUnknownReference, kind, name)
		}
		return "", err
	}
	cache[name] = idOf(item)
	return cache[name], nil
}

func upsertByName[T any](ctx context.Context, store NamedStore[T], name string, apply func(*T)) (*T, bool, error) {
	item, err := store.GetByName(ctx, name)
	if err != nil && !isNotFound(err) {
		return nil, false, err
	}
	created := err != nil
	if created {
		item = new(T)
	}
	apply(item)
	if created {
		err = store.Create(ctx, item)
	} else {
		err = store.Update(ctx, item)
	}
	return item, created, err
}
