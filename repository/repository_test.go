package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/config"
	"nutriplan/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.AutoMigrate(db))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type catalogFixture struct {
	protein, carbs       models.Macro
	chicken, rice, salmon models.Aliment
	pan, oven            models.Equipment
	cut, cook            models.Preparation
}

func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()
	ctx := context.Background()
	var f catalogFixture

	macros := NewMacroRepository(db)
	f.protein = models.Macro{Name: "Protéines"}
	f.carbs = models.Macro{Name: "Glucides"}
	require.NoError(t, macros.Create(ctx, &f.protein))
	require.NoError(t, macros.Create(ctx, &f.carbs))

	aliments := NewAlimentRepository(db)
	f.chicken = models.Aliment{Name: "Poulet", Cal100g: 165, Macros: []models.AlimentMacro{{MacroID: f.protein.ID, Quantity: 31}}}
	f.rice = models.Aliment{Name: "Riz basmati", Cal100g: 130, Macros: []models.AlimentMacro{
		{MacroID: f.protein.ID, Quantity: 2.7},
		{MacroID: f.carbs.ID, Quantity: 28},
	}}
	f.salmon = models.Aliment{Name: "Saumon", Cal100g: 208, Macros: []models.AlimentMacro{{MacroID: f.protein.ID, Quantity: 20}}}
	for _, a := range []*models.Aliment{&f.chicken, &f.rice, &f.salmon} {
		require.NoError(t, aliments.Create(ctx, a))
	}

	equipments := NewEquipmentRepository(db)
	f.pan = models.Equipment{Name: "Poêle"}
	f.oven = models.Equipment{Name: "Four"}
	require.NoError(t, equipments.Create(ctx, &f.pan))
	require.NoError(t, equipments.Create(ctx, &f.oven))

	preparations := NewPreparationRepository(db)
	f.cut = models.Preparation{Step: 1, Description: "Couper le poulet", EstimatedTime: 10}
	f.cook = models.Preparation{Step: 2, Description: "Cuire à la poêle", EstimatedTime: 15}
	require.NoError(t, preparations.Create(ctx, &f.cut))
	require.NoError(t, preparations.Create(ctx, &f.cook))

	meals := NewMealRepository(db)
	chickenRice := models.Meal{
		Title:    "Poulet au riz basmati",
		Calories: 450,
		Aliments: []models.MealAliment{{AlimentID: f.chicken.ID, Quantity: 150}, {AlimentID: f.rice.ID, Quantity: 100}},
		Preparations: []models.MealPreparation{
			{PreparationID: f.cook.ID, Order: 2},
			{PreparationID: f.cut.ID, Order: 1},
		},
		Equipments: []models.MealEquipment{{EquipmentID: f.pan.ID}},
	}
	bakedSalmon := models.Meal{
		Title:      "Saumon rôti au four",
		Calories:   520,
		Aliments:   []models.MealAliment{{AlimentID: f.salmon.ID, Quantity: 180}},
		Equipments: []models.MealEquipment{{EquipmentID: f.oven.ID}, {EquipmentID: f.pan.ID}},
	}
	require.NoError(t, meals.Create(ctx, &chickenRice))
	require.NoError(t, meals.Create(ctx, &bakedSalmon))
	return f
}

func titles(meals []models.Meal) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.Title
	}
	return out
}

func TestMealRepositoryFindMealsLoadsAssociations(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)

	meals, err := NewMealRepository(db).FindMeals(context.Background(), MealFilter{})
	require.NoError(t, err)
	require.Len(t, meals, 2)

	chickenRice := meals[0]
	assert.Equal(t, "Poulet au riz basmati", chickenRice.Title)
	require.Len(t, chickenRice.Aliments, 2)
	for _, a := range chickenRice.Aliments {
		require.NotNil(t, a.Aliment)
		require.NotEmpty(t, a.Aliment.Macros)
		assert.NotNil(t, a.Aliment.Macros[0].Macro)
	}
	require.Len(t, chickenRice.Preparations, 2)
	assert.Equal(t, f.cut.ID, chickenRice.Preparations[0].PreparationID, "ordered by position")
	assert.Equal(t, 25, chickenRice.TotalPreparationTime())
	require.Len(t, chickenRice.Equipments, 1)
	assert.Equal(t, "Poêle", chickenRice.Equipments[0].Equipment.Name)
}

func TestMealRepositoryExcludesByAlimentName(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewMealRepository(db)

	meals, err := repo.FindMeals(context.Background(), MealFilter{ExcludedAliments: []string{"Poulet"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Saumon rôti au four"}, titles(meals))

	meals, err = repo.FindMeals(context.Background(), MealFilter{ExcludedAliments: []string{"poulet"}})
	require.NoError(t, err)
	assert.Len(t, meals, 2, "names match case-sensitively")
}

func TestMealRepositoryRequiresAllEquipment(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	repo := NewMealRepository(db)

	meals, err := repo.FindMeals(context.Background(), MealFilter{AvailableEquipments: []string{f.pan.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Poulet au riz basmati"}, titles(meals))

	meals, err = repo.FindMeals(context.Background(), MealFilter{AvailableEquipments: []string{f.pan.ID, f.oven.ID}})
	require.NoError(t, err)
	assert.Len(t, meals, 2)
}

func TestMealRepositoryGetByTitleLoadsAssociations(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	repo := NewMealRepository(db)

	meal, err := repo.GetByTitle(context.Background(), "Poulet au riz basmati")
	require.NoError(t, err)
	require.Len(t, meal.Aliments, 2)
	require.NotNil(t, meal.Aliments[0].Aliment)
	assert.NotEmpty(t, meal.Aliments[0].Aliment.Macros)
	require.Len(t, meal.Preparations, 2)
	assert.Equal(t, f.cut.ID, meal.Preparations[0].PreparationID)
	assert.Equal(t, 25, meal.TotalPreparationTime())
	require.Len(t, meal.Equipments, 1)
	assert.Equal(t, "Poêle", meal.Equipments[0].Equipment.Name)

	_, err = repo.GetByTitle(context.Background(), "Inconnu")
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestMealRepositoryUpdateReplacesLinks(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	repo := NewMealRepository(db)
	ctx := context.Background()

	meal, err := repo.GetByTitle(ctx, "Poulet au riz basmati")
	require.NoError(t, err)
	meal.Calories = 480
	meal.Preparations = nil
	meal.Aliments = []models.MealAliment{{AlimentID: f.salmon.ID, Quantity: 120}}
	require.NoError(t, repo.Update(ctx, meal))

	got, err := repo.GetByID(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 480, got.Calories)
	require.Len(t, got.Aliments, 1)
	assert.Equal(t, "Saumon", got.Aliments[0].Aliment.Name)
	assert.Len(t, got.Preparations, 2, "nil slice keeps existing links")

	require.NoError(t, repo.Delete(ctx, meal.ID))
	_, err = repo.GetByID(ctx, meal.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, meal.ID), ErrMealNotFound)
}

func TestAlimentRepositoryUpdateMacros(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	repo := NewAlimentRepository(db)
	ctx := context.Background()

	rice, err := repo.GetByName(ctx, "Riz basmati")
	require.NoError(t, err)
	require.Len(t, rice.Macros, 2)

	rice.Macros = []models.AlimentMacro{{MacroID: f.carbs.ID, Quantity: 25}}
	require.NoError(t, repo.Update(ctx, rice))

	got, err := repo.GetByID(ctx, rice.ID)
	require.NoError(t, err)
	require.Len(t, got.Macros, 1)
	assert.Equal(t, "Glucides", got.Macros[0].Macro.Name)
	assert.InDelta(t, 25.0, got.Macros[0].Quantity, 0.001)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrAlimentNotFound)
}

func TestCatalogRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewEquipmentRepository(db)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrEquipmentNotFound)
}

func TestUserRepositoryProfileLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := models.User{Email: "ana@example.com"}
	require.NoError(t, repo.CreateUser(ctx, &user))

	_, err := repo.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	weight := 64.0
	dist := models.DefaultMealDistribution()
	profile := models.UserProfile{
		UserID:           user.ID,
		Weight:           &weight,
		Allergies:        models.StringList{"Arachides"},
		ExcludedAliments: models.StringList{"Poulet", "Saumon"},
		MealDistribution: &dist,
	}
	require.NoError(t, repo.SaveProfile(ctx, &profile))

	got, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Poulet", "Saumon"}, []string(got.ExcludedAliments))
	assert.Equal(t, []string{"Arachides"}, []string(got.Allergies))
	assert.Empty(t, got.DislikedFoods)
	require.NotNil(t, got.MealDistribution)
	assert.InDelta(t, 35.0, got.MealDistribution.LunchPercent, 0.001)

	got.MealDistribution = &models.MealDistribution{BreakfastPercent: 20, LunchPercent: 40, DinnerPercent: 30, SnackPercent: 10}
	require.NoError(t, repo.SaveProfile(ctx, got))
	var count int64
	require.NoError(t, db.Model(&models.MealDistribution{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "distribution is upserted")

	now := time.Now()
	require.NoError(t, repo.AddWeight(ctx, &models.WeightHistory{ProfileID: got.ID, Weight: 63, Date: now.Add(-24 * time.Hour)}))
	require.NoError(t, repo.AddWeight(ctx, &models.WeightHistory{ProfileID: got.ID, Weight: 62.5, Date: now}))
	history, err := repo.WeightHistory(ctx, got.ID, nil)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.InDelta(t, 62.5, history[0].Weight, 0.001)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))
	_, err = repo.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAPIKeyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	key := models.APIKey{KeyHash: "abc", IsActive: true}
	require.NoError(t, repo.Create(ctx, &key))

	got, err := repo.FindByHash(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.Usable(time.Now()))

	require.NoError(t, repo.TouchLastUsed(ctx, got.ID, time.Now()))
	got, err = repo.FindByHash(ctx, "abc")
	require.NoError(t, err)
	assert.NotNil(t, got.LastUsedAt)

	_, err = repo.FindByHash(ctx, "zzz")
	assert.ErrorIs(t, err, ErrAPIKeyNotFound)
}
