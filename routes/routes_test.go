package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan/config"
	"nutriplan/services"
)

const testKey = "test-static-key"

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxIdleConn: 1, MaxOpenConn: 1})
	require.NoError(t, err)
	t.Cleanup(func() { config.Close(db) })

	cfg := &config.Config{
		Server:    config.ServerConfig{CORSOrigin: "*"},
		Auth:      config.AuthConfig{JWTSecret: "secret", TokenDuration: 1, StaticAPIKey: testKey},
		RateLimit: config.RateLimitConfig{Max: 1000, Window: time.Minute},
	}
	return &testServer{t: t, router: NewRouter(db, cfg, services.NewRealtimeHub())}
}

func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", testKey)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type idBody struct {
	ID string `json:"id"`
}

func (s *testServer) create(path string, body any) string {
	s.t.Helper()
	w := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[idBody](s.t, w).ID
}

// seedMeals creates two protein macro meals of 600 and 330 kcal.
func (s *testServer) seedMeals() {
	protein := s.create("/macros", gin.H{"name": "Protéines"})
	carbs := s.create("/macros", gin.H{"name": "Glucides"})
	chicken := s.create("/aliments", gin.H{"name": "Poulet", "cal_100g": 165, "macros": []gin.H{{"macroId": protein, "quantity": 31}}})
	rice := s.create("/aliments", gin.H{"name": "Riz basmati", "cal_100g": 130, "macros": []gin.H{{"macroId": carbs, "quantity": 28}}})
	pan := s.create("/equipments", gin.H{"name": "Poêle"})
	cook := s.create("/preparations", gin.H{"step": 1, "description": "Cuire le poulet", "estimatedTime": 20})

	s.create("/meals", gin.H{
		"title":        "Poulet au riz basmati",
		"calories":     600,
		"aliments":     []gin.H{{"alimentId": chicken, "quantity": 150}, {"alimentId": rice, "quantity": 250}},
		"preparations": []gin.H{{"preparationId": cook, "order": 1}},
		"equipments":   []string{pan},
	})
	s.create("/meals", gin.H{
		"title":    "Poulet grillé nature",
		"calories": 330,
		"aliments": []gin.H{{"alimentId": chicken, "quantity": 200}},
	})
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())
}

func TestRequiresAPIKey(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/meals", nil, "x-api-key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"invalid or missing api key"}`, w.Body.String())
}

func TestAPIKeyAndTokenFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api-keys", gin.H{"name": "ci", "expires": 7})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	key := decode[struct {
		Key string `json:"key"`
	}](t, w).Key
	require.NotEmpty(t, key)

	w = s.do(http.MethodGet, "/macros", nil, "x-api-key", key)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/auth/token", nil, "x-api-key", key)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[struct {
		Token string `json:"token"`
	}](t, w).Token

	req := httptest.NewRequest(http.MethodGet, "/macros", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogValidationAndReferences(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/macros", gin.H{"name": "P"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/aliments", gin.H{"name": "Poulet", "macros": []gin.H{{"macroId": "ghost", "quantity": 1}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/meals/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"meal not found"}`, w.Body.String())

	s.create("/equipments", gin.H{"name": "Four"})
	w = s.do(http.MethodPost, "/equipments", gin.H{"name": "Four"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMealNutritionEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seedMeals()

	meals := decode[[]idBody](t, s.do(http.MethodGet, "/meals", nil))
	require.Len(t, meals, 2)

	w := s.do(http.MethodGet, "/meals/"+meals[1].ID+"/nutrition", nil)
	require.Equal(t, http.StatusOK, w.Code)
	analysis := decode[struct {
		AlimentCalories float64 `json:"alimentCalories"`
		Nutrition       struct {
			Protein float64 `json:"protein"`
		} `json:"nutrition"`
	}](t, w)
	// meals are listed by title: "Poulet grillé nature" sorts after "Poulet au riz basmati"
	assert.InDelta(t, 330.0, analysis.AlimentCalories, 0.01)
	assert.InDelta(t, 62.0, analysis.Nutrition.Protein, 0.01)
}

func TestGenerateMealPlanEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seedMeals()

	w := s.do(http.MethodPost, "/meal-plans/generate", gin.H{"objectives": gin.H{"targetCalories": 1500}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[struct {
		DailyPlan struct {
			Meals []struct {
				MealType string `json:"mealType"`
			} `json:"meals"`
		} `json:"dailyPlan"`
	}](t, w)
	assert.NotEmpty(t, plan.DailyPlan.Meals)

	w = s.do(http.MethodPost, "/meal-plans/generate", gin.H{"objectives": gin.H{"targetCalories": 900}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/meal-plans/generate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/meal-plans/generate", gin.H{
		"objectives":  gin.H{"targetCalories": 1500},
		"constraints": gin.H{"excludedAliments": []string{"Poulet"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "no meal satisfies these constraints", body["message"])
	assert.Contains(t, body, "details")

	w = s.do(http.MethodPost, "/meal-plans/generate", gin.H{"userId": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserProfileFlow(t *testing.T) {
	s := newTestServer(t)
	s.seedMeals()

	userID := s.create("/users", gin.H{"email": "lea@example.com"})

	w := s.do(http.MethodPost, "/users/"+userID+"/profile", gin.H{
		"gender":        "FEMALE",
		"birthDate":     "1992-04-10",
		"height":        165,
		"weight":        60,
		"activityLevel": "MODERATELY_ACTIVE",
		"goal":          "MAINTAIN_WEIGHT",
		"measuredBMR":   1400,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile := decode[struct {
		TargetCalories float64 `json:"targetCalories"`
	}](t, w)
	assert.InDelta(t, 2170.0, profile.TargetCalories, 0.01)

	w = s.do(http.MethodPut, "/users/"+userID+"/profile", gin.H{"activityLevel": "LAZY"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/users/"+userID+"/profile/calculated-needs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	needs := decode[struct {
		MealCalories struct {
			Lunch int `json:"lunch"`
		} `json:"mealCalories"`
	}](t, w)
	assert.Equal(t, 760, needs.MealCalories.Lunch)

	w = s.do(http.MethodPost, "/users/"+userID+"/history/weight", gin.H{"weight": 58.5})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodGet, "/users/"+userID+"/history/weight", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(http.MethodGet, "/users/"+userID+"/meal-suggestions?mealType=lunch&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[[]idBody](t, w))

	w = s.do(http.MethodGet, "/users/"+userID+"/meal-suggestions?mealType=brunch", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodDelete, "/users/"+userID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/users/"+userID+"/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seedMeals()

	w := s.do(http.MethodGet, "/meal-suggestions?targetCalories=350&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[[]struct {
		Title          string  `json:"title"`
		RelevanceScore float64 `json:"relevanceScore"`
	}](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "Poulet grillé nature", got[0].Title)

	w = s.do(http.MethodGet, "/meal-suggestions?excludedAliments=Poulet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]idBody](t, w))

	w = s.do(http.MethodGet, "/meal-suggestions?limit=500", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
