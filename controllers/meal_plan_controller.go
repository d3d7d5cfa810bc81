package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutriplan/models"
	"nutriplan/services"
)

type MealPlanController struct {
	plans       *services.MealPlanService
	suggestions *services.MealSuggestionService
}

func NewMealPlanController(plans *services.MealPlanService, suggestions *services.MealSuggestionService) *MealPlanController {
	return &MealPlanController{plans: plans, suggestions: suggestions}
}

// Generate: POST /meal-plans/generate
func (mc *MealPlanController) Generate(c *gin.Context) {
	var params models.MealPlanGenerationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := mc.plans.GenerateMealPlan(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

type suggestionQuery struct {
	TargetCalories      *float64 `form:"targetCalories" binding:"omitempty,gt=0"`
	MaxTime             *int     `form:"maxTime" binding:"omitempty,min=1"`
	ExcludedAliments    string   `form:"excludedAliments"`
	AvailableEquipments string   `form:"availableEquipments"`
	PreferredMacros     string   `form:"preferredMacros"`
	Limit               int      `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Suggestions: GET /meal-suggestions
func (mc *MealPlanController) Suggestions(c *gin.Context) {
	var q suggestionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	meals, err := mc.suggestions.GetSuggestions(c.Request.Context(), services.SuggestionParams{
		TargetCalories:      q.TargetCalories,
		MaxTime:             q.MaxTime,
		ExcludedAliments:    splitCSV(q.ExcludedAliments),
		AvailableEquipments: splitCSV(q.AvailableEquipments),
		PreferredMacros:     q.PreferredMacros,
		Limit:               q.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

type personalizedQuery struct {
	MealType models.MealType `form:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Limit    int             `form:"limit" binding:"omitempty,min=1,max=50"`
}

// PersonalizedSuggestions: GET /users/:userId/meal-suggestions
func (mc *MealPlanController) PersonalizedSuggestions(c *gin.Context) {
	var q personalizedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	meals, err := mc.suggestions.GetPersonalizedSuggestions(c.Request.Context(), c.Param("userId"), q.MealType, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func splitCSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Split(v, ",")
}
