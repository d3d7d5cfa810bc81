package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/services"
)

type MealController struct {
	svc *services.MealCatalogService
}

func NewMealController(svc *services.MealCatalogService) *MealController {
	return &MealController{svc: svc}
}

func (mc *MealController) List(c *gin.Context) {
	meals, err := mc.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) Get(c *gin.Context) {
	meal, err := mc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) Create(c *gin.Context) {
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	meal, err := mc.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) Update(c *gin.Context) {
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	meal, err := mc.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) Delete(c *gin.Context) {
	if err := mc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Nutrition: GET /meals/:id/nutrition
func (mc *MealController) Nutrition(c *gin.Context) {
	analysis, err := mc.svc.Nutrition(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
