package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/services"
)

type UserController struct {
	svc *services.UserProfileService
}

func NewUserController(svc *services.UserProfileService) *UserController {
	return &UserController{svc: svc}
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := uc.svc.CreateUser(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (uc *UserController) GetUser(c *gin.Context) {
	u, err := uc.svc.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	u, err := uc.svc.UpdateUser(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.svc.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	p, err := uc.svc.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveProfile: POST creates the profile or applies the fields to the existing one.
func (uc *UserController) SaveProfile(c *gin.Context) {
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := uc.svc.CreateOrUpdateProfile(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := uc.svc.UpdateProfile(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (uc *UserController) DeleteProfile(c *gin.Context) {
	if err := uc.svc.DeleteProfile(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (uc *UserController) CalculatedNeeds(c *gin.Context) {
	needs, err := uc.svc.GetCalculatedNeeds(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, needs)
}

func (uc *UserController) Recalculate(c *gin.Context) {
	needs, err := uc.svc.RecalculateNeeds(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, needs)
}

func (uc *UserController) AddWeight(c *gin.Context) {
	var in services.WeightInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	entry, err := uc.svc.AddWeight(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (uc *UserController) WeightHistory(c *gin.Context) {
	var q struct {
		Days int `form:"days" binding:"omitempty,min=1,max=3650"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	entries, err := uc.svc.WeightHistory(c.Request.Context(), c.Param("userId"), q.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (uc *UserController) AddMealConsumption(c *gin.Context) {
	var in services.MealConsumptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	entry, err := uc.svc.AddMealConsumption(c.Request.Context(), c.Param("userId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (uc *UserController) MealHistory(c *gin.Context) {
	entries, err := uc.svc.MealHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// SetMealPreference: POST /users/:userId/preferences/meals/:mealId {"preference": "liked"}
func (uc *UserController) SetMealPreference(c *gin.Context) {
	var body struct {
		Preference services.MealPreference `json:"preference" binding:"required,oneof=liked disliked neutral"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := uc.svc.SetMealPreference(c.Request.Context(), c.Param("userId"), c.Param("mealId"), body.Preference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likedMeals": p.LikedMeals, "dislikedMeals": p.DislikedMeals})
}
