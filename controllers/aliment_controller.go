package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/services"
)

type AlimentController struct {
	svc *services.AlimentService
}

func NewAlimentController(svc *services.AlimentService) *AlimentController {
	return &AlimentController{svc: svc}
}

func (ac *AlimentController) List(c *gin.Context) {
	aliments, err := ac.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, aliments)
}

func (ac *AlimentController) Get(c *gin.Context) {
	a, err := ac.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AlimentController) Create(c *gin.Context) {
	var in services.AlimentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	a, err := ac.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *AlimentController) Update(c *gin.Context) {
	var in services.AlimentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	a, err := ac.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AlimentController) Delete(c *gin.Context) {
	if err := ac.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
