package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/services"
)

// CatalogController serves list/get/create/update/delete for one of the
// simple catalog tables (macros, equipments, preparations).
type CatalogController[T any, I services.CatalogInput[T]] struct {
	svc *services.CatalogService[T]
}

func NewCatalogController[T any, I services.CatalogInput[T]](svc *services.CatalogService[T]) *CatalogController[T, I] {
	return &CatalogController[T, I]{svc: svc}
}

func (cc *CatalogController[T, I]) List(c *gin.Context) {
	items, err := cc.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (cc *CatalogController[T, I]) Get(c *gin.Context) {
	item, err := cc.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (cc *CatalogController[T, I]) Create(c *gin.Context) {
	var in I
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := cc.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (cc *CatalogController[T, I]) Update(c *gin.Context) {
	var in I
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := cc.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (cc *CatalogController[T, I]) Delete(c *gin.Context) {
	if err := cc.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
