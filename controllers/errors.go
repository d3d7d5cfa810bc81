package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"nutriplan/repository"
	"nutriplan/services"
)

var notFoundErrors = []error{
	repository.ErrAlimentNotFound,
	repository.ErrMacroNotFound,
	repository.ErrEquipmentNotFound,
	repository.ErrPreparationNotFound,
	repository.ErrMealNotFound,
	repository.ErrUserNotFound,
	repository.ErrProfileNotFound,
}

// respondError writes the JSON error body matching err.
func respondError(c *gin.Context, err error) {
	var genErr *services.MealPlanGenerationError
	if errors.As(err, &genErr) {
		log.Printf("meal generation refused (%s): %s %v", genErr.Kind, genErr.Message, genErr.Details)
		c.JSON(genErr.StatusCode, gin.H{"message": genErr.Message, "details": genErr.Details})
		return
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, gin.H{"message": target.Error()})
			return
		}
	}
	switch {
	case errors.Is(err, services.ErrInvalidAPIKey):
		c.JSON(http.StatusUnauthorized, gin.H{"message": services.ErrInvalidAPIKey.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrUnknownReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"message": "resource already exists"})
	default:
		log.Printf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondBindError answers 422 for failed validation rules and 400 for
// malformed bodies.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "validation failed", "details": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
