package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/services"
)

type AuthController struct {
	keys *services.APIKeyService
}

func NewAuthController(keys *services.APIKeyService) *AuthController {
	return &AuthController{keys: keys}
}

// CreateAPIKey: POST /api-keys. The key is only ever shown in this response.
func (ac *AuthController) CreateAPIKey(c *gin.Context) {
	var body struct {
		Name    string `json:"name" binding:"max=100"`
		Expires *int   `json:"expires" binding:"omitempty,min=1,max=3650"`
	}
	// an empty body creates an unnamed key without expiry
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}
	key, record, err := ac.keys.CreateKey(c.Request.Context(), body.Name, body.Expires)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"key":       key,
		"id":        record.ID,
		"name":      record.Name,
		"expiresAt": record.ExpiresAt,
	})
}

// IssueToken: POST /auth/token with the key in x-api-key or the body.
func (ac *AuthController) IssueToken(c *gin.Context) {
	key := c.GetHeader("x-api-key")
	if key == "" {
		var body struct {
			APIKey string `json:"apiKey"`
		}
		_ = c.ShouldBindJSON(&body)
		key = body.APIKey
	}
	token, expires, err := ac.keys.IssueToken(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "tokenType": "Bearer", "expiresAt": expires})
}
