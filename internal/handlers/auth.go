package handlers

import (
	"net/http"

	"orvia_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users  *services.UserService
	tokens *services.TokenIssuer
}

func NewAuthHandler(users *services.UserService, tokens *services.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,tldemail"`
		Password string `json:"password" binding:"required,password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokens.GenerateAuthTokens(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,tldemail"`
		Password string `json:"password" binding:"required,password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokens.GenerateAuthTokens(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}
