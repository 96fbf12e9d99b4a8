package handlers

import (
	"net/http"

	"orvia_back_end/internal/cache"
	"orvia_back_end/internal/middleware"
	"orvia_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
	cache *cache.Cache
}

func NewUserHandler(users *services.UserService, userCache *cache.Cache) *UserHandler {
	return &UserHandler{users: users, cache: userCache}
}

// GET /v1/users/:userId — chacun ne peut lire que son propre compte.
// Avec ?q=address, seuls l'email et l'adresse sont renvoyés.
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if c.Param("userId") != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès interdit"})
		return
	}

	if c.Query("q") == "address" {
		c.JSON(http.StatusOK, gin.H{
			"user_id": user.ID,
			"email":   user.Email,
			"address": user.Address,
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT /v1/users/:userId — met à jour l'adresse de livraison.
func (h *UserHandler) SetAddress(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if c.Param("userId") != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès interdit"})
		return
	}

	var input struct {
		Address string `json:"address" binding:"required,min=20"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetAddress(c.Request.Context(), user, input.Address); err != nil {
		respondError(c, err)
		return
	}

	h.cache.InvalidateUser(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{"address": user.Address})
}
