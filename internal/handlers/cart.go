package handlers

import (
	"net/http"

	"orvia_back_end/internal/cache"
	"orvia_back_end/internal/middleware"
	"orvia_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts *services.CartManager
	cache *cache.Cache
}

func NewCartHandler(carts *services.CartManager, userCache *cache.Cache) *CartHandler {
	return &CartHandler{carts: carts, cache: userCache}
}

// GET /v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	cart, err := h.carts.GetCartByUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// POST /v1/cart
func (h *CartHandler) Add(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.carts.AddProductToCart(c.Request.Context(), user, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// PUT /v1/cart
func (h *CartHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.carts.UpdateProductInCart(c.Request.Context(), user, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// DELETE /v1/cart/:productId
func (h *CartHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.carts.DeleteProductFromCart(c.Request.Context(), user, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /v1/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.carts.Checkout(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	// Le wallet a changé : le cache utilisateur doit être relu
	h.cache.InvalidateUser(c.Request.Context(), user.ID)

	c.Status(http.StatusNoContent)
}
