package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"orvia_back_end/internal/models"
	"orvia_back_end/internal/services"
	"orvia_back_end/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products *services.ProductService
	uploader *storage.Uploader
}

func NewProductHandler(products *services.ProductService, uploader *storage.Uploader) *ProductHandler {
	return &ProductHandler{products: products, uploader: uploader}
}

// GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /v1/products/:productId
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /v1/products/search?value=...
func (h *ProductHandler) Search(c *gin.Context) {
	value := c.Query("value")
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'value' requis"})
		return
	}

	results, err := h.products.Search(c.Request.Context(), value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var input struct {
		Name     string  `json:"name" binding:"required"`
		Category string  `json:"category" binding:"required"`
		Cost     float64 `json:"cost" binding:"required,gte=0"`
		Rating   int     `json:"rating" binding:"gte=0,lte=5"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), &models.Product{
		Name:     input.Name,
		Category: input.Category,
		Cost:     input.Cost,
		Rating:   input.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// POST /v1/products/:productId/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier 'image' requis"})
		return
	}

	productID := c.Param("productId")
	objectName := fmt.Sprintf("%s/%s%s", productID, uuid.NewString(), filepath.Ext(file.Filename))

	url, err := h.uploader.UploadFile(c.Request.Context(), objectName, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	product, err := h.products.AttachImage(c.Request.Context(), productID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
