package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/models"
)

// GetProducts is the handler for GET /products. An empty catalog is a
// valid (empty list) response.
func (h *Handlers) GetProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		logger.Log.Errorw("product listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductsByCategory is the handler for GET /products/:category.
// Matching is exact.
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")

	products, err := h.Store.ListProductsByCategory(c.Request.Context(), category)
	if err != nil {
		logger.Log.Errorw("product listing by category failed", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProductsInput is the bulk-insert payload: {"data": [...]}.
type CreateProductsInput struct {
	Data []models.Product `json:"data"`
}

// CreateProducts is the handler for POST /newproducts. Rows colliding on
// a unique key are skipped, not upserted; the response reports how many
// rows actually went in.
func (h *Handlers) CreateProducts(c *gin.Context) {
	var input CreateProductsInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Data == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data must be an array"})
		return
	}

	count, err := h.Store.InsertProducts(c.Request.Context(), input.Data)
	if err != nil {
		logger.Log.Errorw("bulk product insert failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products created",
		"count":   count,
	})
}
