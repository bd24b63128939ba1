package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rsnteam/telemart-golang/internal/logger"
	"github.com/rsnteam/telemart-golang/internal/service"
)

//
// --- Cart Handlers (Session-Gated) ---
//

// sessionUserID pulls the authenticated user id set by the auth middleware.
func sessionUserID(c *gin.Context) int64 {
	userIDRaw, _ := c.Get("userID")
	return userIDRaw.(int64)
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddToCart is the handler for POST /cartpost.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := sessionUserID(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item, err := h.Cart.AddItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		default:
			logger.Log.Errorw("cart add failed", "userID", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetCart is the handler for GET /cart. Items come back in insertion
// order, each enriched with its product.
func (h *Handlers) GetCart(c *gin.Context) {
	userID := sessionUserID(c)

	items, err := h.Cart.ListItems(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Errorw("cart listing failed", "userID", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// DeleteCartItem is the handler for DELETE /cart/:id. A nonexistent item
// and another user's item get the identical 404, so existence of other
// users' items never leaks.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	userID := sessionUserID(c)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if err := h.Cart.RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		logger.Log.Errorw("cart item delete failed", "userID", userID, "itemID", itemID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
}

// SendCartEmail is the handler for POST /send-cart-email (and its alias
// POST /cart/send-email). The cart is cleared only after the mail went
// out; a failed dispatch leaves it intact so checkout can be retried.
func (h *Handlers) SendCartEmail(c *gin.Context) {
	userID := sessionUserID(c)

	if err := h.Cart.EmailCart(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.Log.Errorw("cart email failed", "userID", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart sent to email and cleared successfully"})
}
