package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	VariantID  *uint  `json:"variant_id"`
	AddonIDs   []uint `json:"addon_ids"`
}

// Quantity is a pointer so zero survives binding: zero or less removes the
// line, and only a missing field is rejected.
type UpdateCartLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the user's cart with quoted totals
// GET /api/v1/cart?order_type=delivery&promo_code=...
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orderType := cart.OrderType(c.DefaultQuery("order_type", string(cart.OrderTypeDelivery)))
	promoCode := c.Query("promo_code")

	view := ctrl.cartService.GetCart(c.Request.Context(), userID, orderType, promoCode)

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   view.Count,
		"total":   view.Totals.Total,
	})

	c.JSON(http.StatusOK, view)
}

// AddToCart adds a menu item to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := ctrl.cartService.AddItem(c.Request.Context(), userID, req.MenuItemID, req.Quantity, req.VariantID, req.AddonIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		case errors.Is(err, service.ErrMenuItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item is currently unavailable"})
		case errors.Is(err, service.ErrInvalidVariant), errors.Is(err, service.ErrInvalidAddon):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customization"})
		case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidItem):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item or quantity"})
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":      userID,
				"menu_item_id": req.MenuItemID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"user_id":      userID,
		"menu_item_id": req.MenuItemID,
		"quantity":     req.Quantity,
		"replaced":     result.Replaced,
	})

	c.JSON(http.StatusCreated, gin.H{
		"items":    result.Items,
		"count":    result.Count,
		"replaced": result.Replaced,
	})
}

// CheckConflict reports whether adding from a restaurant would replace the cart
// GET /api/v1/cart/conflict/:restaurantId
func (ctrl *CartController) CheckConflict(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	restaurantID, err := strconv.ParseUint(c.Param("restaurantId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	conflict := ctrl.cartService.CheckRestaurantConflict(c.Request.Context(), userID, uint(restaurantID))
	c.JSON(http.StatusOK, gin.H{"conflict": conflict})
}

// UpdateCartLine sets a cart line's quantity; zero or less removes it
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartLine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartItemID := c.Param("id")
	if cartItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
		return
	}

	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	items := ctrl.cartService.UpdateQuantity(c.Request.Context(), userID, cartItemID, *req.Quantity)

	log.Info("Cart line updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     *req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveFromCart removes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartItemID := c.Param("id")
	items := ctrl.cartService.RemoveItem(c.Request.Context(), userID, cartItemID)

	log.Info("Cart line removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctrl.cartService.ClearCart(c.Request.Context(), userID)

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}
