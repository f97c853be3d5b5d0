package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	apperrors "github.com/Ritu-r8j/DINEEZY-sub001/internal/errors"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	OrderType        string `json:"order_type"`
	DeliveryAddress  string `json:"delivery_address"`
	DeliveryOptionID *uint  `json:"delivery_option_id"`
	PromoCode        string `json:"promo_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var validOrderStatuses = map[model.OrderStatus]bool{
	model.OrderStatusConfirmed: true,
	model.OrderStatusPreparing: true,
	model.OrderStatusOnTheWay:  true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

// Checkout places an order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	orderType := cart.OrderType(req.OrderType)
	if orderType == cart.OrderTypeDelivery && req.DeliveryAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address is required"})
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID, service.CheckoutInput{
		OrderType:        orderType,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryOptionID: req.DeliveryOptionID,
		PromoCode:        req.PromoCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment failed"})
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		}
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders returns the user's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctrl.orderService.GetOrder(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "This is not your order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetRestaurantOrders lists orders for an owner's restaurant
// GET /api/v1/restaurants/:idOrSlug/orders
func (ctrl *OrderController) GetRestaurantOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	restaurantID, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	orders, err := ctrl.orderService.GetRestaurantOrders(userID, uint(restaurantID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus advances an order's lifecycle (owner only)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	status := model.OrderStatus(req.Status)
	if !validOrderStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	order, err := ctrl.orderService.UpdateStatus(userID, uint(id), status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this order"})
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels the user's own order while still cancellable
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctrl.orderService.CancelOrder(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "This is not your order"})
		case errors.Is(err, service.ErrOrderCannotCancel):
			c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
