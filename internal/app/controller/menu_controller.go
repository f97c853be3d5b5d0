package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menuService service.MenuService
}

func NewMenuController(menuService service.MenuService) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

type MenuVariantRequest struct {
	Name       string  `json:"name" binding:"required"`
	PriceDelta float64 `json:"price_delta"`
	IsDefault  bool    `json:"is_default"`
}

type MenuAddonRequest struct {
	Name       string  `json:"name" binding:"required"`
	PriceDelta float64 `json:"price_delta"`
}

type MenuItemRequest struct {
	RestaurantID uint                 `json:"restaurant_id" binding:"required"`
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	Price        float64              `json:"price" binding:"required,gt=0"`
	Category     string               `json:"category"`
	ImageURL     string               `json:"image_url"`
	IsVeg        bool                 `json:"is_veg"`
	Available    *bool                `json:"available"`
	Variants     []MenuVariantRequest `json:"variants"`
	Addons       []MenuAddonRequest   `json:"addons"`
}

// GetMenu returns a restaurant's menu
// GET /api/v1/restaurants/:idOrSlug/menu
func (ctrl *MenuController) GetMenu(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	// Owners see unavailable items too
	_, isOwner := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	availableOnly := !(isOwner && (role == model.RoleOwner || role == model.RoleAdmin))

	items, err := ctrl.menuService.GetMenu(uint(restaurantID), availableOnly)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

// GetMenuItem returns one menu item with variants and addons
// GET /api/v1/menu/:id
func (ctrl *MenuController) GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	item, err := ctrl.menuService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// CreateMenuItem adds an item to the owner's restaurant menu
// POST /api/v1/menu
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item := menuItemFromRequest(&req)
	if err := ctrl.menuService.CreateItem(userID, item); err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			log.Error("Failed to create menu item", err, map[string]interface{}{
				"restaurant_id": req.RestaurantID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// UpdateMenuItem updates an item on the owner's menu
// PUT /api/v1/menu/:id
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item := menuItemFromRequest(&req)
	item.ID = uint(id)

	if err := ctrl.menuService.UpdateItem(userID, item); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			log.Error("Failed to update menu item", err, map[string]interface{}{
				"menu_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem removes an item from the owner's menu
// DELETE /api/v1/menu/:id
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	if err := ctrl.menuService.DeleteItem(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

func menuItemFromRequest(req *MenuItemRequest) *model.MenuItem {
	item := &model.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     model.MenuCategory(req.Category),
		ImageURL:     req.ImageURL,
		IsVeg:        req.IsVeg,
	}
	item.Available = req.Available == nil || *req.Available

	for _, v := range req.Variants {
		item.Variants = append(item.Variants, model.MenuVariant{
			Name:       v.Name,
			PriceDelta: v.PriceDelta,
			IsDefault:  v.IsDefault,
		})
	}
	for _, a := range req.Addons {
		item.Addons = append(item.Addons, model.MenuAddon{
			Name:       a.Name,
			PriceDelta: a.PriceDelta,
		})
	}
	return item
}
