package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	apperrors "github.com/Ritu-r8j/DINEEZY-sub001/internal/errors"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	restaurantService service.RestaurantService
}

func NewRestaurantController(restaurantService service.RestaurantService) *RestaurantController {
	return &RestaurantController{
		restaurantService: restaurantService,
	}
}

type RestaurantRequest struct {
	Name                string   `json:"name" binding:"required"`
	Cuisines            []string `json:"cuisines"`
	City                string   `json:"city" binding:"required"`
	Area                string   `json:"area"`
	Address             string   `json:"address"`
	PhoneNumber         string   `json:"phone_number"`
	ImageURL            string   `json:"image_url"`
	CoverURL            string   `json:"cover_url"`
	Description         string   `json:"description"`
	OpenTime            string   `json:"open_time"`
	CloseTime           string   `json:"close_time"`
	CostForTwo          float64  `json:"cost_for_two"`
	AcceptsReservations *bool    `json:"accepts_reservations"`
	IsOpen              *bool    `json:"is_open"`
}

// ListRestaurants returns the catalog with optional filters
// GET /api/v1/restaurants?city=&area=&cuisine=&search=&open_now=&limit=&offset=
func (ctrl *RestaurantController) ListRestaurants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.RestaurantFilter{
		City:    c.Query("city"),
		Area:    c.Query("area"),
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
		OpenNow: c.Query("open_now") == "true",
		Limit:   limit,
		Offset:  offset,
	}

	restaurants, total, err := ctrl.restaurantService.List(filter)
	if err != nil {
		log.Error("Failed to list restaurants", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"total":       total,
	})
}

// GetRestaurant returns a restaurant by numeric ID or slug
// GET /api/v1/restaurants/:idOrSlug
func (ctrl *RestaurantController) GetRestaurant(c *gin.Context) {
	param := c.Param("idOrSlug")

	var (
		restaurant *model.Restaurant
		err        error
	)
	if id, convErr := strconv.ParseUint(param, 10, 32); convErr == nil {
		restaurant, err = ctrl.restaurantService.GetByID(uint(id))
	} else {
		restaurant, err = ctrl.restaurantService.GetBySlug(param)
	}
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMyRestaurants returns restaurants managed by the authenticated owner
// GET /api/v1/restaurants/mine
func (ctrl *RestaurantController) GetMyRestaurants(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	restaurants, err := ctrl.restaurantService.GetOwnerRestaurants(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// CreateRestaurant registers a new restaurant for the authenticated owner
// POST /api/v1/restaurants
func (ctrl *RestaurantController) CreateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	restaurant := restaurantFromRequest(&req)
	if err := ctrl.restaurantService.Create(userID, restaurant); err != nil {
		log.Error("Failed to create restaurant", err, map[string]interface{}{
			"owner_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create restaurant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates an owner's restaurant
// PUT /api/v1/restaurants/:idOrSlug
func (ctrl *RestaurantController) UpdateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	restaurant := restaurantFromRequest(&req)
	restaurant.ID = uint(id)

	if err := ctrl.restaurantService.Update(userID, restaurant); err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			log.Error("Failed to update restaurant", err, map[string]interface{}{
				"restaurant_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update restaurant")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// DeleteRestaurant removes a restaurant
// DELETE /api/v1/restaurants/:idOrSlug
func (ctrl *RestaurantController) DeleteRestaurant(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	role, _ := middleware.GetUserRole(c)
	if err := ctrl.restaurantService.Delete(userID, uint(id), role == model.RoleAdmin); err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete restaurant")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

func restaurantFromRequest(req *RestaurantRequest) *model.Restaurant {
	restaurant := &model.Restaurant{
		Name:        req.Name,
		Cuisines:    model.StringArray(req.Cuisines),
		City:        req.City,
		Area:        req.Area,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		ImageURL:    req.ImageURL,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		CostForTwo:  req.CostForTwo,
	}
	restaurant.AcceptsReservations = req.AcceptsReservations == nil || *req.AcceptsReservations
	restaurant.IsOpen = req.IsOpen == nil || *req.IsOpen
	return restaurant
}
