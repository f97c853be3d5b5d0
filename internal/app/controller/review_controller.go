package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	apperrors "github.com/Ritu-r8j/DINEEZY-sub001/internal/errors"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type SubmitReviewRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required"`
	Comment      string `json:"comment"`
}

// SubmitReview creates or updates the user's review for a restaurant
// POST /api/v1/reviews
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	review, err := ctrl.reviewService.Submit(userID, req.RestaurantID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		default:
			log.Error("Failed to submit review", err, map[string]interface{}{
				"user_id":       userID,
				"restaurant_id": req.RestaurantID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create review")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// GetRestaurantReviews lists a restaurant's reviews
// GET /api/v1/restaurants/:idOrSlug/reviews
func (ctrl *ReviewController) GetRestaurantReviews(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant ID"})
		return
	}

	reviews, err := ctrl.reviewService.GetRestaurantReviews(uint(restaurantID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// DeleteReview removes the user's own review
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := ctrl.reviewService.Delete(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		case errors.Is(err, service.ErrReviewAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "This is not your review"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
