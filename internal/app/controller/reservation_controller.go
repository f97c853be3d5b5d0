package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/service"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	reservationService service.ReservationService
}

func NewReservationController(reservationService service.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
	}
}

type CreateReservationRequest struct {
	RestaurantID uint   `json:"restaurant_id" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	TimeSlot     string `json:"time_slot" binding:"required"`
	PartySize    int    `json:"party_size" binding:"required,gt=0"`
	Note         string `json:"note"`
}

// CreateReservation books a table
// POST /api/v1/reservations
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	reservation, err := ctrl.reservationService.Create(userID, req.RestaurantID, date, req.TimeSlot, req.PartySize, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrReservationPastDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation date is in the past"})
		case errors.Is(err, service.ErrReservationInvalidParty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid party size"})
		case errors.Is(err, service.ErrReservationsNotAccepted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant does not accept reservations"})
		default:
			log.Error("Failed to create reservation", err, map[string]interface{}{
				"user_id":       userID,
				"restaurant_id": req.RestaurantID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

// GetMyReservations lists the user's reservations
// GET /api/v1/reservations
func (ctrl *ReservationController) GetMyReservations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reservations, err := ctrl.reservationService.GetUserReservations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// GetRestaurantReservations lists upcoming reservations for an owner's restaurant
// GET /api/v1/restaurants/:idOrSlug/reservations
func (ctrl *ReservationController) GetRestaurantReservations(c *gin.Context) {
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

	reservations, err := ctrl.reservationService.GetRestaurantReservations(userID, uint(restaurantID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		case errors.Is(err, service.ErrRestaurantAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// ConfirmReservation confirms a pending reservation (owner only)
// POST /api/v1/reservations/:id/confirm
func (ctrl *ReservationController) ConfirmReservation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := ctrl.reservationService.Confirm(userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, service.ErrReservationAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not manage this restaurant"})
		case errors.Is(err, service.ErrReservationNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation is not pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// CancelReservation cancels the user's own reservation
// DELETE /api/v1/reservations/:id
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := ctrl.reservationService.Cancel(userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		case errors.Is(err, service.ErrReservationAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "This is not your reservation"})
		case errors.Is(err, service.ErrReservationNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "Reservation can no longer be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}
