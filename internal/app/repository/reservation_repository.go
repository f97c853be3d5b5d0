package repository

import (
	"time"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(reservation *model.Reservation) error
	FindByID(id uint) (*model.Reservation, error)
	FindByUserID(userID uint) ([]model.Reservation, error)
	FindByRestaurantID(restaurantID uint, from time.Time) ([]model.Reservation, error)
	Update(reservation *model.Reservation) error
	UpdateStatus(id uint, status model.ReservationStatus) error
	ExpirePendingBefore(cutoff time.Time) (int64, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(reservation *model.Reservation) error {
	logger.Debug("Creating reservation in database", map[string]interface{}{
		"user_id":       reservation.UserID,
		"restaurant_id": reservation.RestaurantID,
		"date":          reservation.Date,
	})

	if err := r.db.Create(reservation).Error; err != nil {
		logger.Error("Failed to create reservation in database", err, map[string]interface{}{
			"user_id":       reservation.UserID,
			"restaurant_id": reservation.RestaurantID,
		})
		return err
	}
	return nil
}

func (r *reservationRepository) FindByID(id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.Preload("Restaurant").First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByUserID(userID uint) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Where("user_id = ?", userID).
		Preload("Restaurant").
		Order("date DESC, time_slot DESC").
		Find(&reservations).Error
	if err != nil {
		logger.Error("Failed to find reservations by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByRestaurantID(restaurantID uint, from time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Where("restaurant_id = ? AND date >= ?", restaurantID, from).
		Preload("User").
		Order("date ASC, time_slot ASC").
		Find(&reservations).Error
	if err != nil {
		logger.Error("Failed to find reservations by restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) Update(reservation *model.Reservation) error {
	if err := r.db.Save(reservation).Error; err != nil {
		logger.Error("Failed to update reservation in database", err, map[string]interface{}{
			"reservation_id": reservation.ID,
		})
		return err
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(id uint, status model.ReservationStatus) error {
	err := r.db.Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		logger.Error("Failed to update reservation status in database", err, map[string]interface{}{
			"reservation_id": id,
			"status":         status,
		})
		return err
	}
	return nil
}

// ExpirePendingBefore marks pending reservations whose date passed the cutoff
// as expired and returns how many rows changed.
func (r *reservationRepository) ExpirePendingBefore(cutoff time.Time) (int64, error) {
	result := r.db.Model(&model.Reservation{}).
		Where("status = ? AND date < ?", model.ReservationStatusPending, cutoff).
		Update("status", model.ReservationStatusExpired)
	if result.Error != nil {
		logger.Error("Failed to expire pending reservations in database", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
