package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrReservationAccessDenied = errors.New("reservation access denied")
	ErrReservationPastDate     = errors.New("reservation date is in the past")
	ErrReservationInvalidParty = errors.New("invalid party size")
	ErrReservationsNotAccepted = errors.New("restaurant does not accept reservations")
	ErrReservationNotPending   = errors.New("reservation is not pending")
)

const maxPartySize = 20

type ReservationService interface {
	Create(userID, restaurantID uint, date time.Time, timeSlot string, partySize int, note string) (*model.Reservation, error)
	GetUserReservations(userID uint) ([]model.Reservation, error)
	GetRestaurantReservations(ownerID, restaurantID uint) ([]model.Reservation, error)
	Confirm(ownerID, reservationID uint) (*model.Reservation, error)
	Cancel(userID, reservationID uint) error
	ExpireStale() (int64, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	restaurantRepo  repository.RestaurantRepository
	notifications   NotificationService
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	restaurantRepo repository.RestaurantRepository,
	notifications NotificationService,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		notifications:   notifications,
	}
}

func (s *reservationService) Create(userID, restaurantID uint, date time.Time, timeSlot string, partySize int, note string) (*model.Reservation, error) {
	logger.Info("Creating reservation", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
		"date":          date,
		"party_size":    partySize,
	})

	if partySize < 1 || partySize > maxPartySize {
		return nil, ErrReservationInvalidParty
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrReservationPastDate
	}

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !restaurant.AcceptsReservations {
		return nil, ErrReservationsNotAccepted
	}

	reservation := &model.Reservation{
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         date,
		TimeSlot:     timeSlot,
		PartySize:    partySize,
		Status:       model.ReservationStatusPending,
		Note:         note,
	}
	if err := s.reservationRepo.Create(reservation); err != nil {
		return nil, err
	}

	logger.Info("Reservation created", map[string]interface{}{
		"reservation_id": reservation.ID,
	})
	return reservation, nil
}

func (s *reservationService) GetUserReservations(userID uint) ([]model.Reservation, error) {
	return s.reservationRepo.FindByUserID(userID)
}

func (s *reservationService) GetRestaurantReservations(ownerID, restaurantID uint) ([]model.Reservation, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		return nil, ErrRestaurantAccessDenied
	}

	from := time.Now().AddDate(0, 0, -1)
	return s.reservationRepo.FindByRestaurantID(restaurantID, from)
}

func (s *reservationService) Confirm(ownerID, reservationID uint) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	restaurant, err := s.restaurantRepo.FindByID(reservation.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		return nil, ErrReservationAccessDenied
	}

	if reservation.Status != model.ReservationStatusPending {
		return nil, ErrReservationNotPending
	}

	if err := s.reservationRepo.UpdateStatus(reservationID, model.ReservationStatusConfirmed); err != nil {
		return nil, err
	}
	reservation.Status = model.ReservationStatusConfirmed

	go s.notifications.Notify(
		reservation.UserID,
		model.NotificationReservationStatus,
		"Reservation confirmed",
		fmt.Sprintf("Your table at %s on %s %s is confirmed.", restaurant.Name, reservation.Date.Format("Jan 2"), reservation.TimeSlot),
	)

	logger.Info("Reservation confirmed", map[string]interface{}{
		"reservation_id": reservationID,
	})
	return reservation, nil
}

func (s *reservationService) Cancel(userID, reservationID uint) error {
	reservation, err := s.reservationRepo.FindByID(reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	if reservation.UserID != userID {
		return ErrReservationAccessDenied
	}

	if reservation.Status == model.ReservationStatusCompleted || reservation.Status == model.ReservationStatusExpired {
		return ErrReservationNotPending
	}

	if err := s.reservationRepo.UpdateStatus(reservationID, model.ReservationStatusCancelled); err != nil {
		return err
	}

	logger.Info("Reservation cancelled", map[string]interface{}{
		"reservation_id": reservationID,
		"user_id":        userID,
	})
	return nil
}

// ExpireStale marks pending reservations whose date already passed as
// expired. The scheduler calls this periodically.
func (s *reservationService) ExpireStale() (int64, error) {
	count, err := s.reservationRepo.ExpirePendingBefore(time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired stale reservations", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
