package service

import (
	"testing"
	"time"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reservationServiceFixture struct {
	service    ReservationService
	db         *gorm.DB
	owner      *model.User
	diner      *model.User
	restaurant *model.Restaurant
	walkInOnly *model.Restaurant
}

func setupReservationServiceTest(t *testing.T) *reservationServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := &model.User{Email: "owner@example.com", PasswordHash: "x", Name: "Owner", Role: model.RoleOwner}
	require.NoError(t, testDB.Create(owner).Error)
	diner := &model.User{Email: "diner@example.com", PasswordHash: "x", Name: "Diner", Role: model.RoleUser}
	require.NoError(t, testDB.Create(diner).Error)

	restaurant := &model.Restaurant{
		Name:                "Pizza Palace",
		City:                "Mumbai",
		OwnerID:             &owner.ID,
		AcceptsReservations: true,
	}
	require.NoError(t, testDB.Create(restaurant).Error)

	walkInOnly := &model.Restaurant{
		Name:                "Street Dosa",
		City:                "Mumbai",
		AcceptsReservations: false,
	}
	require.NoError(t, testDB.Create(walkInOnly).Error)

	notificationService := NewNotificationService(repository.NewNotificationRepository(testDB), nil)
	service := NewReservationService(
		repository.NewReservationRepository(testDB),
		repository.NewRestaurantRepository(testDB),
		notificationService,
	)

	return &reservationServiceFixture{
		service:    service,
		db:         testDB,
		owner:      owner,
		diner:      diner,
		restaurant: restaurant,
		walkInOnly: walkInOnly,
	}
}

func TestReservationService_Create(t *testing.T) {
	fx := setupReservationServiceTest(t)
	tomorrow := time.Now().AddDate(0, 0, 1)

	tests := []struct {
		name         string
		restaurantID uint
		date         time.Time
		partySize    int
		wantErr      error
	}{
		{
			name:         "Valid reservation",
			restaurantID: fx.restaurant.ID,
			date:         tomorrow,
			partySize:    4,
		},
		{
			name:         "Past date",
			restaurantID: fx.restaurant.ID,
			date:         time.Now().AddDate(0, 0, -2),
			partySize:    2,
			wantErr:      ErrReservationPastDate,
		},
		{
			name:         "Party too small",
			restaurantID: fx.restaurant.ID,
			date:         tomorrow,
			partySize:    0,
			wantErr:      ErrReservationInvalidParty,
		},
		{
			name:         "Party too large",
			restaurantID: fx.restaurant.ID,
			date:         tomorrow,
			partySize:    21,
			wantErr:      ErrReservationInvalidParty,
		},
		{
			name:         "Walk-in only restaurant",
			restaurantID: fx.walkInOnly.ID,
			date:         tomorrow,
			partySize:    2,
			wantErr:      ErrReservationsNotAccepted,
		},
		{
			name:         "Unknown restaurant",
			restaurantID: 9999,
			date:         tomorrow,
			partySize:    2,
			wantErr:      ErrRestaurantNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservation, err := fx.service.Create(fx.diner.ID, tt.restaurantID, tt.date, "19:00", tt.partySize, "")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, reservation)
			} else {
				require.NoError(t, err)
				require.NotNil(t, reservation)
				assert.Equal(t, model.ReservationStatusPending, reservation.Status)
				assert.Equal(t, tt.partySize, reservation.PartySize)
			}
		})
	}
}

func TestReservationService_Confirm(t *testing.T) {
	fx := setupReservationServiceTest(t)
	tomorrow := time.Now().AddDate(0, 0, 1)

	reservation, err := fx.service.Create(fx.diner.ID, fx.restaurant.ID, tomorrow, "19:00", 4, "")
	require.NoError(t, err)

	// Only the restaurant's owner may confirm
	_, err = fx.service.Confirm(fx.diner.ID, reservation.ID)
	assert.ErrorIs(t, err, ErrReservationAccessDenied)

	confirmed, err := fx.service.Confirm(fx.owner.ID, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, confirmed.Status)

	// A second confirm is rejected
	_, err = fx.service.Confirm(fx.owner.ID, reservation.ID)
	assert.ErrorIs(t, err, ErrReservationNotPending)
}

func TestReservationService_Cancel(t *testing.T) {
	fx := setupReservationServiceTest(t)
	tomorrow := time.Now().AddDate(0, 0, 1)

	reservation, err := fx.service.Create(fx.diner.ID, fx.restaurant.ID, tomorrow, "19:00", 4, "")
	require.NoError(t, err)

	// Someone else's reservation cannot be cancelled
	err = fx.service.Cancel(fx.owner.ID, reservation.ID)
	assert.ErrorIs(t, err, ErrReservationAccessDenied)

	require.NoError(t, fx.service.Cancel(fx.diner.ID, reservation.ID))

	var stored model.Reservation
	require.NoError(t, fx.db.First(&stored, reservation.ID).Error)
	assert.Equal(t, model.ReservationStatusCancelled, stored.Status)
}

func TestReservationService_ExpireStale(t *testing.T) {
	fx := setupReservationServiceTest(t)

	// Insert a pending reservation whose date has passed, bypassing the
	// service's own past-date validation.
	stale := &model.Reservation{
		UserID:       fx.diner.ID,
		RestaurantID: fx.restaurant.ID,
		Date:         time.Now().AddDate(0, 0, -3),
		TimeSlot:     "19:00",
		PartySize:    2,
		Status:       model.ReservationStatusPending,
	}
	require.NoError(t, fx.db.Create(stale).Error)

	fresh, err := fx.service.Create(fx.diner.ID, fx.restaurant.ID, time.Now().AddDate(0, 0, 1), "20:00", 2, "")
	require.NoError(t, err)

	count, err := fx.service.ExpireStale()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var expired model.Reservation
	require.NoError(t, fx.db.First(&expired, stale.ID).Error)
	assert.Equal(t, model.ReservationStatusExpired, expired.Status)

	var untouched model.Reservation
	require.NoError(t, fx.db.First(&untouched, fresh.ID).Error)
	assert.Equal(t, model.ReservationStatusPending, untouched.Status)

	// Nothing left to expire
	count, err = fx.service.ExpireStale()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReservationService_GetRestaurantReservations(t *testing.T) {
	fx := setupReservationServiceTest(t)
	tomorrow := time.Now().AddDate(0, 0, 1)

	_, err := fx.service.Create(fx.diner.ID, fx.restaurant.ID, tomorrow, "19:00", 4, "window seat please")
	require.NoError(t, err)

	reservations, err := fx.service.GetRestaurantReservations(fx.owner.ID, fx.restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)

	_, err = fx.service.GetRestaurantReservations(fx.diner.ID, fx.restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)
}
