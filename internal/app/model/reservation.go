package model

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusExpired   ReservationStatus = "expired"
)

type Reservation struct {
	ID           uint              `gorm:"primarykey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	RestaurantID uint              `gorm:"not null;index" json:"restaurant_id"`
	Date         time.Time         `gorm:"not null;index" json:"date"`
	TimeSlot     string            `gorm:"type:varchar(10);not null" json:"time_slot"` // e.g. "19:30"
	PartySize    int               `gorm:"not null" json:"party_size"`
	Status       ReservationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Note         string            `gorm:"type:text" json:"note"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}
