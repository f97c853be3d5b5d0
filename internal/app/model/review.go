package model

import (
	"time"

	"gorm.io/gorm"
)

// Review holds one rating per user per restaurant; the unique index makes
// repeat submissions an update rather than a duplicate.
type Review struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"not null;uniqueIndex:idx_reviews_user_restaurant" json:"user_id"`
	RestaurantID uint           `gorm:"not null;uniqueIndex:idx_reviews_user_restaurant;index" json:"restaurant_id"`
	Rating       int            `gorm:"not null" json:"rating"` // 1-5
	Comment      string         `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
