package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray stores a JSON-encoded string list in a TEXT column.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("failed to scan StringArray")
	}
}

type Restaurant struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	OwnerID     *uint       `gorm:"index" json:"owner_id"` // nullable - unclaimed listings have no owner
	Owner       User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"owner,omitempty"`
	Name        string      `gorm:"not null" json:"name"`
	Slug        string      `gorm:"uniqueIndex" json:"slug"`
	Cuisines    StringArray `gorm:"type:text" json:"cuisines"`
	City        string      `gorm:"index;not null" json:"city"`
	Area        string      `gorm:"index" json:"area"`
	Address     string      `gorm:"type:text" json:"address"`
	PhoneNumber string      `gorm:"type:varchar(30)" json:"phone_number"`
	ImageURL    string      `json:"image_url"`
	CoverURL    string      `json:"cover_url"`
	Description string      `gorm:"type:text" json:"description"`
	OpenTime    string      `gorm:"type:varchar(10)" json:"open_time"`  // e.g. "09:00"
	CloseTime   string      `gorm:"type:varchar(10)" json:"close_time"` // e.g. "23:00"
	CostForTwo  float64     `json:"cost_for_two"`

	// Aggregate rating maintained by the review service
	Rating      float64 `gorm:"default:0" json:"rating"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	AcceptsReservations bool `gorm:"default:true" json:"accepts_reservations"`
	IsOpen              bool `gorm:"default:true;index" json:"is_open"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItems       []MenuItem       `gorm:"foreignKey:RestaurantID" json:"menu_items,omitempty"`
	DeliveryOptions []DeliveryOption `gorm:"foreignKey:RestaurantID" json:"delivery_options,omitempty"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// DeliveryOption is one delivery tier a restaurant offers; the fee feeds the
// checkout quote and the estimate feeds the displayed delivery time.
type DeliveryOption struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	RestaurantID     uint           `gorm:"not null;index" json:"restaurant_id"`
	Name             string         `gorm:"not null" json:"name"` // e.g. "Standard", "Express"
	Fee              float64        `gorm:"not null" json:"fee"`
	EstimatedMinutes int            `gorm:"default:45" json:"estimated_minutes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (DeliveryOption) TableName() string {
	return "delivery_options"
}

func generateSlug(city, name string) string {
	slug := fmt.Sprintf("%s-%s", city, name)

	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}

// BeforeCreate assigns a unique slug derived from city and name.
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.Slug != "" {
		return nil
	}

	baseSlug := generateSlug(r.City, r.Name)
	slug := baseSlug

	counter := 1
	for {
		var count int64
		if err := tx.Model(&Restaurant{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}

	r.Slug = slug
	return nil
}
