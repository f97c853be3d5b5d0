package model

import (
	"time"

	"gorm.io/gorm"
)

type MenuCategory string

const (
	CategoryStarter MenuCategory = "starter"
	CategoryMain    MenuCategory = "main"
	CategoryDessert MenuCategory = "dessert"
	CategoryDrink   MenuCategory = "drink"
	CategorySide    MenuCategory = "side"
)

type MenuItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	Category     MenuCategory   `gorm:"type:varchar(30);index" json:"category"`
	ImageURL     string         `json:"image_url"`
	IsVeg        bool           `gorm:"default:false" json:"is_veg"`
	Available    bool           `gorm:"default:true;index" json:"available"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Restaurant Restaurant    `gorm:"foreignKey:RestaurantID" json:"-"`
	Variants   []MenuVariant `gorm:"foreignKey:MenuItemID" json:"variants,omitempty"`
	Addons     []MenuAddon   `gorm:"foreignKey:MenuItemID" json:"addons,omitempty"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// MenuVariant is a mutually exclusive size/preparation choice. The cart
// stores at most one per line.
type MenuVariant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	Name       string         `gorm:"not null" json:"name"`
	PriceDelta float64        `gorm:"default:0" json:"price_delta"`
	IsDefault  bool           `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}

func (MenuVariant) TableName() string {
	return "menu_variants"
}

// MenuAddon is an optional extra; a cart line can carry any subset.
type MenuAddon struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	Name       string         `gorm:"not null" json:"name"`
	PriceDelta float64        `gorm:"default:0" json:"price_delta"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}

func (MenuAddon) TableName() string {
	return "menu_addons"
}
