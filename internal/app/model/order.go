package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Order struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	OrderNumber  string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID       uint          `gorm:"not null;index" json:"user_id"`
	RestaurantID uint          `gorm:"not null;index" json:"restaurant_id"`
	OrderType    string        `gorm:"type:varchar(20);default:'delivery'" json:"order_type"` // delivery, takeaway, dine_in
	Status       OrderStatus   `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`

	// Pricing snapshot taken at checkout; later catalog or config changes do
	// not alter placed orders.
	Subtotal    float64 `gorm:"not null" json:"subtotal"`
	DeliveryFee float64 `gorm:"default:0" json:"delivery_fee"`
	Discount    float64 `gorm:"default:0" json:"discount"`
	Tax         float64 `gorm:"default:0" json:"tax"`
	Total       float64 `gorm:"not null" json:"total"`
	PromoCode   string  `gorm:"type:varchar(50)" json:"promo_code,omitempty"`

	DeliveryAddress  string `gorm:"type:text" json:"delivery_address"`
	EstimatedMinutes int    `gorm:"default:0" json:"estimated_minutes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Restaurant Restaurant  `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"not null;index" json:"order_id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	Name       string         `gorm:"not null" json:"name"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"not null" json:"unit_price"`
	// Human-readable customization snapshot, e.g. "Large; extra cheese, olives"
	CustomizationSnapshot string         `gorm:"type:text" json:"customization_snapshot"`
	CreatedAt             time.Time      `json:"created_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
