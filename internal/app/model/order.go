package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SessionID string         `gorm:"type:varchar(64);index" json:"session_id"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Status    OrderStatus    `gorm:"type:varchar(20);default:'placed'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Subtotal         float64 `gorm:"not null" json:"subtotal"`
	ServiceFee       float64 `gorm:"not null" json:"service_fee"`
	DeliveryFee      float64 `gorm:"not null" json:"delivery_fee"`
	Tip              float64 `json:"tip"`
	Savings          float64 `json:"savings"`
	Total            float64 `gorm:"not null" json:"total"`
	PriorityDelivery bool    `json:"priority_delivery"`
	PaymentMethod    string  `gorm:"type:varchar(50);not null" json:"payment_method"`

	AddressLine  string `json:"address_line"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Instructions string `gorm:"type:text" json:"instructions"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem keeps the original unit price next to the paid price so the
// savings on a replaced item stay auditable after checkout.
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	ItemRef           string  `gorm:"type:varchar(64);not null" json:"item_ref"` // catalog or candidate id
	Name              string  `gorm:"not null" json:"name"`
	Category          string  `gorm:"type:varchar(100)" json:"category"`
	RestaurantID      string  `gorm:"type:varchar(64)" json:"restaurant_id,omitempty"`
	Quantity          int     `gorm:"not null" json:"quantity"`
	UnitPrice         float64 `gorm:"not null" json:"unit_price"`
	OriginalUnitPrice float64 `gorm:"not null" json:"original_unit_price"`

	CreatedAt time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
