package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	Price        float64        `gorm:"not null" json:"price"`
	Description  string         `gorm:"type:text" json:"description"`
	Dishes       pq.StringArray `gorm:"type:text[]" json:"dishes"` // component dishes, used for upgrade matching
	ImageFields  `json:"-" gorm:"embedded"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
