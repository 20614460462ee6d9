package model

import (
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Cuisine     string         `gorm:"type:varchar(100)" json:"cuisine"`
	Description string         `gorm:"type:text" json:"description"`
	Rating      float64        `json:"rating"`
	DeliveryETA string         `json:"delivery_eta"` // e.g. "25-35 min"
	ImageFields `json:"-" gorm:"embedded"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
