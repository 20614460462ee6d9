package model

import (
	"time"

	"gorm.io/gorm"
)

type GroceryProduct struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	ImageFields `json:"-" gorm:"embedded"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GroceryProduct) TableName() string {
	return "grocery_products"
}
