package model

import "time"

// DishImage is the shared dish photo catalog. Menu items join to it by
// dish name because the menu and photo datasets have no common key.
type DishImage struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	ImageFields `json:"-" gorm:"embedded"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DishImage) TableName() string {
	return "dish_images"
}
