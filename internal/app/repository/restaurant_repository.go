package repository

import (
	"fmt"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type RestaurantFilter struct {
	Cuisine string
	Search  string
	Limit   int
	Offset  int
}

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	FindWithFilter(filter RestaurantFilter) ([]model.Restaurant, error)
	FindByID(id uint) (*model.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *model.Restaurant) error {
	if err := r.db.Create(restaurant).Error; err != nil {
		logger.Error("Failed to create restaurant", err, map[string]interface{}{
			"name": restaurant.Name,
		})
		return err
	}
	return nil
}

func (r *restaurantRepository) FindWithFilter(filter RestaurantFilter) ([]model.Restaurant, error) {
	query := r.db.Model(&model.Restaurant{})

	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("name LIKE ?", like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var restaurants []model.Restaurant
	if err := query.Order("rating DESC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to find restaurants", err, map[string]interface{}{
			"cuisine": filter.Cuisine,
			"search":  filter.Search,
		})
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}
