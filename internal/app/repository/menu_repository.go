package repository

import (
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	BulkCreate(items []model.MenuItem, batchSize int) error
	ListByRestaurant(restaurantID uint) ([]model.MenuItem, error)
	FindByID(id uint) (*model.MenuItem, error)
	DishImagesByName(names []string) (map[string]model.ImageFields, error)
	CreateDishImage(image *model.DishImage) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *model.MenuItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item", err, map[string]interface{}{
			"name":          item.Name,
			"restaurant_id": item.RestaurantID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) BulkCreate(items []model.MenuItem, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	if err := r.db.CreateInBatches(items, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create menu items", err, map[string]interface{}{
			"count": len(items),
		})
		return err
	}
	return nil
}

func (r *menuRepository) ListByRestaurant(restaurantID uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to list menu items", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DishImagesByName looks up the shared dish photo catalog for a set of
// dish names. The menu and photo datasets share no id, so name is the
// join key.
func (r *menuRepository) DishImagesByName(names []string) (map[string]model.ImageFields, error) {
	if len(names) == 0 {
		return map[string]model.ImageFields{}, nil
	}

	var images []model.DishImage
	if err := r.db.Where("name IN ?", names).Find(&images).Error; err != nil {
		logger.Error("Failed to look up dish images", err, map[string]interface{}{
			"names": len(names),
		})
		return nil, err
	}

	result := make(map[string]model.ImageFields, len(images))
	for _, img := range images {
		result[img.Name] = img.ImageFields
	}
	return result, nil
}

func (r *menuRepository) CreateDishImage(image *model.DishImage) error {
	return r.db.Create(image).Error
}
