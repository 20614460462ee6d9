package repository

import (
	"fmt"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type GroceryFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

type GroceryRepository interface {
	Create(product *model.GroceryProduct) error
	BulkCreate(products []model.GroceryProduct, batchSize int) error
	FindWithFilter(filter GroceryFilter) ([]model.GroceryProduct, error)
	FindByID(id uint) (*model.GroceryProduct, error)
	ListCategories() ([]string, error)
}

type groceryRepository struct {
	db *gorm.DB
}

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepository{db: db}
}

func (r *groceryRepository) Create(product *model.GroceryProduct) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create grocery product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *groceryRepository) BulkCreate(products []model.GroceryProduct, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 1000
	}

	logger.Info("Bulk creating grocery products", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create grocery products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *groceryRepository) FindWithFilter(filter GroceryFilter) ([]model.GroceryProduct, error) {
	query := r.db.Model(&model.GroceryProduct{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.GroceryProduct
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find grocery products", err, map[string]interface{}{
			"category": filter.Category,
			"search":   filter.Search,
		})
		return nil, err
	}
	return products, nil
}

func (r *groceryRepository) FindByID(id uint) (*model.GroceryProduct, error) {
	var product model.GroceryProduct
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *groceryRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.GroceryProduct{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		logger.Error("Failed to list grocery categories", err, nil)
		return nil, err
	}
	return categories, nil
}
