package db

import (
	"fmt"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	appLogger "github.com/avirtanen/noshcart-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	appLogger.Info("Running database migrations", nil)

	err := db.AutoMigrate(
		&model.User{},
		&model.Restaurant{},
		&model.MenuItem{},
		&model.DishImage{},
		&model.GroceryProduct{},
		&model.Order{},
		&model.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appLogger.Info("Database migrations completed", nil)
	return nil
}
