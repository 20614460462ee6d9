package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/avirtanen/noshcart-backend/config"
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Seeds the catalog from an XLSX workbook. Recognized sheets:
//
//	groceries:   name | category | price | description | image_url
//	restaurants: name | cuisine | description | rating | delivery_eta | image_url
//	menu_items:  restaurant | name | price | description | dishes (comma separated) | image_url
//	dish_images: name | gcp_bucket | gcp_path
//
// Sheets that are missing are simply skipped.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	groceries := readGroceries(f)
	restaurants := readRestaurants(f)
	dishImages := readDishImages(f)

	fmt.Printf("Parsed: %d groceries, %d restaurants, %d dish images\n",
		len(groceries), len(restaurants), len(dishImages))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000

	groceryRepo := repository.NewGroceryRepository(db.GetDB())
	if err := groceryRepo.BulkCreate(groceries, batchSize); err != nil {
		log.Fatal("Failed to import groceries:", err)
	}

	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	restaurantIDs := make(map[string]uint, len(restaurants))
	for i := range restaurants {
		if err := restaurantRepo.Create(&restaurants[i]); err != nil {
			log.Fatal("Failed to import restaurant:", err)
		}
		restaurantIDs[restaurants[i].Name] = restaurants[i].ID
	}

	// menu items reference restaurants by name, so they import last
	menuItems, unmatched := readMenuItems(f, restaurantIDs)
	menuRepo := repository.NewMenuRepository(db.GetDB())
	if err := menuRepo.BulkCreate(menuItems, batchSize); err != nil {
		log.Fatal("Failed to import menu items:", err)
	}
	if unmatched > 0 {
		fmt.Printf("Skipped %d menu items with unknown restaurant names\n", unmatched)
	}

	for i := range dishImages {
		if err := menuRepo.CreateDishImage(&dishImages[i]); err != nil {
			log.Fatal("Failed to import dish image:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Imported: %d groceries, %d restaurants, %d menu items, %d dish images\n",
		len(groceries), len(restaurants), len(menuItems), len(dishImages))
}

func sheetRows(f *excelize.File, sheet string) [][]string {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil
	}
	// first row is the header
	return rows[1:]
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readGroceries(f *excelize.File) []model.GroceryProduct {
	var products []model.GroceryProduct
	seen := make(map[string]bool)
	skipped := 0

	for _, row := range sheetRows(f, "groceries") {
		name := cell(row, 0)
		category := cell(row, 1)
		price, err := strconv.ParseFloat(cell(row, 2), 64)

		if name == "" || category == "" || err != nil || price <= 0 {
			skipped++
			continue
		}

		key := fmt.Sprintf("%s|%s", name, category)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		products = append(products, model.GroceryProduct{
			Name:        name,
			Category:    category,
			Price:       price,
			Description: cell(row, 3),
			ImageFields: model.ImageFields{ImageURL: cell(row, 4)},
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d grocery rows\n", skipped)
	}
	return products
}

func readRestaurants(f *excelize.File) []model.Restaurant {
	var restaurants []model.Restaurant
	seen := make(map[string]bool)

	for _, row := range sheetRows(f, "restaurants") {
		name := cell(row, 0)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		rating, _ := strconv.ParseFloat(cell(row, 3), 64)

		restaurants = append(restaurants, model.Restaurant{
			Name:        name,
			Cuisine:     cell(row, 1),
			Description: cell(row, 2),
			Rating:      rating,
			DeliveryETA: cell(row, 4),
			ImageFields: model.ImageFields{ImageURL: cell(row, 5)},
		})
	}
	return restaurants
}

func readMenuItems(f *excelize.File, restaurantIDs map[string]uint) (items []model.MenuItem, unmatched int) {
	for _, row := range sheetRows(f, "menu_items") {
		restaurantName := cell(row, 0)
		name := cell(row, 1)
		price, err := strconv.ParseFloat(cell(row, 2), 64)

		if restaurantName == "" || name == "" || err != nil || price <= 0 {
			continue
		}

		restaurantID, ok := restaurantIDs[restaurantName]
		if !ok {
			unmatched++
			continue
		}

		var dishes []string
		for _, d := range strings.Split(cell(row, 4), ",") {
			if d = strings.TrimSpace(d); d != "" {
				dishes = append(dishes, d)
			}
		}

		items = append(items, model.MenuItem{
			RestaurantID: restaurantID,
			Name:         name,
			Price:        price,
			Description:  cell(row, 3),
			Dishes:       dishes,
			ImageFields:  model.ImageFields{ImageURL: cell(row, 5)},
		})
	}
	return items, unmatched
}

func readDishImages(f *excelize.File) []model.DishImage {
	var images []model.DishImage
	seen := make(map[string]bool)

	for _, row := range sheetRows(f, "dish_images") {
		name := cell(row, 0)
		bucket := cell(row, 1)
		path := cell(row, 2)

		if name == "" || bucket == "" || path == "" || seen[name] {
			continue
		}
		seen[name] = true

		images = append(images, model.DishImage{
			Name: name,
			ImageFields: model.ImageFields{
				GCPBucket: bucket,
				GCPPath:   path,
			},
		})
	}
	return images
}
