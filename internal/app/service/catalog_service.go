package service

import (
	"strconv"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
)

// RestaurantView is a restaurant with its image URL resolved
type RestaurantView struct {
	model.Restaurant
	ResolvedImageURL string `json:"image_url"`
}

// GroceryView is a grocery product with its image URL resolved
type GroceryView struct {
	model.GroceryProduct
	ResolvedImageURL string `json:"image_url"`
}

// MenuItemView is a menu item with its image URL resolved, falling back
// to the shared dish photo catalog when the item carries no image data.
type MenuItemView struct {
	model.MenuItem
	ResolvedImageURL string `json:"image_url"`
}

type CatalogService interface {
	ListRestaurants(filter repository.RestaurantFilter) ([]RestaurantView, error)
	GetRestaurant(id uint) (*RestaurantView, error)
	ListMenu(restaurantID uint) ([]MenuItemView, error)
	ListGroceries(filter repository.GroceryFilter) ([]GroceryView, error)
	GetGrocery(id uint) (*GroceryView, error)
	ListGroceryCategories() ([]string, error)
}

type catalogService struct {
	restaurants repository.RestaurantRepository
	menu        repository.MenuRepository
	groceries   repository.GroceryRepository
}

func NewCatalogService(
	restaurants repository.RestaurantRepository,
	menu repository.MenuRepository,
	groceries repository.GroceryRepository,
) CatalogService {
	return &catalogService{
		restaurants: restaurants,
		menu:        menu,
		groceries:   groceries,
	}
}

func (s *catalogService) ListRestaurants(filter repository.RestaurantFilter) ([]RestaurantView, error) {
	restaurants, err := s.restaurants.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	views := make([]RestaurantView, 0, len(restaurants))
	for _, r := range restaurants {
		views = append(views, RestaurantView{
			Restaurant:       r,
			ResolvedImageURL: r.ImageFields.Resolve(strconv.Itoa(int(r.ID)), r.Name),
		})
	}
	return views, nil
}

func (s *catalogService) GetRestaurant(id uint) (*RestaurantView, error) {
	r, err := s.restaurants.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &RestaurantView{
		Restaurant:       *r,
		ResolvedImageURL: r.ImageFields.Resolve(strconv.Itoa(int(r.ID)), r.Name),
	}, nil
}

// ListMenu returns a restaurant's menu with images. Items without image
// data of their own borrow the photo filed under their name in the
// shared dish catalog.
func (s *catalogService) ListMenu(restaurantID uint) ([]MenuItemView, error) {
	items, err := s.menu.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	dishImages, err := s.menu.DishImagesByName(names)
	if err != nil {
		// menu data still renders with placeholder images
		logger.Warn("Dish image lookup failed", map[string]interface{}{
			"restaurant_id": restaurantID,
			"error":         err.Error(),
		})
		dishImages = map[string]model.ImageFields{}
	}

	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		fields := item.ImageFields
		if fields == (model.ImageFields{}) {
			if borrowed, ok := dishImages[item.Name]; ok {
				fields = borrowed
			}
		}
		views = append(views, MenuItemView{
			MenuItem:         item,
			ResolvedImageURL: fields.Resolve(strconv.Itoa(int(item.ID)), item.Name),
		})
	}
	return views, nil
}

func (s *catalogService) ListGroceries(filter repository.GroceryFilter) ([]GroceryView, error) {
	products, err := s.groceries.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	views := make([]GroceryView, 0, len(products))
	for _, p := range products {
		views = append(views, GroceryView{
			GroceryProduct:   p,
			ResolvedImageURL: p.ImageFields.Resolve(strconv.Itoa(int(p.ID)), p.Name),
		})
	}
	return views, nil
}

func (s *catalogService) GetGrocery(id uint) (*GroceryView, error) {
	p, err := s.groceries.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &GroceryView{
		GroceryProduct:   *p,
		ResolvedImageURL: p.ImageFields.Resolve(strconv.Itoa(int(p.ID)), p.Name),
	}, nil
}

func (s *catalogService) ListGroceryCategories() ([]string, error) {
	return s.groceries.ListCategories()
}
