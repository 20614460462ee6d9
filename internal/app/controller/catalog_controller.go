package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogController serves the restaurant and grocery browse surface
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListRestaurants returns restaurants ordered by rating
// GET /api/restaurants?cuisine=&search=&limit=&offset=
func (ctrl *CatalogController) ListRestaurants(c *gin.Context) {
	filter := repository.RestaurantFilter{
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
	}

	restaurants, err := ctrl.catalogService.ListRestaurants(filter)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list restaurants", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load restaurants")
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurant returns one restaurant
// GET /api/restaurants/:id
func (ctrl *CatalogController) GetRestaurant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	restaurant, err := ctrl.catalogService.GetRestaurant(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.CatalogRestaurantNotFound, "restaurant not found")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load restaurant")
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// GetMenu returns a restaurant's menu with resolved images
// GET /api/restaurants/:id/menu
func (ctrl *CatalogController) GetMenu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := ctrl.catalogService.GetRestaurant(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.CatalogRestaurantNotFound, "restaurant not found")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load restaurant")
		return
	}

	menu, err := ctrl.catalogService.ListMenu(id)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// ListGroceries returns grocery products with optional filters
// GET /api/groceries?category=&search=&limit=&offset=
func (ctrl *CatalogController) ListGroceries(c *gin.Context) {
	filter := repository.GroceryFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}

	products, err := ctrl.catalogService.ListGroceries(filter)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list groceries", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load groceries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetGrocery returns one grocery product
// GET /api/groceries/:id
func (ctrl *CatalogController) GetGrocery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetGrocery(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "grocery product not found")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListGroceryCategories returns the distinct grocery categories
// GET /api/groceries/categories
func (ctrl *CatalogController) ListGroceryCategories(c *gin.Context) {
	categories, err := ctrl.catalogService.ListGroceryCategories()
	if err != nil {
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
