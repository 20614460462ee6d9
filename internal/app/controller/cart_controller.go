package controller

import (
	"errors"
	"net/http"

	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addItemRequest struct {
	Type string `json:"type" binding:"required,oneof=grocery menu"`
	ID   uint   `json:"id" binding:"required"`
}

type optimizeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// GetCart returns the full cart view for the session
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, ctrl.cartService.View(sess))
}

// AddItem puts one unit of a catalog item in the cart
// POST /api/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "type must be grocery or menu and id is required")
		return
	}

	sess := middleware.GetSession(c)

	var err error
	if req.Type == "grocery" {
		err = ctrl.cartService.AddGroceryItem(sess, req.ID)
	} else {
		err = ctrl.cartService.AddMenuItem(sess, req.ID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "catalog item not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to add item to cart", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, ctrl.cartService.View(sess))
}

// RemoveItem takes one unit of an item out of the cart
// DELETE /api/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctrl.cartService.RemoveItem(sess, c.Param("id"))
	c.JSON(http.StatusOK, ctrl.cartService.View(sess))
}

// ReplaceItem swaps an item for the recommendation its cursor points at
// POST /api/cart/items/:id/replace
func (ctrl *CartController) ReplaceItem(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := ctrl.cartService.ReplaceItem(sess, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "item is not in the cart")
		case errors.Is(err, cart.ErrNoRecommendations):
			apperrors.BadRequest(c, apperrors.OptimizeFetchFailed, "no recommendation available for this item")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to replace cart item", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, ctrl.cartService.View(sess))
}

// ClearCart empties the session
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctrl.cartService.ClearCart(sess)
	c.JSON(http.StatusOK, ctrl.cartService.View(sess))
}

// Optimize starts a recommendation fetch for the cart
// POST /api/cart/optimize
func (ctrl *CartController) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "mode is required")
		return
	}

	sess := middleware.GetSession(c)

	if err := ctrl.cartService.Optimize(sess, cart.Mode(req.Mode)); err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidOptimizeMode):
			apperrors.BadRequest(c, apperrors.OptimizeInvalidMode, "mode must be healthy or money")
		case errors.Is(err, cart.ErrNoGroceryItems):
			apperrors.BadRequest(c, apperrors.OptimizeNoGroceryItems, "add a grocery item to use healthy mode")
		case errors.Is(err, cart.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "add an item before optimizing")
		case errors.Is(err, cart.ErrOptimizationRunning):
			apperrors.Conflict(c, apperrors.OptimizeFetchFailed, "an optimization is already running")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to start optimization", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"optimization_state": sess.State(),
		"optimization_mode":  sess.Mode(),
	})
}

// Navigate moves the recommendation cursor for an item
// POST /api/cart/items/:id/navigate
func (ctrl *CartController) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "direction is required")
		return
	}

	sess := middleware.GetSession(c)

	cursor, err := ctrl.cartService.Navigate(sess, c.Param("id"), req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNoRecommendations):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "no recommendations for this item")
		case errors.Is(err, cart.ErrInvalidDirection):
			apperrors.BadRequest(c, apperrors.OptimizeInvalidDirection, "direction must be prev or next")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	current, _ := sess.CurrentCandidate(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"cursor":  cursor,
		"current": current,
	})
}
