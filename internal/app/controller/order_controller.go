package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	orders repository.OrderRepository
}

func NewOrderController(orders repository.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

// List returns order history. Signed-in users see their account's
// orders; guests see the orders placed under their session.
// GET /api/orders
func (ctrl *OrderController) List(c *gin.Context) {
	var err error
	var orders interface{}

	if userID, ok := middleware.GetUserID(c); ok {
		orders, err = ctrl.orders.FindByUser(userID)
	} else {
		sess := middleware.GetSession(c)
		orders, err = ctrl.orders.FindBySession(sess.ID())
	}
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list orders", err, nil)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Get returns one order with its line items
// GET /api/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid order id")
		return
	}

	order, err := ctrl.orders.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "order not found")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not load order")
		return
	}

	// an order is visible to its session or its owning account only
	sess := middleware.GetSession(c)
	userID, authed := middleware.GetUserID(c)
	owned := order.SessionID == sess.ID() ||
		(authed && order.UserID != nil && *order.UserID == userID)
	if !owned {
		apperrors.Forbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, order)
}
