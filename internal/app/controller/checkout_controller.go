package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// GetQuote returns the fee breakdown for the current cart
// GET /api/checkout/quote?priority=true&tip=2
func (ctrl *CheckoutController) GetQuote(c *gin.Context) {
	sess := middleware.GetSession(c)

	priority := c.Query("priority") == "true"

	tip := 0.0
	if raw := c.Query("tip"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.CheckoutInvalidTip, "tip must be a number")
			return
		}
		tip = parsed
	}

	quote, err := ctrl.checkoutService.Quote(sess, priority, tip)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTip) {
			apperrors.BadRequest(c, apperrors.CheckoutInvalidTip, "tip must not be negative")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote":       quote,
		"tip_presets": service.TipPresets,
	})
}

// PlaceOrder turns the cart into a persisted order
// POST /api/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	var req service.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid checkout payload")
		return
	}

	// orders placed while signed in are linked to the account
	if userID, ok := middleware.GetUserID(c); ok {
		req.UserID = &userID
	}

	sess := middleware.GetSession(c)

	order, err := ctrl.checkoutService.PlaceOrder(c.Request.Context(), sess, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CheckoutCartEmpty, "cart is empty")
		case errors.Is(err, service.ErrPaymentRequired):
			apperrors.BadRequest(c, apperrors.CheckoutPaymentRequired, "select a payment method first")
		case errors.Is(err, service.ErrInvalidTip):
			apperrors.BadRequest(c, apperrors.CheckoutInvalidTip, "tip must not be negative")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to place order", err, map[string]interface{}{
				"session_id": sess.ID(),
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalDatabaseError, "could not place the order")
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}
