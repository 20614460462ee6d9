package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
)

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrPaymentRequired = errors.New("payment method is required")
	ErrInvalidTip      = errors.New("tip must not be negative")
)

const (
	serviceFeeRate      = 0.08
	priorityDeliveryFee = 1.99
	baseDeliveryFee     = 3.99 // waived under the current free-delivery promotion
	plusDiscount        = 0.31
)

// TipPresets are the quick-pick tip amounts offered at checkout; any
// non-negative custom amount is also accepted.
var TipPresets = []float64{0, 1, 2, 5}

// Quote is the fee breakdown for the current cart
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	ServiceFee  float64 `json:"service_fee"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tip         float64 `json:"tip"`
	Savings     float64 `json:"savings"`
	Total       float64 `json:"total"`
	// PlusTotal is the loyalty-program display price, not what is charged
	PlusTotal    float64 `json:"plus_total"`
	DisplayTotal string  `json:"display_total"`
}

// PlaceOrderRequest carries everything checkout needs beyond the cart
type PlaceOrderRequest struct {
	PaymentMethod    string  `json:"payment_method"`
	Tip              float64 `json:"tip"`
	PriorityDelivery bool    `json:"priority_delivery"`

	AddressLine  string `json:"address_line"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions"`

	UserID *uint `json:"-"`
}

type CheckoutService interface {
	Quote(sess *cart.Session, priority bool, tip float64) (Quote, error)
	PlaceOrder(ctx context.Context, sess *cart.Session, req PlaceOrderRequest) (*model.Order, error)
}

type checkoutService struct {
	orders        repository.OrderRepository
	notifications NotificationService
}

func NewCheckoutService(orders repository.OrderRepository, notifications NotificationService) CheckoutService {
	return &checkoutService{orders: orders, notifications: notifications}
}

// Quote computes the checkout totals. The service fee is 8% of the item
// subtotal, delivery is free on the standard tier (base fee waived) and
// €1.99 for priority, and accumulated savings come off at the end.
func (s *checkoutService) Quote(sess *cart.Session, priority bool, tip float64) (Quote, error) {
	if tip < 0 {
		return Quote{}, ErrInvalidTip
	}

	subtotal := sess.Subtotal()
	serviceFee := subtotal * serviceFeeRate

	deliveryFee := 0.0
	if priority {
		deliveryFee = priorityDeliveryFee
	}

	savings := sess.Savings()
	total := subtotal + serviceFee + deliveryFee + tip - savings

	return Quote{
		Subtotal:     subtotal,
		ServiceFee:   serviceFee,
		DeliveryFee:  deliveryFee,
		Tip:          tip,
		Savings:      savings,
		Total:        total,
		PlusTotal:    total - plusDiscount,
		DisplayTotal: cart.FormatPrice(total),
	}, nil
}

// PlaceOrder persists the order and resets the session. Placement is
// gated on a non-empty cart and a selected payment method.
func (s *checkoutService) PlaceOrder(ctx context.Context, sess *cart.Session, req PlaceOrderRequest) (*model.Order, error) {
	if sess.ItemCount() == 0 {
		return nil, ErrCartEmpty
	}
	if req.PaymentMethod == "" {
		return nil, ErrPaymentRequired
	}

	quote, err := s.Quote(sess, req.PriorityDelivery, req.Tip)
	if err != nil {
		return nil, err
	}

	items := sess.Items()
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		original := item.Price
		if ledger, ok := sess.LedgerPrice(item.ID); ok {
			original = ledger
		}
		orderItems = append(orderItems, model.OrderItem{
			ItemRef:           item.ID,
			Name:              item.Name,
			Category:          item.Category,
			RestaurantID:      item.RestaurantID,
			Quantity:          item.Quantity,
			UnitPrice:         item.Price,
			OriginalUnitPrice: original,
		})
	}

	order := &model.Order{
		SessionID:        sess.ID(),
		UserID:           req.UserID,
		Status:           model.OrderStatusPlaced,
		Subtotal:         quote.Subtotal,
		ServiceFee:       quote.ServiceFee,
		DeliveryFee:      quote.DeliveryFee,
		Tip:              quote.Tip,
		Savings:          quote.Savings,
		Total:            quote.Total,
		PriorityDelivery: req.PriorityDelivery,
		PaymentMethod:    req.PaymentMethod,
		AddressLine:      req.AddressLine,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Instructions:     req.Instructions,
		Items:            orderItems,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	// the session starts over once the order is on the books
	sess.Clear()

	if s.notifications != nil {
		_, err := s.notifications.Add(ctx, sess.ID(), model.Notification{
			Type:    model.NotificationOrderPlaced,
			Title:   "Order confirmed",
			Message: fmt.Sprintf("Your order #%d for %s is being prepared.", order.ID, cart.FormatPrice(order.Total)),
		})
		if err != nil {
			logger.Warn("Failed to add order notification", map[string]interface{}{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}

	return order, nil
}
