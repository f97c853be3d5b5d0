package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAccessDenied = errors.New("order access denied")
	ErrOrderCannotCancel = errors.New("order can no longer be cancelled")
	ErrPaymentFailed     = errors.New("payment failed")
)

// paymentDelay imitates the round trip to a payment gateway.
const paymentDelay = 2 * time.Second

type CheckoutInput struct {
	OrderType        cart.OrderType
	DeliveryAddress  string
	DeliveryOptionID *uint
	PromoCode        string
}

type OrderService interface {
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error)
	GetOrder(userID, orderID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetRestaurantOrders(ownerID, restaurantID uint) ([]model.Order, error)
	UpdateStatus(ownerID, orderID uint, status model.OrderStatus) (*model.Order, error)
	CancelOrder(userID, orderID uint) (*model.Order, error)
}

type orderService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	carts          *cart.Manager
	pricing        PricingOptions
	notifications  NotificationService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	carts *cart.Manager,
	pricing PricingOptions,
	notifications NotificationService,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		carts:          carts,
		pricing:        pricing,
		notifications:  notifications,
	}
}

// Checkout snapshots the cart into an order, runs the simulated payment and
// clears the cart only after everything is persisted.
func (s *orderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":    userID,
		"order_type": input.OrderType,
	})

	c := s.carts.Cart(cartOwner(userID))
	items := c.Items(ctx)
	if len(items) == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	restaurantID, ok := c.RestaurantID(ctx)
	if !ok {
		return nil, ErrCartEmpty
	}

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = cart.OrderTypeDelivery
	}

	deliveryFee, estimatedMinutes := s.resolveDelivery(restaurant, orderType, input.DeliveryOptionID)

	opts := cart.QuoteOptions{
		OrderType:   orderType,
		DeliveryFee: deliveryFee,
		TaxRate:     s.pricing.TaxRate,
	}
	if input.PromoCode != "" && input.PromoCode == s.pricing.PromoCode {
		opts.PromoCode = input.PromoCode
		opts.PromoDiscount = s.pricing.PromoDiscount
	}
	totals := cart.Quote(items, opts).Rounded()

	// Simulated payment gateway round trip.
	if err := s.processPayment(ctx, totals.Total); err != nil {
		logger.Error("Payment failed during checkout", err, map[string]interface{}{
			"user_id": userID,
			"total":   totals.Total,
		})
		return nil, ErrPaymentFailed
	}

	order := &model.Order{
		OrderNumber:      util.GenerateOrderNumber(),
		UserID:           userID,
		RestaurantID:     restaurantID,
		OrderType:        string(orderType),
		Status:           model.OrderStatusConfirmed,
		PaymentStatus:    model.PaymentStatusCompleted,
		Subtotal:         totals.Subtotal,
		DeliveryFee:      totals.DeliveryFee,
		Discount:         totals.Discount,
		Tax:              totals.Tax,
		Total:            totals.Total,
		PromoCode:        opts.PromoCode,
		DeliveryAddress:  input.DeliveryAddress,
		EstimatedMinutes: estimatedMinutes,
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, line := range items {
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID:            line.ItemID,
			Name:                  line.Name,
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice,
			CustomizationSnapshot: customizationSnapshot(line),
		})
	}

	if err := s.orderRepo.CreateWithItems(order, orderItems); err != nil {
		return nil, err
	}

	// Order is safely persisted; emptying the cart now cannot lose it.
	c.Clear(ctx)

	go s.notifications.Notify(
		userID,
		model.NotificationOrderPlaced,
		"Order placed",
		fmt.Sprintf("Your order %s at %s is confirmed.", order.OrderNumber, restaurant.Name),
	)

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})
	return order, nil
}

// processPayment stands in for a real gateway: it waits the usual latency and
// always approves. Cancellation via ctx aborts the wait.
func (s *orderService) processPayment(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("invalid payment amount: %.2f", amount)
	}

	select {
	case <-time.After(paymentDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *orderService) resolveDelivery(restaurant *model.Restaurant, orderType cart.OrderType, deliveryOptionID *uint) (float64, int) {
	if orderType != cart.OrderTypeDelivery {
		return 0, 0
	}

	if deliveryOptionID != nil {
		for _, opt := range restaurant.DeliveryOptions {
			if opt.ID == *deliveryOptionID {
				return opt.Fee, opt.EstimatedMinutes
			}
		}
	}

	if len(restaurant.DeliveryOptions) == 0 {
		return 0, 45
	}

	cheapest := restaurant.DeliveryOptions[0]
	for _, opt := range restaurant.DeliveryOptions[1:] {
		if opt.Fee < cheapest.Fee {
			cheapest = opt
		}
	}
	return cheapest.Fee, cheapest.EstimatedMinutes
}

func customizationSnapshot(line cart.LineItem) string {
	var parts []string
	if line.Variant != nil {
		parts = append(parts, line.Variant.Name)
	}
	if len(line.Addons) > 0 {
		names := make([]string, 0, len(line.Addons))
		for _, a := range line.Addons {
			names = append(names, a.Name)
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	return strings.Join(parts, "; ")
}

func (s *orderService) GetOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetRestaurantOrders(ownerID, restaurantID uint) ([]model.Order, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		return nil, ErrRestaurantAccessDenied
	}
	return s.orderRepo.FindByRestaurantID(restaurantID)
}

// UpdateStatus lets a restaurant owner advance an order through its lifecycle.
func (s *orderService) UpdateStatus(ownerID, orderID uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	restaurant, err := s.restaurantRepo.FindByID(order.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		logger.Warn("Order status change denied: ownership mismatch", map[string]interface{}{
			"order_id": orderID,
			"owner_id": ownerID,
		})
		return nil, ErrOrderAccessDenied
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	go s.notifications.Notify(
		order.UserID,
		model.NotificationOrderStatus,
		"Order update",
		fmt.Sprintf("Order %s is now %s.", order.OrderNumber, strings.ReplaceAll(string(status), "_", " ")),
	)

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return order, nil
}

func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	// Cancellation window closes once the kitchen starts preparing.
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusConfirmed {
		return nil, ErrOrderCannotCancel
	}

	if err := s.orderRepo.UpdateStatus(orderID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusCancelled

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})
	return order, nil
}
