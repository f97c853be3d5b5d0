package service

import (
	"context"
	"testing"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/db"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	orders     OrderService
	carts      CartService
	db         *gorm.DB
	owner      *model.User
	diner      *model.User
	restaurant *model.Restaurant
	pizza      *model.MenuItem
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := &model.User{Email: "owner@example.com", PasswordHash: "x", Name: "Owner", Role: model.RoleOwner}
	require.NoError(t, testDB.Create(owner).Error)
	diner := &model.User{Email: "diner@example.com", PasswordHash: "x", Name: "Diner", Role: model.RoleUser}
	require.NoError(t, testDB.Create(diner).Error)

	restaurant := &model.Restaurant{
		Name:    "Pizza Palace",
		City:    "Mumbai",
		OwnerID: &owner.ID,
		DeliveryOptions: []model.DeliveryOption{
			{Name: "Standard", Fee: 40, EstimatedMinutes: 45},
			{Name: "Express", Fee: 80, EstimatedMinutes: 25},
		},
	}
	require.NoError(t, testDB.Create(restaurant).Error)

	pizza := &model.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Margherita",
		Price:        250,
		Category:     model.CategoryMain,
		Available:    true,
	}
	require.NoError(t, testDB.Create(pizza).Error)

	manager := cart.NewManager(kv.NewMemoryStore())
	menuRepo := repository.NewMenuRepository(testDB)
	restaurantRepo := repository.NewRestaurantRepository(testDB)
	pricing := PricingOptions{TaxRate: 0, PromoCode: "WELCOME50", PromoDiscount: 50}

	cartService := NewCartService(manager, menuRepo, restaurantRepo, pricing)
	notificationService := NewNotificationService(repository.NewNotificationRepository(testDB), nil)
	orderService := NewOrderService(
		repository.NewOrderRepository(testDB),
		restaurantRepo,
		manager,
		pricing,
		notificationService,
	)

	return &orderServiceFixture{
		orders:     orderService,
		carts:      cartService,
		db:         testDB,
		owner:      owner,
		diner:      diner,
		restaurant: restaurant,
		pizza:      pizza,
	}
}

func (fx *orderServiceFixture) fillCart(t *testing.T, userID uint, quantity int) {
	t.Helper()
	_, err := fx.carts.AddItem(context.Background(), userID, fx.pizza.ID, quantity, nil, nil)
	require.NoError(t, err)
}

func TestOrderService_Checkout(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 2)

	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{
		OrderType:       cart.OrderTypeDelivery,
		DeliveryAddress: "42 Marine Drive",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
	assert.Equal(t, model.PaymentStatusCompleted, order.PaymentStatus)
	assert.InDelta(t, 500.0, order.Subtotal, 0.001)
	// Cheapest delivery option is picked when none is chosen
	assert.InDelta(t, 40.0, order.DeliveryFee, 0.001)
	assert.InDelta(t, 540.0, order.Total, 0.001)
	assert.Equal(t, 45, order.EstimatedMinutes)

	// Order snapshots the cart lines
	var persisted model.Order
	require.NoError(t, fx.db.Preload("OrderItems").First(&persisted, order.ID).Error)
	require.Len(t, persisted.OrderItems, 1)
	assert.Equal(t, "Margherita", persisted.OrderItems[0].Name)
	assert.Equal(t, 2, persisted.OrderItems[0].Quantity)

	// Cart is emptied only after the order is persisted
	view := fx.carts.GetCart(ctx, fx.diner.ID, cart.OrderTypeDelivery, "")
	assert.Empty(t, view.Items)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := setupOrderServiceTest(t)

	order, err := fx.orders.Checkout(context.Background(), fx.diner.ID, CheckoutInput{
		OrderType: cart.OrderTypeDelivery,
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, order)
}

func TestOrderService_Checkout_Promo(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)

	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{
		OrderType: cart.OrderTypeTakeaway,
		PromoCode: "WELCOME50",
	})
	require.NoError(t, err)
	assert.InDelta(t, -50.0, order.Discount, 0.001)
	assert.InDelta(t, 0.0, order.DeliveryFee, 0.001)
	assert.InDelta(t, 200.0, order.Total, 0.001)
	assert.Equal(t, "WELCOME50", order.PromoCode)
}

func TestOrderService_Checkout_ChosenDeliveryOption(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)

	expressID := fx.restaurant.DeliveryOptions[1].ID
	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{
		OrderType:        cart.OrderTypeDelivery,
		DeliveryAddress:  "42 Marine Drive",
		DeliveryOptionID: &expressID,
	})
	require.NoError(t, err)
	assert.InDelta(t, 80.0, order.DeliveryFee, 0.001)
	assert.Equal(t, 25, order.EstimatedMinutes)
}

func TestOrderService_GetOrder(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)
	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{OrderType: cart.OrderTypeTakeaway})
	require.NoError(t, err)

	found, err := fx.orders.GetOrder(fx.diner.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)

	_, err = fx.orders.GetOrder(fx.owner.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)

	_, err = fx.orders.GetOrder(fx.diner.ID, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)
	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{OrderType: cart.OrderTypeTakeaway})
	require.NoError(t, err)

	updated, err := fx.orders.UpdateStatus(fx.owner.ID, order.ID, model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, updated.Status)

	// Only the restaurant's owner may advance the order
	_, err = fx.orders.UpdateStatus(fx.diner.ID, order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)
}

func TestOrderService_CancelOrder(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)
	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{OrderType: cart.OrderTypeTakeaway})
	require.NoError(t, err)

	cancelled, err := fx.orders.CancelOrder(fx.diner.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_CancelOrder_WindowClosed(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)
	order, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{OrderType: cart.OrderTypeTakeaway})
	require.NoError(t, err)

	_, err = fx.orders.UpdateStatus(fx.owner.ID, order.ID, model.OrderStatusPreparing)
	require.NoError(t, err)

	_, err = fx.orders.CancelOrder(fx.diner.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderCannotCancel)
}

func TestOrderService_GetRestaurantOrders(t *testing.T) {
	fx := setupOrderServiceTest(t)
	ctx := context.Background()

	fx.fillCart(t, fx.diner.ID, 1)
	_, err := fx.orders.Checkout(ctx, fx.diner.ID, CheckoutInput{OrderType: cart.OrderTypeTakeaway})
	require.NoError(t, err)

	orders, err := fx.orders.GetRestaurantOrders(fx.owner.ID, fx.restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = fx.orders.GetRestaurantOrders(fx.diner.ID, fx.restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)
}
