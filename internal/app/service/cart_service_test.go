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

type cartServiceFixture struct {
	service    CartService
	db         *gorm.DB
	restaurant *model.Restaurant
	other      *model.Restaurant
	margherita *model.MenuItem
	biryani    *model.MenuItem
	soldOut    *model.MenuItem
}

func setupCartServiceTest(t *testing.T) *cartServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	restaurant := &model.Restaurant{
		Name: "Pizza Palace",
		City: "Mumbai",
		DeliveryOptions: []model.DeliveryOption{
			{Name: "Standard", Fee: 40, EstimatedMinutes: 45},
			{Name: "Express", Fee: 80, EstimatedMinutes: 25},
		},
	}
	require.NoError(t, testDB.Create(restaurant).Error)

	other := &model.Restaurant{Name: "Biryani House", City: "Mumbai"}
	require.NoError(t, testDB.Create(other).Error)

	margherita := &model.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Margherita",
		Price:        250,
		Category:     model.CategoryMain,
		Available:    true,
		Variants: []model.MenuVariant{
			{Name: "Regular", PriceDelta: 0},
			{Name: "Large", PriceDelta: 100},
		},
		Addons: []model.MenuAddon{
			{Name: "Extra Cheese", PriceDelta: 50},
			{Name: "Olives", PriceDelta: 30},
		},
	}
	require.NoError(t, testDB.Create(margherita).Error)

	biryani := &model.MenuItem{
		RestaurantID: other.ID,
		Name:         "Chicken Biryani",
		Price:        320,
		Category:     model.CategoryMain,
		Available:    true,
	}
	require.NoError(t, testDB.Create(biryani).Error)

	soldOut := &model.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Truffle Pizza",
		Price:        900,
		Category:     model.CategoryMain,
		Available:    false,
	}
	require.NoError(t, testDB.Create(soldOut).Error)

	carts := cart.NewManager(kv.NewMemoryStore())
	svc := NewCartService(
		carts,
		repository.NewMenuRepository(testDB),
		repository.NewRestaurantRepository(testDB),
		PricingOptions{TaxRate: 0.05, PromoCode: "WELCOME50", PromoDiscount: 50},
	)

	return &cartServiceFixture{
		service:    svc,
		db:         testDB,
		restaurant: restaurant,
		other:      other,
		margherita: margherita,
		biryani:    biryani,
		soldOut:    soldOut,
	}
}

func TestCartService_AddItem(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()
	largeID := fx.margherita.Variants[1].ID
	cheeseID := fx.margherita.Addons[0].ID

	tests := []struct {
		name       string
		menuItemID uint
		quantity   int
		variantID  *uint
		addonIDs   []uint
		wantErr    error
	}{
		{
			name:       "Plain item",
			menuItemID: fx.margherita.ID,
			quantity:   2,
		},
		{
			name:       "With variant and addon",
			menuItemID: fx.margherita.ID,
			quantity:   1,
			variantID:  &largeID,
			addonIDs:   []uint{cheeseID},
		},
		{
			name:       "Unknown menu item",
			menuItemID: 9999,
			quantity:   1,
			wantErr:    ErrMenuItemNotFound,
		},
		{
			name:       "Unavailable menu item",
			menuItemID: fx.soldOut.ID,
			quantity:   1,
			wantErr:    ErrMenuItemUnavailable,
		},
		{
			name:       "Unknown variant",
			menuItemID: fx.margherita.ID,
			quantity:   1,
			variantID:  func() *uint { v := uint(9999); return &v }(),
			wantErr:    ErrInvalidVariant,
		},
		{
			name:       "Unknown addon",
			menuItemID: fx.margherita.ID,
			quantity:   1,
			addonIDs:   []uint{9999},
			wantErr:    ErrInvalidAddon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := fx.service.AddItem(ctx, 1, tt.menuItemID, tt.quantity, tt.variantID, tt.addonIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.Items)
				assert.False(t, result.Replaced)
			}
		})
	}
}

func TestCartService_GetCart(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, 1, fx.margherita.ID, 2, nil, nil)
	require.NoError(t, err)

	view := fx.service.GetCart(ctx, 1, cart.OrderTypeDelivery, "")
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, fx.restaurant.ID, view.RestaurantID)

	// 2 x 250 subtotal, cheapest delivery option fee, 5% tax on the pair
	assert.InDelta(t, 500.0, view.Totals.Subtotal, 0.001)
	assert.InDelta(t, 40.0, view.Totals.DeliveryFee, 0.001)
	assert.InDelta(t, 27.0, view.Totals.Tax, 0.001)
	assert.InDelta(t, 567.0, view.Totals.Total, 0.001)
}

func TestCartService_GetCart_Promo(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, 1, fx.margherita.ID, 2, nil, nil)
	require.NoError(t, err)

	view := fx.service.GetCart(ctx, 1, cart.OrderTypeTakeaway, "WELCOME50")
	assert.InDelta(t, -50.0, view.Totals.Discount, 0.001)
	assert.InDelta(t, 0.0, view.Totals.DeliveryFee, 0.001)

	// Wrong code applies no discount instead of failing
	view = fx.service.GetCart(ctx, 1, cart.OrderTypeTakeaway, "BOGUS")
	assert.InDelta(t, 0.0, view.Totals.Discount, 0.001)
}

func TestCartService_GetCart_Empty(t *testing.T) {
	fx := setupCartServiceTest(t)

	view := fx.service.GetCart(context.Background(), 42, cart.OrderTypeDelivery, "")
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
	assert.Zero(t, view.RestaurantID)
	assert.Zero(t, view.Totals.Total)
}

func TestCartService_RestaurantConflict(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, 1, fx.margherita.ID, 1, nil, nil)
	require.NoError(t, err)

	assert.True(t, fx.service.CheckRestaurantConflict(ctx, 1, fx.other.ID))
	assert.False(t, fx.service.CheckRestaurantConflict(ctx, 1, fx.restaurant.ID))

	// Adding from the other restaurant replaces the cart
	result, err := fx.service.AddItem(ctx, 1, fx.biryani.ID, 1, nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Replaced)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Chicken Biryani", result.Items[0].Name)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()

	result, err := fx.service.AddItem(ctx, 1, fx.margherita.ID, 1, nil, nil)
	require.NoError(t, err)
	lineID := result.Items[0].CartItemID

	items := fx.service.UpdateQuantity(ctx, 1, lineID, 5)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// Zero quantity removes the line
	items = fx.service.UpdateQuantity(ctx, 1, lineID, 0)
	assert.Empty(t, items)

	// Unknown line is a no-op
	items = fx.service.RemoveItem(ctx, 1, "missing")
	assert.Empty(t, items)
}

func TestCartService_ClearCart(t *testing.T) {
	fx := setupCartServiceTest(t)
	ctx := context.Background()

	_, err := fx.service.AddItem(ctx, 1, fx.margherita.ID, 3, nil, nil)
	require.NoError(t, err)

	fx.service.ClearCart(ctx, 1)

	view := fx.service.GetCart(ctx, 1, cart.OrderTypeDelivery, "")
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
}
