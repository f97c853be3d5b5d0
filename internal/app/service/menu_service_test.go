package service

import (
	"testing"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type menuServiceFixture struct {
	service    MenuService
	db         *gorm.DB
	ownerID    uint
	restaurant *model.Restaurant
}

func setupMenuServiceTest(t *testing.T) *menuServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	ownerID := uint(1)
	restaurant := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai", OwnerID: &ownerID}
	require.NoError(t, testDB.Create(restaurant).Error)

	service := NewMenuService(
		repository.NewMenuRepository(testDB),
		repository.NewRestaurantRepository(testDB),
	)

	return &menuServiceFixture{
		service:    service,
		db:         testDB,
		ownerID:    ownerID,
		restaurant: restaurant,
	}
}

func TestMenuService_CreateItem(t *testing.T) {
	fx := setupMenuServiceTest(t)

	item := &model.MenuItem{
		RestaurantID: fx.restaurant.ID,
		Name:         "Margherita",
		Price:        250,
		Category:     model.CategoryMain,
		Available:    true,
		Variants: []model.MenuVariant{
			{Name: "Regular", PriceDelta: 0},
			{Name: "Large", PriceDelta: 100},
		},
	}
	require.NoError(t, fx.service.CreateItem(fx.ownerID, item))
	assert.NotZero(t, item.ID)

	// Variants are persisted alongside the item
	stored, err := fx.service.GetItem(item.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Variants, 2)

	// Someone else's restaurant is off limits
	err = fx.service.CreateItem(99, &model.MenuItem{RestaurantID: fx.restaurant.ID, Name: "Nope", Price: 1})
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)

	err = fx.service.CreateItem(fx.ownerID, &model.MenuItem{RestaurantID: 9999, Name: "Nope", Price: 1})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestMenuService_GetMenu(t *testing.T) {
	fx := setupMenuServiceTest(t)

	items := []model.MenuItem{
		{RestaurantID: fx.restaurant.ID, Name: "Margherita", Price: 250, Category: model.CategoryMain, Available: true},
		{RestaurantID: fx.restaurant.ID, Name: "Tiramisu", Price: 180, Category: model.CategoryDessert, Available: true},
		{RestaurantID: fx.restaurant.ID, Name: "Truffle Pizza", Price: 900, Category: model.CategoryMain, Available: false},
	}
	for i := range items {
		require.NoError(t, fx.service.CreateItem(fx.ownerID, &items[i]))
	}

	// Diners only see what the kitchen can make
	menu, err := fx.service.GetMenu(fx.restaurant.ID, true)
	require.NoError(t, err)
	assert.Len(t, menu, 2)

	// Owners see everything
	menu, err = fx.service.GetMenu(fx.restaurant.ID, false)
	require.NoError(t, err)
	assert.Len(t, menu, 3)

	_, err = fx.service.GetMenu(9999, true)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestMenuService_UpdateItem(t *testing.T) {
	fx := setupMenuServiceTest(t)

	item := &model.MenuItem{RestaurantID: fx.restaurant.ID, Name: "Margherita", Price: 250, Available: true}
	require.NoError(t, fx.service.CreateItem(fx.ownerID, item))

	update := &model.MenuItem{
		ID:    item.ID,
		Name:  "Margherita Classico",
		Price: 280,
		// An update cannot move the item to another restaurant
		RestaurantID: 9999,
		Available:    true,
	}
	require.NoError(t, fx.service.UpdateItem(fx.ownerID, update))
	assert.Equal(t, fx.restaurant.ID, update.RestaurantID)

	stored, err := fx.service.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Classico", stored.Name)
	assert.InDelta(t, 280.0, stored.Price, 0.001)

	err = fx.service.UpdateItem(99, &model.MenuItem{ID: item.ID, Name: "Hijack"})
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)
}

func TestMenuService_DeleteItem(t *testing.T) {
	fx := setupMenuServiceTest(t)

	item := &model.MenuItem{RestaurantID: fx.restaurant.ID, Name: "Margherita", Price: 250, Available: true}
	require.NoError(t, fx.service.CreateItem(fx.ownerID, item))

	err := fx.service.DeleteItem(99, item.ID)
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)

	require.NoError(t, fx.service.DeleteItem(fx.ownerID, item.ID))

	_, err = fx.service.GetItem(item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	err = fx.service.DeleteItem(fx.ownerID, item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
