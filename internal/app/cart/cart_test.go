package cart

import (
	"context"
	"testing"

	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	margherita = Item{ID: 1, Name: "Margherita", Image: "margherita.jpg", BasePrice: 250}
	lassi      = Item{ID: 2, Name: "Mango Lassi", Image: "lassi.jpg", BasePrice: 99.5}
)

func setupCart(t *testing.T) (*Cart, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return New(store, "user-1"), store
}

func TestCart_Add_Success(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Items[0].Quantity)
	assert.Equal(t, 250.0, result.Items[0].UnitPrice)
	assert.Equal(t, 2, result.Count)
	assert.False(t, result.Replaced)
	assert.NotEmpty(t, result.Items[0].CartItemID)

	id, ok := c.RestaurantID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(10), id)
}

func TestCart_Add_InvalidItem(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, Item{Name: "No ID", BasePrice: 100}, 1, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = c.Add(ctx, Item{ID: 5, Name: "No price"}, 1, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidItem)

	// Failed adds must not mutate state.
	assert.Len(t, c.Items(ctx), 0)
	_, ok := c.RestaurantID(ctx)
	assert.False(t, ok)
}

func TestCart_Add_InvalidQuantity(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 0, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = c.Add(ctx, margherita, -2, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Len(t, c.Items(ctx), 0)
}

func TestCart_Add_MergesSameCustomization(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	custom := &Customization{
		Variant: &Variant{Name: "Large", PriceDelta: 50},
		Addons:  []Addon{{Name: "Cheese", PriceDelta: 30}, {Name: "Olives", PriceDelta: 20}},
	}

	first, err := c.Add(ctx, margherita, 2, 10, custom)
	require.NoError(t, err)

	// Same combination with addons in reverse order must merge, not duplicate.
	swapped := &Customization{
		Variant: &Variant{Name: "Large", PriceDelta: 50},
		Addons:  []Addon{{Name: "Olives", PriceDelta: 20}, {Name: "Cheese", PriceDelta: 30}},
	}
	second, err := c.Add(ctx, margherita, 3, 10, swapped)
	require.NoError(t, err)

	require.Len(t, second.Items, 1)
	assert.Equal(t, 5, second.Items[0].Quantity)
	assert.Equal(t, 5, second.Count)
	assert.Equal(t, first.Items[0].CartItemID, second.Items[0].CartItemID)
	assert.Equal(t, 350.0, second.Items[0].UnitPrice)
}

func TestCart_Add_DuplicateAddonsCountOnce(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 1, 10, &Customization{
		Addons: []Addon{{Name: "Cheese", PriceDelta: 30}, {Name: "Cheese", PriceDelta: 30}},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 280.0, result.Items[0].UnitPrice)
	assert.Len(t, result.Items[0].Addons, 1)

	// Deduped set matches a single-addon add.
	merged, err := c.Add(ctx, margherita, 1, 10, &Customization{
		Addons: []Addon{{Name: "Cheese", PriceDelta: 30}},
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, 2, merged.Items[0].Quantity)
}

func TestCart_Add_DistinctCustomizationNewLine(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)

	// Different variant yields a separate line even with an equal price delta sum.
	result, err := c.Add(ctx, margherita, 1, 10, &Customization{
		Variant: &Variant{Name: "Regular", PriceDelta: 0},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.NotEqual(t, result.Items[0].CartItemID, result.Items[1].CartItemID)
	assert.Equal(t, result.Items[0].UnitPrice, result.Items[1].UnitPrice)
}

func TestCart_Add_FirstSeenPricingWins(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)

	// The catalog price changed between adds; the existing line keeps its
	// snapshot price.
	repriced := Item{ID: 1, Name: "Margherita", Image: "margherita.jpg", BasePrice: 300}
	result, err := c.Add(ctx, repriced, 1, 10, nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 250.0, result.Items[0].UnitPrice)
	assert.Equal(t, 2, result.Items[0].Quantity)
}

func TestCart_Add_DifferentRestaurantDiscards(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	_, err = c.Add(ctx, lassi, 1, 10, nil)
	require.NoError(t, err)

	assert.True(t, c.IsDifferentRestaurant(ctx, 20))
	assert.False(t, c.IsDifferentRestaurant(ctx, 10))

	biryani := Item{ID: 9, Name: "Biryani", BasePrice: 180}
	result, err := c.Add(ctx, biryani, 1, 20, nil)
	require.NoError(t, err)
	assert.True(t, result.Replaced)
	require.Len(t, result.Items, 1)
	assert.Equal(t, uint(9), result.Items[0].ItemID)

	id, ok := c.RestaurantID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(20), id)
}

func TestCart_ScopeExclusivity(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	adds := []struct {
		item         Item
		restaurantID uint
	}{
		{margherita, 10},
		{lassi, 10},
		{Item{ID: 9, Name: "Biryani", BasePrice: 180}, 20},
		{Item{ID: 11, Name: "Naan", BasePrice: 40}, 20},
		{margherita, 10},
	}

	for _, add := range adds {
		result, err := c.Add(ctx, add.item, 1, add.restaurantID, nil)
		require.NoError(t, err)

		// Never two lines from different restaurants.
		id, ok := c.RestaurantID(ctx)
		require.True(t, ok)
		assert.Equal(t, add.restaurantID, id)
		assert.NotEmpty(t, result.Items)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	lineID := result.Items[0].CartItemID

	items := c.UpdateQuantity(ctx, lineID, 5)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_UpdateQuantity_FloorRemovesLine(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	lineID := result.Items[0].CartItemID

	items := c.UpdateQuantity(ctx, lineID, 0)
	assert.Len(t, items, 0)

	result, err = c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	items = c.UpdateQuantity(ctx, result.Items[0].CartItemID, -3)
	assert.Len(t, items, 0)
}

func TestCart_UpdateQuantity_UnknownIDNoOp(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)

	// A stale id from a racing UI action is benign.
	items := c.UpdateQuantity(ctx, "no-such-line", 7)
	require.Len(t, items, 1)
	assert.Equal(t, result.Items[0].Quantity, items[0].Quantity)
}

func TestCart_Remove(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	first, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	_, err = c.Add(ctx, lassi, 1, 10, nil)
	require.NoError(t, err)

	items := c.Remove(ctx, first.Items[0].CartItemID)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ItemID)

	// Unknown id is a no-op.
	items = c.Remove(ctx, "no-such-line")
	assert.Len(t, items, 1)
}

func TestCart_RemoveLastLineClearsScope(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	result, err := c.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)

	items := c.Remove(ctx, result.Items[0].CartItemID)
	assert.Len(t, items, 0)
	_, ok := c.RestaurantID(ctx)
	assert.False(t, ok)

	// A subsequent add to a different restaurant is a plain add, not a discard.
	next, err := c.Add(ctx, Item{ID: 9, Name: "Biryani", BasePrice: 180}, 1, 20, nil)
	require.NoError(t, err)
	assert.False(t, next.Replaced)
}

func TestCart_Clear(t *testing.T) {
	c, store := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)

	c.Clear(ctx)
	assert.Len(t, c.Items(ctx), 0)
	_, ok := c.RestaurantID(ctx)
	assert.False(t, ok)

	// The persisted blob must be gone too, not merely ignored.
	_, err = store.Get(ctx, "cart:user-1:items")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = store.Get(ctx, "cart:user-1:restaurant")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestCart_Count(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 3, 10, nil)
	require.NoError(t, err)
	_, err = c.Add(ctx, lassi, 1, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Count(ctx))
	assert.Len(t, c.Items(ctx), 2)
}

func TestCart_PersistenceRoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()

	first := New(store, "user-1")
	_, err := first.Add(ctx, margherita, 2, 10, &Customization{
		Variant: &Variant{Name: "Large", PriceDelta: 50},
		Addons:  []Addon{{Name: "Cheese", PriceDelta: 30}},
	})
	require.NoError(t, err)
	want := first.Items(ctx)

	// A fresh instance over the same storage simulates a reload.
	second := New(store, "user-1")
	got := second.Items(ctx)
	assert.Equal(t, want, got)

	id, ok := second.RestaurantID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(10), id)
}

func TestCart_CorruptStorageHydratesEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart:user-1:items", "{not json"))

	c := New(store, "user-1")
	assert.Len(t, c.Items(ctx), 0)
	_, ok := c.RestaurantID(ctx)
	assert.False(t, ok)

	// The cart is usable again after recovery.
	_, err := c.Add(ctx, margherita, 1, 10, nil)
	assert.NoError(t, err)
}

func TestCart_CorruptScopeHydratesEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart:user-1:items", `[{"item_id":1,"cart_item_id":"a","name":"Margherita","base_price":250,"unit_price":250,"quantity":2}]`))
	require.NoError(t, store.Set(ctx, "cart:user-1:restaurant", "garbage"))

	c := New(store, "user-1")
	assert.Len(t, c.Items(ctx), 0)
}

func TestCart_MissingScopeHydratesEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "cart:user-1:items", `[{"item_id":1,"cart_item_id":"a","name":"Margherita","base_price":250,"unit_price":250,"quantity":2}]`))

	// Items without a scope key must not hydrate with restaurant 0, which
	// would force the discard path on the next add from the real restaurant.
	c := New(store, "user-1")
	assert.Len(t, c.Items(ctx), 0)
	_, ok := c.RestaurantID(ctx)
	assert.False(t, ok)

	result, err := c.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)
	assert.False(t, result.Replaced)
}

func TestCart_ReturnedItemsAreDetached(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	_, err := c.Add(ctx, margherita, 1, 10, &Customization{
		Variant: &Variant{Name: "Large", PriceDelta: 100},
		Addons:  []Addon{{Name: "Cheese", PriceDelta: 50}},
	})
	require.NoError(t, err)

	leaked := c.Items(ctx)
	leaked[0].Variant.PriceDelta = 0
	leaked[0].Addons[0].Name = "Tampered"
	leaked[0].Quantity = 99

	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 100.0, items[0].Variant.PriceDelta)
	assert.Equal(t, "Cheese", items[0].Addons[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_HydrateDropsInvalidLines(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	persisted := `[
		{"item_id":1,"cart_item_id":"a","name":"Margherita","base_price":250,"unit_price":250,"quantity":2},
		{"item_id":2,"cart_item_id":"b","name":"Lassi","base_price":99.5,"unit_price":99.5,"quantity":0},
		{"item_id":3,"name":"No line id","base_price":40,"unit_price":40,"quantity":1}
	]`
	require.NoError(t, store.Set(ctx, "cart:user-1:items", persisted))
	require.NoError(t, store.Set(ctx, "cart:user-1:restaurant", "10"))

	c := New(store, "user-1")
	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].CartItemID)
}

func TestCart_Subscribe(t *testing.T) {
	c, _ := setupCart(t)
	ctx := context.Background()

	var events []Event
	unsubscribe := c.Subscribe(func(e Event) {
		events = append(events, e)
	})

	result, err := c.Add(ctx, margherita, 2, 10, nil)
	require.NoError(t, err)
	c.UpdateQuantity(ctx, result.Items[0].CartItemID, 3)

	require.Len(t, events, 2)
	assert.Equal(t, "user-1", events[0].Owner)
	assert.Equal(t, 2, events[0].Count)
	assert.Equal(t, 3, events[1].Count)

	unsubscribe()
	c.Clear(ctx)
	assert.Len(t, events, 2)
}

func TestManager_SameInstancePerOwner(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())

	a := m.Cart("user-1")
	b := m.Cart("user-1")
	other := m.Cart("user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestManager_OnChangeCoversAllCarts(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())
	ctx := context.Background()

	existing := m.Cart("user-1")

	var owners []string
	m.OnChange(func(e Event) {
		owners = append(owners, e.Owner)
	})

	_, err := existing.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)

	created := m.Cart("user-2")
	_, err = created.Add(ctx, lassi, 1, 20, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"user-1", "user-2"}, owners)
}

func TestManager_PruneEmpty(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())
	ctx := context.Background()

	emptied := m.Cart("user-1")
	_, err := emptied.Add(ctx, margherita, 1, 10, nil)
	require.NoError(t, err)
	emptied.Clear(ctx)

	active := m.Cart("user-2")
	_, err = active.Add(ctx, lassi, 1, 20, nil)
	require.NoError(t, err)

	// Never touched, so never hydrated; pruning must not cost it a read.
	m.Cart("user-3")

	assert.Equal(t, 1, m.PruneEmpty())

	// The pruned owner gets a fresh instance; the active one keeps its own.
	assert.NotSame(t, emptied, m.Cart("user-1"))
	assert.Same(t, active, m.Cart("user-2"))
	assert.Equal(t, 1, m.Cart("user-2").Count(ctx))
}
