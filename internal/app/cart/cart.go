package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/kv"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrInvalidItem     = errors.New("cart: menu item is missing id or price")
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
)

// Variant is a single chosen size/preparation option. At most one per line.
type Variant struct {
	Name       string  `json:"name"`
	PriceDelta float64 `json:"price_delta"`
}

// Addon is one chosen extra. A line carries zero or more.
type Addon struct {
	Name       string  `json:"name"`
	PriceDelta float64 `json:"price_delta"`
}

// Customization is the variant/addon combination applied to a base menu item.
type Customization struct {
	Variant *Variant `json:"variant,omitempty"`
	Addons  []Addon  `json:"addons,omitempty"`
}

// Item is the snapshot of a menu item the cart needs at add-time. The cart
// never re-fetches catalog data; callers resolve it first.
type Item struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	BasePrice float64 `json:"base_price"`
}

// LineItem is one orderable unit in the cart. Name, Image, BasePrice and
// UnitPrice are copied from the catalog when the line is created; later
// catalog changes do not touch existing lines.
type LineItem struct {
	ItemID     uint     `json:"item_id"`
	CartItemID string   `json:"cart_item_id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	BasePrice  float64  `json:"base_price"`
	Variant    *Variant `json:"variant,omitempty"`
	Addons     []Addon  `json:"addons,omitempty"`
	UnitPrice  float64  `json:"unit_price"`
	Quantity   int      `json:"quantity"`
}

// AddResult reports the outcome of an Add.
type AddResult struct {
	Items []LineItem `json:"items"`
	Count int        `json:"count"`
	// Replaced is true when the add discarded an existing cart scoped to a
	// different restaurant. Callers are expected to check
	// IsDifferentRestaurant and confirm with the user before triggering this.
	Replaced bool `json:"replaced"`
}

// Event describes a cart mutation, delivered to subscribers.
type Event struct {
	Owner        string     `json:"owner"`
	RestaurantID uint       `json:"restaurant_id"`
	Items        []LineItem `json:"items"`
	Count        int        `json:"count"`
}

// Cart holds the line items of a single owner, scoped to at most one
// restaurant, mirrored into key-value storage after every mutation.
//
// Storage failures never surface to callers: unreadable or corrupt data
// hydrates as an empty cart, and a failed write leaves the in-memory state
// authoritative for the rest of the session.
type Cart struct {
	mu    sync.Mutex
	store kv.Store
	owner string

	loaded       bool
	items        []LineItem
	restaurantID uint

	subsMu sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

func New(store kv.Store, owner string) *Cart {
	return &Cart{
		store: store,
		owner: owner,
		subs:  make(map[int]func(Event)),
	}
}

// Owner returns the owner key this cart is stored under.
func (c *Cart) Owner() string {
	return c.owner
}

func (c *Cart) itemsKey() string {
	return fmt.Sprintf("cart:%s:items", c.owner)
}

func (c *Cart) restaurantKey() string {
	return fmt.Sprintf("cart:%s:restaurant", c.owner)
}

// hydrate loads persisted state on first access. Missing or unparsable data
// is treated as an empty cart.
func (c *Cart) hydrate(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true

	raw, err := c.store.Get(ctx, c.itemsKey())
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Error("Failed to read persisted cart, starting empty", err, map[string]interface{}{
				"owner": c.owner,
			})
		}
		return
	}

	var persisted []LineItem
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		logger.Warn("Persisted cart is corrupt, starting empty", map[string]interface{}{
			"owner": c.owner,
			"error": err.Error(),
		})
		return
	}

	// Drop entries that violate the quantity floor rather than failing the
	// whole cart.
	items := make([]LineItem, 0, len(persisted))
	for _, line := range persisted {
		if line.Quantity < 1 || line.CartItemID == "" {
			continue
		}
		items = append(items, line)
	}
	c.items = items

	if len(c.items) == 0 {
		return
	}

	// A non-empty cart needs its scope; items without one are unusable, so a
	// missing scope key is handled the same as a corrupt one.
	rawID, err := c.store.Get(ctx, c.restaurantKey())
	if err != nil {
		logger.Warn("Persisted cart scope is missing, clearing cart", map[string]interface{}{
			"owner": c.owner,
			"error": err.Error(),
		})
		c.items = nil
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		logger.Warn("Persisted cart scope is corrupt, clearing cart", map[string]interface{}{
			"owner": c.owner,
			"value": rawID,
		})
		c.items = nil
		return
	}
	c.restaurantID = uint(id)
}

// persist mirrors the in-memory state to storage. Failures are logged and
// swallowed; the current session keeps working from memory.
func (c *Cart) persist(ctx context.Context) {
	var err error
	if len(c.items) == 0 {
		// Remove both keys so a stale non-empty blob never survives a clear.
		if delErr := c.store.Delete(ctx, c.itemsKey()); delErr != nil {
			err = delErr
		}
		if delErr := c.store.Delete(ctx, c.restaurantKey()); delErr != nil && err == nil {
			err = delErr
		}
	} else {
		var data []byte
		data, err = json.Marshal(c.items)
		if err == nil {
			err = c.store.Set(ctx, c.itemsKey(), string(data))
		}
		if err == nil {
			err = c.store.Set(ctx, c.restaurantKey(), strconv.FormatUint(uint64(c.restaurantID), 10))
		}
	}

	if err != nil {
		logger.Error("Failed to persist cart, in-memory state unaffected", err, map[string]interface{}{
			"owner": c.owner,
			"count": len(c.items),
		})
	}
}

// Items returns the current line items in insertion order.
func (c *Cart) Items(ctx context.Context) []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	return cloneItems(c.items)
}

// Count returns the total item count: the sum of line quantities, not the
// number of lines.
func (c *Cart) Count(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	return countOf(c.items)
}

// RestaurantID returns the scope restaurant. ok is false when the cart is
// empty and therefore unscoped.
func (c *Cart) RestaurantID(ctx context.Context) (uint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	if len(c.items) == 0 {
		return 0, false
	}
	return c.restaurantID, true
}

// IsDifferentRestaurant reports whether adding from candidateID would discard
// the current cart. Always false for an empty cart.
func (c *Cart) IsDifferentRestaurant(ctx context.Context, candidateID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	return len(c.items) > 0 && c.restaurantID != candidateID
}

// Add puts quantity units of item into the cart, merging into an existing
// line when the (item, variant, addon set) identity matches. Adding from a
// different restaurant than the cart's scope discards the existing cart
// first; AddResult.Replaced reports that this happened.
func (c *Cart) Add(ctx context.Context, item Item, quantity int, restaurantID uint, custom *Customization) (*AddResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if item.ID == 0 || item.BasePrice <= 0 || restaurantID == 0 {
		return nil, ErrInvalidItem
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)

	replaced := false
	if len(c.items) > 0 && c.restaurantID != restaurantID {
		logger.Info("Cart scoped to another restaurant, discarding before add", map[string]interface{}{
			"owner":          c.owner,
			"old_restaurant": c.restaurantID,
			"new_restaurant": restaurantID,
		})
		c.items = nil
		replaced = true
	}

	variant, addons := normalizeCustomization(custom)
	unitPrice := item.BasePrice
	if variant != nil {
		unitPrice += variant.PriceDelta
	}
	for _, addon := range addons {
		unitPrice += addon.PriceDelta
	}

	key := identityKey(item.ID, variant, addons)
	merged := false
	for i := range c.items {
		if identityKey(c.items[i].ItemID, c.items[i].Variant, c.items[i].Addons) == key {
			// First-seen pricing wins for this identity; only the quantity moves.
			c.items[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		c.items = append(c.items, LineItem{
			ItemID:     item.ID,
			CartItemID: uuid.New().String(),
			Name:       item.Name,
			Image:      item.Image,
			BasePrice:  item.BasePrice,
			Variant:    variant,
			Addons:     addons,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
		})
	}

	c.restaurantID = restaurantID
	c.persist(ctx)
	c.notify()

	return &AddResult{
		Items:    cloneItems(c.items),
		Count:    countOf(c.items),
		Replaced: replaced,
	}, nil
}

// UpdateQuantity sets a line's quantity to exactly quantity. Zero or negative
// removes the line. An unknown cartItemID is a benign no-op: the line may
// already have been removed by another action.
func (c *Cart) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)

	if quantity <= 0 {
		return c.removeLocked(ctx, cartItemID)
	}

	for i := range c.items {
		if c.items[i].CartItemID == cartItemID {
			if c.items[i].Quantity != quantity {
				c.items[i].Quantity = quantity
				c.persist(ctx)
				c.notify()
			}
			break
		}
	}
	return cloneItems(c.items)
}

// Remove deletes the matching line if present. Removing the last line clears
// the restaurant scope so the next add can target any restaurant.
func (c *Cart) Remove(ctx context.Context, cartItemID string) []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	return c.removeLocked(ctx, cartItemID)
}

func (c *Cart) removeLocked(ctx context.Context, cartItemID string) []LineItem {
	for i := range c.items {
		if c.items[i].CartItemID == cartItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if len(c.items) == 0 {
				c.restaurantID = 0
			}
			c.persist(ctx)
			c.notify()
			break
		}
	}
	return cloneItems(c.items)
}

// Clear empties the cart and its scope, and removes the persisted state.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hydrate(ctx)
	if len(c.items) == 0 && c.restaurantID == 0 {
		return
	}
	c.items = nil
	c.restaurantID = 0
	c.persist(ctx)
	c.notify()
}

// Subscribe registers fn to run after every mutation. The returned function
// unsubscribes. Consumers declare their dependency explicitly instead of
// listening for an ambient broadcast.
func (c *Cart) Subscribe(fn func(Event)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Cart) notify() {
	event := Event{
		Owner:        c.owner,
		RestaurantID: c.restaurantID,
		Items:        cloneItems(c.items),
		Count:        countOf(c.items),
	}

	c.subsMu.Lock()
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// emptyLoaded reports whether the cart has hydrated and holds no items.
// Unhydrated carts are never considered empty, so checking one costs no
// storage read.
func (c *Cart) emptyLoaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded && len(c.items) == 0
}

// identityKey decides whether two additions merge into one line: same item,
// same variant (or both absent), same addon set. The addon set comparison is
// order- and duplicate-insensitive.
func identityKey(itemID uint, variant *Variant, addons []Addon) string {
	variantName := ""
	if variant != nil {
		variantName = variant.Name
	}

	names := make([]string, 0, len(addons))
	seen := make(map[string]bool, len(addons))
	for _, addon := range addons {
		if seen[addon.Name] {
			continue
		}
		seen[addon.Name] = true
		names = append(names, addon.Name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%d|%s|%s", itemID, variantName, strings.Join(names, ","))
}

// normalizeCustomization copies the caller's customization, dropping
// duplicate addons so they are counted once in both identity and price.
func normalizeCustomization(custom *Customization) (*Variant, []Addon) {
	if custom == nil {
		return nil, nil
	}

	var variant *Variant
	if custom.Variant != nil {
		v := *custom.Variant
		variant = &v
	}

	var addons []Addon
	seen := make(map[string]bool, len(custom.Addons))
	for _, addon := range custom.Addons {
		if seen[addon.Name] {
			continue
		}
		seen[addon.Name] = true
		addons = append(addons, addon)
	}
	return variant, addons
}

// cloneItems copies the lines along with their variant and addon data, so a
// caller mutating a returned line cannot touch the cart's own state.
func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Variant != nil {
			v := *out[i].Variant
			out[i].Variant = &v
		}
		if len(out[i].Addons) > 0 {
			addons := make([]Addon, len(out[i].Addons))
			copy(addons, out[i].Addons)
			out[i].Addons = addons
		}
	}
	return out
}

func countOf(items []LineItem) int {
	count := 0
	for _, line := range items {
		count += line.Quantity
	}
	return count
}
