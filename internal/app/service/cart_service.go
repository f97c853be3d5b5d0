package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/cart"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
)

var (
	ErrInvalidVariant = errors.New("invalid menu variant")
	ErrInvalidAddon   = errors.New("invalid menu addon")
)

// CartView is the cart plus its quoted totals for presentation.
type CartView struct {
	Items        []cart.LineItem `json:"items"`
	Count        int             `json:"count"`
	RestaurantID uint            `json:"restaurant_id,omitempty"`
	Totals       cart.Totals     `json:"totals"`
}

type CartService interface {
	GetCart(ctx context.Context, userID uint, orderType cart.OrderType, promoCode string) *CartView
	AddItem(ctx context.Context, userID, menuItemID uint, quantity int, variantID *uint, addonIDs []uint) (*cart.AddResult, error)
	UpdateQuantity(ctx context.Context, userID uint, cartItemID string, quantity int) []cart.LineItem
	RemoveItem(ctx context.Context, userID uint, cartItemID string) []cart.LineItem
	ClearCart(ctx context.Context, userID uint)
	CheckRestaurantConflict(ctx context.Context, userID, restaurantID uint) bool
}

type cartService struct {
	carts          *cart.Manager
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
	pricing        PricingOptions
}

// PricingOptions mirrors the deployment's checkout pricing knobs.
type PricingOptions struct {
	TaxRate       float64
	PromoCode     string
	PromoDiscount float64
}

func NewCartService(
	carts *cart.Manager,
	menuRepo repository.MenuRepository,
	restaurantRepo repository.RestaurantRepository,
	pricing PricingOptions,
) CartService {
	return &cartService{
		carts:          carts,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		pricing:        pricing,
	}
}

func cartOwner(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func (s *cartService) GetCart(ctx context.Context, userID uint, orderType cart.OrderType, promoCode string) *CartView {
	c := s.carts.Cart(cartOwner(userID))

	items := c.Items(ctx)
	restaurantID, _ := c.RestaurantID(ctx)

	return &CartView{
		Items:        items,
		Count:        c.Count(ctx),
		RestaurantID: restaurantID,
		Totals:       s.quote(items, restaurantID, orderType, promoCode),
	}
}

func (s *cartService) AddItem(ctx context.Context, userID, menuItemID uint, quantity int, variantID *uint, addonIDs []uint) (*cart.AddResult, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":      userID,
		"menu_item_id": menuItemID,
		"quantity":     quantity,
	})

	menuItem, err := s.menuRepo.FindByID(menuItemID)
	if err != nil {
		logger.Warn("Cannot add to cart: menu item not found", map[string]interface{}{
			"menu_item_id": menuItemID,
		})
		return nil, ErrMenuItemNotFound
	}
	if !menuItem.Available {
		logger.Warn("Cannot add to cart: menu item unavailable", map[string]interface{}{
			"menu_item_id": menuItemID,
		})
		return nil, ErrMenuItemUnavailable
	}

	custom, err := buildCustomization(menuItem, variantID, addonIDs)
	if err != nil {
		return nil, err
	}

	item := cart.Item{
		ID:        menuItem.ID,
		Name:      menuItem.Name,
		Image:     menuItem.ImageURL,
		BasePrice: menuItem.Price,
	}

	c := s.carts.Cart(cartOwner(userID))
	result, err := c.Add(ctx, item, quantity, menuItem.RestaurantID, custom)
	if err != nil {
		return nil, err
	}

	if result.Replaced {
		logger.Info("Cart replaced: item from a different restaurant", map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": menuItem.RestaurantID,
		})
	}
	return result, nil
}

// buildCustomization resolves variant and addon IDs against the menu item and
// snapshots their names and price deltas into the cart's own types.
func buildCustomization(menuItem *model.MenuItem, variantID *uint, addonIDs []uint) (*cart.Customization, error) {
	if variantID == nil && len(addonIDs) == 0 {
		return nil, nil
	}

	custom := &cart.Customization{}

	if variantID != nil {
		found := false
		for _, v := range menuItem.Variants {
			if v.ID == *variantID {
				custom.Variant = &cart.Variant{Name: v.Name, PriceDelta: v.PriceDelta}
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidVariant
		}
	}

	for _, addonID := range addonIDs {
		found := false
		for _, a := range menuItem.Addons {
			if a.ID == addonID {
				custom.Addons = append(custom.Addons, cart.Addon{Name: a.Name, PriceDelta: a.PriceDelta})
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidAddon
		}
	}

	return custom, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uint, cartItemID string, quantity int) []cart.LineItem {
	c := s.carts.Cart(cartOwner(userID))
	return c.UpdateQuantity(ctx, cartItemID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uint, cartItemID string) []cart.LineItem {
	c := s.carts.Cart(cartOwner(userID))
	return c.Remove(ctx, cartItemID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uint) {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})
	s.carts.Cart(cartOwner(userID)).Clear(ctx)
}

func (s *cartService) CheckRestaurantConflict(ctx context.Context, userID, restaurantID uint) bool {
	return s.carts.Cart(cartOwner(userID)).IsDifferentRestaurant(ctx, restaurantID)
}

// quote prices the cart for the requested order type. Delivery fee comes from
// the restaurant's cheapest delivery option; a bad promo code simply applies
// no discount.
func (s *cartService) quote(items []cart.LineItem, restaurantID uint, orderType cart.OrderType, promoCode string) cart.Totals {
	if orderType == "" {
		orderType = cart.OrderTypeDelivery
	}

	opts := cart.QuoteOptions{
		OrderType: orderType,
		TaxRate:   s.pricing.TaxRate,
	}

	if orderType == cart.OrderTypeDelivery && restaurantID != 0 {
		if restaurant, err := s.restaurantRepo.FindByID(restaurantID); err == nil {
			opts.DeliveryFee = cheapestDeliveryFee(restaurant.DeliveryOptions)
		}
	}

	if promoCode != "" && promoCode == s.pricing.PromoCode {
		opts.PromoCode = promoCode
		opts.PromoDiscount = s.pricing.PromoDiscount
	}

	return cart.Quote(items, opts).Rounded()
}

func cheapestDeliveryFee(options []model.DeliveryOption) float64 {
	if len(options) == 0 {
		return 0
	}
	fee := options[0].Fee
	for _, opt := range options[1:] {
		if opt.Fee < fee {
			fee = opt.Fee
		}
	}
	return fee
}
