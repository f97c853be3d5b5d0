package service

import (
	"errors"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item unavailable")
)

type MenuService interface {
	GetMenu(restaurantID uint, availableOnly bool) ([]model.MenuItem, error)
	GetItem(id uint) (*model.MenuItem, error)
	CreateItem(ownerID uint, item *model.MenuItem) error
	UpdateItem(ownerID uint, item *model.MenuItem) error
	DeleteItem(ownerID, itemID uint) error
}

type menuService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
}

func NewMenuService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository) MenuService {
	return &menuService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
	}
}

func (s *menuService) GetMenu(restaurantID uint, availableOnly bool) ([]model.MenuItem, error) {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.menuRepo.FindByRestaurantID(restaurantID, availableOnly)
}

func (s *menuService) GetItem(id uint) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) CreateItem(ownerID uint, item *model.MenuItem) error {
	if err := s.checkOwnership(ownerID, item.RestaurantID); err != nil {
		return err
	}

	logger.Info("Creating menu item", map[string]interface{}{
		"restaurant_id": item.RestaurantID,
		"name":          item.Name,
	})
	return s.menuRepo.Create(item)
}

func (s *menuService) UpdateItem(ownerID uint, item *model.MenuItem) error {
	existing, err := s.GetItem(item.ID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ownerID, existing.RestaurantID); err != nil {
		return err
	}

	item.RestaurantID = existing.RestaurantID
	return s.menuRepo.Update(item)
}

func (s *menuService) DeleteItem(ownerID, itemID uint) error {
	existing, err := s.GetItem(itemID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ownerID, existing.RestaurantID); err != nil {
		return err
	}

	logger.Info("Deleting menu item", map[string]interface{}{
		"menu_item_id": itemID,
	})
	return s.menuRepo.Delete(itemID)
}

func (s *menuService) checkOwnership(ownerID, restaurantID uint) error {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != ownerID {
		logger.Warn("Menu change denied: ownership mismatch", map[string]interface{}{
			"restaurant_id": restaurantID,
			"owner_id":      ownerID,
		})
		return ErrRestaurantAccessDenied
	}
	return nil
}
