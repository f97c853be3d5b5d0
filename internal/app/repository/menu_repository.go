package repository

import (
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	FindByID(id uint) (*model.MenuItem, error)
	FindByRestaurantID(restaurantID uint, availableOnly bool) ([]model.MenuItem, error)
	Update(item *model.MenuItem) error
	Delete(id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *model.MenuItem) error {
	logger.Debug("Creating menu item in database", map[string]interface{}{
		"restaurant_id": item.RestaurantID,
		"name":          item.Name,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item in database", err, map[string]interface{}{
			"restaurant_id": item.RestaurantID,
			"name":          item.Name,
		})
		return err
	}
	return nil
}

func (r *menuRepository) FindByID(id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.Preload("Variants").Preload("Addons").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) FindByRestaurantID(restaurantID uint, availableOnly bool) ([]model.MenuItem, error) {
	query := r.db.Where("restaurant_id = ?", restaurantID).
		Preload("Variants").
		Preload("Addons")
	if availableOnly {
		query = query.Where("available = ?", true)
	}

	var items []model.MenuItem
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		logger.Error("Failed to find menu items by restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) Update(item *model.MenuItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update menu item in database", err, map[string]interface{}{
			"menu_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *menuRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.MenuItem{}, id).Error; err != nil {
		logger.Error("Failed to delete menu item from database", err, map[string]interface{}{
			"menu_item_id": id,
		})
		return err
	}
	return nil
}
