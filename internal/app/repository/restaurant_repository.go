package repository

import (
	"strings"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

// RestaurantFilter narrows List results. Zero values mean "no filter".
type RestaurantFilter struct {
	City    string
	Area    string
	Cuisine string
	Search  string
	OpenNow bool
	Limit   int
	Offset  int
}

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	FindByID(id uint) (*model.Restaurant, error)
	FindBySlug(slug string) (*model.Restaurant, error)
	FindByOwnerID(ownerID uint) ([]model.Restaurant, error)
	List(filter RestaurantFilter) ([]model.Restaurant, int64, error)
	BulkCreate(restaurants []model.Restaurant, batchSize int) error
	Update(restaurant *model.Restaurant) error
	UpdateRating(id uint, rating float64, count int) error
	Delete(id uint) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *model.Restaurant) error {
	logger.Debug("Creating restaurant in database", map[string]interface{}{
		"name": restaurant.Name,
		"city": restaurant.City,
	})

	if err := r.db.Create(restaurant).Error; err != nil {
		logger.Error("Failed to create restaurant in database", err, map[string]interface{}{
			"name": restaurant.Name,
		})
		return err
	}

	logger.Debug("Restaurant created in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"slug":          restaurant.Slug,
	})
	return nil
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.Preload("DeliveryOptions").First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindBySlug(slug string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.Where("slug = ?", slug).
		Preload("DeliveryOptions").
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindByOwnerID(ownerID uint) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.Where("owner_id = ?", ownerID).Find(&restaurants).Error
	if err != nil {
		logger.Error("Failed to find restaurants by owner in database", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) List(filter RestaurantFilter) ([]model.Restaurant, int64, error) {
	query := r.db.Model(&model.Restaurant{})

	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Area != "" {
		query = query.Where("LOWER(area) = ?", strings.ToLower(filter.Area))
	}
	if filter.Cuisine != "" {
		// Cuisines is a JSON-encoded text column; substring match is enough
		// for the catalog sizes we serve.
		query = query.Where("LOWER(cuisines) LIKE ?", "%"+strings.ToLower(filter.Cuisine)+"%")
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.OpenNow {
		query = query.Where("is_open = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count restaurants in database", err, nil)
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var restaurants []model.Restaurant
	if err := query.Order("rating DESC, id ASC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to list restaurants in database", err, nil)
		return nil, 0, err
	}

	return restaurants, total, nil
}

// BulkCreate inserts restaurants in batches. Used by the catalog importer.
func (r *restaurantRepository) BulkCreate(restaurants []model.Restaurant, batchSize int) error {
	if err := r.db.CreateInBatches(restaurants, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create restaurants in database", err, map[string]interface{}{
			"count": len(restaurants),
		})
		return err
	}
	return nil
}

func (r *restaurantRepository) Update(restaurant *model.Restaurant) error {
	if err := r.db.Save(restaurant).Error; err != nil {
		logger.Error("Failed to update restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurant.ID,
		})
		return err
	}
	return nil
}

func (r *restaurantRepository) UpdateRating(id uint, rating float64, count int) error {
	err := r.db.Model(&model.Restaurant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": count,
		}).Error
	if err != nil {
		logger.Error("Failed to update restaurant rating in database", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return err
	}
	return nil
}

func (r *restaurantRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Restaurant{}, id).Error; err != nil {
		logger.Error("Failed to delete restaurant from database", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return err
	}
	return nil
}
