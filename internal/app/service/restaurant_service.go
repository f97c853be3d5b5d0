package service

import (
	"errors"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound     = errors.New("restaurant not found")
	ErrRestaurantAccessDenied = errors.New("restaurant access denied")
)

type RestaurantService interface {
	List(filter repository.RestaurantFilter) ([]model.Restaurant, int64, error)
	GetByID(id uint) (*model.Restaurant, error)
	GetBySlug(slug string) (*model.Restaurant, error)
	GetOwnerRestaurants(ownerID uint) ([]model.Restaurant, error)
	Create(ownerID uint, restaurant *model.Restaurant) error
	Update(ownerID uint, restaurant *model.Restaurant) error
	Delete(ownerID, restaurantID uint, isAdmin bool) error
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo}
}

func (s *restaurantService) List(filter repository.RestaurantFilter) ([]model.Restaurant, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.restaurantRepo.List(filter)
}

func (s *restaurantService) GetByID(id uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetBySlug(slug string) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetOwnerRestaurants(ownerID uint) ([]model.Restaurant, error) {
	return s.restaurantRepo.FindByOwnerID(ownerID)
}

func (s *restaurantService) Create(ownerID uint, restaurant *model.Restaurant) error {
	logger.Info("Creating restaurant", map[string]interface{}{
		"owner_id": ownerID,
		"name":     restaurant.Name,
		"city":     restaurant.City,
	})

	restaurant.OwnerID = &ownerID
	restaurant.Rating = 0
	restaurant.RatingCount = 0

	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return err
	}

	logger.Info("Restaurant created", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"slug":          restaurant.Slug,
	})
	return nil
}

func (s *restaurantService) Update(ownerID uint, restaurant *model.Restaurant) error {
	existing, err := s.GetByID(restaurant.ID)
	if err != nil {
		return err
	}

	if existing.OwnerID == nil || *existing.OwnerID != ownerID {
		logger.Warn("Restaurant update denied: ownership mismatch", map[string]interface{}{
			"restaurant_id": restaurant.ID,
			"owner_id":      ownerID,
		})
		return ErrRestaurantAccessDenied
	}

	// Slug, rating and ownership are managed internally.
	restaurant.Slug = existing.Slug
	restaurant.OwnerID = existing.OwnerID
	restaurant.Rating = existing.Rating
	restaurant.RatingCount = existing.RatingCount

	return s.restaurantRepo.Update(restaurant)
}

func (s *restaurantService) Delete(ownerID, restaurantID uint, isAdmin bool) error {
	existing, err := s.GetByID(restaurantID)
	if err != nil {
		return err
	}

	if !isAdmin && (existing.OwnerID == nil || *existing.OwnerID != ownerID) {
		logger.Warn("Restaurant delete denied: ownership mismatch", map[string]interface{}{
			"restaurant_id": restaurantID,
			"owner_id":      ownerID,
		})
		return ErrRestaurantAccessDenied
	}

	logger.Info("Deleting restaurant", map[string]interface{}{
		"restaurant_id": restaurantID,
	})
	return s.restaurantRepo.Delete(restaurantID)
}
