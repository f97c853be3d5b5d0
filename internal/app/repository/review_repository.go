package repository

import (
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByRestaurantID(restaurantID uint) ([]model.Review, error)
	FindByUserAndRestaurant(userID, restaurantID uint) (*model.Review, error)
	Update(review *model.Review) error
	Delete(id uint) error
	AggregateByRestaurant(restaurantID uint) (avg float64, count int64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":       review.UserID,
		"restaurant_id": review.RestaurantID,
		"rating":        review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":       review.UserID,
			"restaurant_id": review.RestaurantID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByRestaurantID(restaurantID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("restaurant_id = ?", restaurantID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndRestaurant(userID, restaurantID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) AggregateByRestaurant(restaurantID uint) (float64, int64, error) {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Scan(&agg).Error
	if err != nil {
		logger.Error("Failed to aggregate reviews in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}
