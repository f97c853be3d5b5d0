package service

import (
	"errors"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewInvalidRating = errors.New("rating must be between 1 and 5")
	ErrReviewAccessDenied  = errors.New("review access denied")
)

type ReviewService interface {
	Submit(userID, restaurantID uint, rating int, comment string) (*model.Review, error)
	GetRestaurantReviews(restaurantID uint) ([]model.Review, error)
	Delete(userID, reviewID uint) error
}

type reviewService struct {
	reviewRepo     repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, restaurantRepo repository.RestaurantRepository) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		restaurantRepo: restaurantRepo,
	}
}

// Submit creates the user's review for a restaurant, or updates it when one
// already exists, then refreshes the restaurant's aggregate rating.
func (s *reviewService) Submit(userID, restaurantID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewInvalidRating
	}

	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	review, err := s.reviewRepo.FindByUserAndRestaurant(userID, restaurantID)
	switch {
	case err == nil:
		review.Rating = rating
		review.Comment = comment
		if err := s.reviewRepo.Update(review); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = &model.Review{
			UserID:       userID,
			RestaurantID: restaurantID,
			Rating:       rating,
			Comment:      comment,
		}
		if err := s.reviewRepo.Create(review); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.refreshAggregate(restaurantID); err != nil {
		// The review itself is saved; a stale aggregate self-heals on the
		// next submission.
		logger.Error("Failed to refresh restaurant rating", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
	}

	logger.Info("Review submitted", map[string]interface{}{
		"review_id":     review.ID,
		"restaurant_id": restaurantID,
		"rating":        rating,
	})
	return review, nil
}

func (s *reviewService) GetRestaurantReviews(restaurantID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByRestaurantID(restaurantID)
}

func (s *reviewService) Delete(userID, reviewID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrReviewAccessDenied
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	if err := s.refreshAggregate(review.RestaurantID); err != nil {
		logger.Error("Failed to refresh restaurant rating", err, map[string]interface{}{
			"restaurant_id": review.RestaurantID,
		})
	}
	return nil
}

func (s *reviewService) refreshAggregate(restaurantID uint) error {
	avg, count, err := s.reviewRepo.AggregateByRestaurant(restaurantID)
	if err != nil {
		return err
	}
	return s.restaurantRepo.UpdateRating(restaurantID, avg, int(count))
}
