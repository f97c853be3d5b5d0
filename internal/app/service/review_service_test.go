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

type reviewServiceFixture struct {
	service    ReviewService
	db         *gorm.DB
	restaurant *model.Restaurant
}

func setupReviewServiceTest(t *testing.T) *reviewServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	restaurant := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, testDB.Create(restaurant).Error)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		user := &model.User{Email: email, PasswordHash: "x", Name: "User"}
		require.NoError(t, testDB.Create(user).Error)
	}

	service := NewReviewService(
		repository.NewReviewRepository(testDB),
		repository.NewRestaurantRepository(testDB),
	)

	return &reviewServiceFixture{
		service:    service,
		db:         testDB,
		restaurant: restaurant,
	}
}

func (fx *reviewServiceFixture) rating(t *testing.T) (float64, int) {
	t.Helper()
	var restaurant model.Restaurant
	require.NoError(t, fx.db.First(&restaurant, fx.restaurant.ID).Error)
	return restaurant.Rating, restaurant.RatingCount
}

func TestReviewService_Submit(t *testing.T) {
	fx := setupReviewServiceTest(t)

	review, err := fx.service.Submit(1, fx.restaurant.ID, 4, "Great crust")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	rating, count := fx.rating(t)
	assert.InDelta(t, 4.0, rating, 0.001)
	assert.Equal(t, 1, count)

	// Second reviewer moves the aggregate
	_, err = fx.service.Submit(2, fx.restaurant.ID, 2, "Too salty")
	require.NoError(t, err)

	rating, count = fx.rating(t)
	assert.InDelta(t, 3.0, rating, 0.001)
	assert.Equal(t, 2, count)
}

func TestReviewService_Submit_Upsert(t *testing.T) {
	fx := setupReviewServiceTest(t)

	first, err := fx.service.Submit(1, fx.restaurant.ID, 2, "Disappointing")
	require.NoError(t, err)

	// Resubmitting replaces the user's review instead of adding a second one
	second, err := fx.service.Submit(1, fx.restaurant.ID, 5, "They fixed it")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)

	rating, count := fx.rating(t)
	assert.InDelta(t, 5.0, rating, 0.001)
	assert.Equal(t, 1, count)
}

func TestReviewService_Submit_Validation(t *testing.T) {
	fx := setupReviewServiceTest(t)

	_, err := fx.service.Submit(1, fx.restaurant.ID, 0, "")
	assert.ErrorIs(t, err, ErrReviewInvalidRating)

	_, err = fx.service.Submit(1, fx.restaurant.ID, 6, "")
	assert.ErrorIs(t, err, ErrReviewInvalidRating)

	_, err = fx.service.Submit(1, 9999, 3, "")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestReviewService_Delete(t *testing.T) {
	fx := setupReviewServiceTest(t)

	review, err := fx.service.Submit(1, fx.restaurant.ID, 4, "Great crust")
	require.NoError(t, err)
	_, err = fx.service.Submit(2, fx.restaurant.ID, 2, "Too salty")
	require.NoError(t, err)

	// Only the author may delete
	err = fx.service.Delete(2, review.ID)
	assert.ErrorIs(t, err, ErrReviewAccessDenied)

	require.NoError(t, fx.service.Delete(1, review.ID))

	rating, count := fx.rating(t)
	assert.InDelta(t, 2.0, rating, 0.001)
	assert.Equal(t, 1, count)

	err = fx.service.Delete(1, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_GetRestaurantReviews(t *testing.T) {
	fx := setupReviewServiceTest(t)

	_, err := fx.service.Submit(1, fx.restaurant.ID, 4, "Great crust")
	require.NoError(t, err)
	_, err = fx.service.Submit(2, fx.restaurant.ID, 5, "Best in town")
	require.NoError(t, err)

	reviews, err := fx.service.GetRestaurantReviews(fx.restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
