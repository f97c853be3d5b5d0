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

func setupRestaurantServiceTest(t *testing.T) (RestaurantService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewRestaurantService(repository.NewRestaurantRepository(testDB)), testDB
}

func TestRestaurantService_Create(t *testing.T) {
	service, _ := setupRestaurantServiceTest(t)

	restaurant := &model.Restaurant{
		Name:     "Pizza Palace",
		City:     "Mumbai",
		Area:     "Bandra",
		Cuisines: model.StringArray{"Italian", "Pizza"},
		// Clients cannot smuggle in a rating
		Rating:      4.9,
		RatingCount: 120,
	}
	require.NoError(t, service.Create(7, restaurant))

	assert.NotZero(t, restaurant.ID)
	assert.Equal(t, "mumbai-pizza-palace", restaurant.Slug)
	require.NotNil(t, restaurant.OwnerID)
	assert.Equal(t, uint(7), *restaurant.OwnerID)
	assert.Zero(t, restaurant.Rating)
	assert.Zero(t, restaurant.RatingCount)
}

func TestRestaurantService_Create_SlugCollision(t *testing.T) {
	service, _ := setupRestaurantServiceTest(t)

	first := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, service.Create(1, first))

	second := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, service.Create(2, second))

	assert.Equal(t, "mumbai-pizza-palace", first.Slug)
	assert.Equal(t, "mumbai-pizza-palace-2", second.Slug)
}

func TestRestaurantService_GetByIDAndSlug(t *testing.T) {
	service, _ := setupRestaurantServiceTest(t)

	restaurant := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, service.Create(1, restaurant))

	byID, err := service.GetByID(restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, restaurant.Name, byID.Name)

	bySlug, err := service.GetBySlug(restaurant.Slug)
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, bySlug.ID)

	_, err = service.GetByID(9999)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	_, err = service.GetBySlug("nowhere")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantService_List(t *testing.T) {
	service, testDB := setupRestaurantServiceTest(t)

	seed := []model.Restaurant{
		{Name: "Pizza Palace", City: "Mumbai", Area: "Bandra", Cuisines: model.StringArray{"Italian"}, Rating: 4.5, IsOpen: true},
		{Name: "Biryani House", City: "Mumbai", Area: "Andheri", Cuisines: model.StringArray{"Mughlai"}, Rating: 4.8, IsOpen: true},
		{Name: "Dosa Corner", City: "Chennai", Area: "Mylapore", Cuisines: model.StringArray{"South Indian"}, Rating: 4.2, IsOpen: false},
	}
	for i := range seed {
		require.NoError(t, testDB.Create(&seed[i]).Error)
	}

	tests := []struct {
		name      string
		filter    repository.RestaurantFilter
		wantNames []string
	}{
		{
			name:      "No filter, rating order",
			filter:    repository.RestaurantFilter{},
			wantNames: []string{"Biryani House", "Pizza Palace", "Dosa Corner"},
		},
		{
			name:      "By city",
			filter:    repository.RestaurantFilter{City: "mumbai"},
			wantNames: []string{"Biryani House", "Pizza Palace"},
		},
		{
			name:      "By cuisine",
			filter:    repository.RestaurantFilter{Cuisine: "italian"},
			wantNames: []string{"Pizza Palace"},
		},
		{
			name:      "Search by name",
			filter:    repository.RestaurantFilter{Search: "dosa"},
			wantNames: []string{"Dosa Corner"},
		},
		{
			name:      "Open now",
			filter:    repository.RestaurantFilter{OpenNow: true},
			wantNames: []string{"Biryani House", "Pizza Palace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restaurants, total, err := service.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.wantNames)), total)

			names := make([]string, 0, len(restaurants))
			for _, r := range restaurants {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestRestaurantService_List_Pagination(t *testing.T) {
	service, testDB := setupRestaurantServiceTest(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, testDB.Create(&model.Restaurant{
			Name: "Restaurant", City: "Mumbai", Slug: randomTestSlug(i),
		}).Error)
	}

	restaurants, total, err := service.List(repository.RestaurantFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	// Default page size caps the result
	assert.Len(t, restaurants, 20)

	restaurants, _, err = service.List(repository.RestaurantFilter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Len(t, restaurants, 5)
}

func randomTestSlug(i int) string {
	return string(rune('a'+i%26)) + string(rune('a'+(i/26)%26)) + "-restaurant"
}

func TestRestaurantService_Update(t *testing.T) {
	service, _ := setupRestaurantServiceTest(t)

	restaurant := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, service.Create(1, restaurant))
	originalSlug := restaurant.Slug

	update := &model.Restaurant{
		ID:          restaurant.ID,
		Name:        "Pizza Palace Deluxe",
		City:        "Mumbai",
		Slug:        "hijacked-slug",
		Rating:      5,
		RatingCount: 999,
	}
	require.NoError(t, service.Update(1, update))

	// Managed fields survive the update untouched
	assert.Equal(t, originalSlug, update.Slug)
	assert.Zero(t, update.Rating)
	assert.Zero(t, update.RatingCount)

	// The wrong owner is rejected
	err := service.Update(2, &model.Restaurant{ID: restaurant.ID, Name: "Stolen", City: "Mumbai"})
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)
}

func TestRestaurantService_Delete(t *testing.T) {
	service, _ := setupRestaurantServiceTest(t)

	restaurant := &model.Restaurant{Name: "Pizza Palace", City: "Mumbai"}
	require.NoError(t, service.Create(1, restaurant))

	err := service.Delete(2, restaurant.ID, false)
	assert.ErrorIs(t, err, ErrRestaurantAccessDenied)

	// Admins may remove any listing
	require.NoError(t, service.Delete(2, restaurant.ID, true))

	_, err = service.GetByID(restaurant.ID)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
