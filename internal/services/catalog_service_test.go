package services_test

import (
	"context"
	"fmt"
	"testing"

	"eats/internal/models"
	"eats/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in, name, slug string
	}{
		{"Korean BBQ", "korean bbq", "korean-bbq"},
		{"  korean   bbq ", "korean bbq", "korean-bbq"},
		{"Pizza", "pizza", "pizza"},
		{"   ", "", ""},
	}
	for _, tt := range tests {
		name, slug := services.NormalizeCategory(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.slug, slug, tt.in)
	}
}

func TestRestaurantService_CreateSharesCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)

	first, err := f.restaurants.CreateRestaurant(ctx, owner, services.CreateRestaurantInput{
		Name: "Seoul Grill", Address: "1 Main Street", CategoryName: "Korean BBQ",
	})
	require.NoError(t, err)
	second, err := f.restaurants.CreateRestaurant(ctx, owner, services.CreateRestaurantInput{
		Name: "Busan House", Address: "2 Main Street", CategoryName: "  korean  bbq",
	})
	require.NoError(t, err)

	require.NotNil(t, first.Category)
	assert.Equal(t, "korean-bbq", first.Category.Slug)
	assert.Equal(t, *first.CategoryID, *second.CategoryID)
	assert.Equal(t, owner.ID, first.OwnerID)

	categories, err := f.categories.SeeAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "korean bbq", categories[0].Name)
	assert.EqualValues(t, 2, categories[0].RestaurantCount)

	page, err := f.categories.SeeCategory(ctx, "korean-bbq", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalResults)
	assert.Len(t, page.Results, 2)

	_, err = f.categories.SeeCategory(ctx, "sushi", 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRestaurantService_EditAndDeleteRequireOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	intruder := f.user(t, models.RoleOwner)
	r := f.restaurant(t, owner, "Seoul Grill")
	f.dish(t, owner, r, "Bulgogi", 12)

	_, err := f.restaurants.EditRestaurant(ctx, intruder, services.EditRestaurantInput{RestaurantID: r.ID, Name: "Mine now"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.ErrorIs(t, f.restaurants.DeleteRestaurant(ctx, intruder, r.ID), services.ErrForbidden)

	_, err = f.restaurants.EditRestaurant(ctx, owner, services.EditRestaurantInput{RestaurantID: "missing", Name: "x1"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	edited, err := f.restaurants.EditRestaurant(ctx, owner, services.EditRestaurantInput{
		RestaurantID: r.ID, Name: "Seoul Grill 2", CategoryName: "Fusion",
	})
	require.NoError(t, err)
	assert.Equal(t, "Seoul Grill 2", edited.Name)
	assert.Equal(t, "fusion", edited.Category.Slug)
	assert.Equal(t, "1 Main Street", edited.Address)

	require.NoError(t, f.restaurants.DeleteRestaurant(ctx, owner, r.ID))
	assert.Zero(t, f.count(t, &models.Restaurant{}))
	assert.Zero(t, f.count(t, &models.Dish{}))

	_, err = f.restaurants.SeeRestaurant(ctx, r.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRestaurantService_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	for i := 0; i < 30; i++ {
		f.restaurant(t, owner, fmt.Sprintf("Restaurant %02d", i))
	}

	first, err := f.restaurants.SeeAllRestaurants(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Results, services.PageSize)
	assert.Equal(t, 2, first.TotalPages)
	assert.EqualValues(t, 30, first.TotalResults)

	second, err := f.restaurants.SeeAllRestaurants(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Results, 5)

	beyond, err := f.restaurants.SeeAllRestaurants(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, beyond.Results)

	zero, err := f.restaurants.SeeAllRestaurants(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, zero.Results, services.PageSize)
}

func TestRestaurantService_PromotedFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	f.restaurant(t, owner, "Plain One")
	promoted := f.restaurant(t, owner, "Paid One")

	_, err := f.payments.CreatePayment(ctx, owner, services.CreatePaymentInput{RestaurantID: promoted.ID, TransactionID: "tx-1"})
	require.NoError(t, err)

	page, err := f.restaurants.SeeAllRestaurants(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, promoted.ID, page.Results[0].ID)
	assert.True(t, page.Results[0].IsPromoted)
}

func TestRestaurantService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	f.restaurant(t, owner, "Seoul Grill")
	f.restaurant(t, owner, "Pizza Place")

	page, err := f.restaurants.SearchRestaurants(ctx, "GRILL", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Seoul Grill", page.Results[0].Name)

	_, err = f.restaurants.SearchRestaurants(ctx, "  ", 1)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestRestaurantService_SeeMyRestaurantsAndMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	other := f.user(t, models.RoleOwner)
	r := f.restaurant(t, owner, "Seoul Grill")
	f.restaurant(t, other, "Elsewhere")
	f.dish(t, owner, r, "Bulgogi", 12, models.DishOption{Name: "extra rice", ExtraPrice: 1.5})

	mine, err := f.restaurants.SeeMyRestaurants(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r.ID, mine[0].ID)

	full, err := f.restaurants.SeeRestaurant(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, full.Dishes, 1)
	assert.Equal(t, []models.DishOption{{Name: "extra rice", ExtraPrice: 1.5}}, full.Dishes[0].Options)
}

func TestDishService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, models.RoleOwner)
	intruder := f.user(t, models.RoleOwner)
	r := f.restaurant(t, owner, "Seoul Grill")

	_, err := f.dishes.CreateDish(ctx, intruder, services.CreateDishInput{RestaurantID: r.ID, Name: "Stolen"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.dishes.CreateDish(ctx, owner, services.CreateDishInput{RestaurantID: "missing", Name: "Lost"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.dishes.CreateDish(ctx, owner, services.CreateDishInput{
		RestaurantID: r.ID,
		Name:         "Twice",
		Options:      []models.DishOption{{Name: "spicy"}, {Name: "spicy", ExtraPrice: 1}},
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	dish := f.dish(t, owner, r, "Bulgogi", 12, models.DishOption{Name: "spicy", ExtraPrice: 1})

	price := 14.0
	newName := "Beef Bulgogi"
	edited, err := f.dishes.EditDish(ctx, owner, services.EditDishInput{DishID: dish.ID, Name: &newName, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Beef Bulgogi", edited.Name)
	assert.Equal(t, 14.0, edited.Price)
	assert.Len(t, edited.Options, 1)

	_, err = f.dishes.EditDish(ctx, intruder, services.EditDishInput{DishID: dish.ID, Name: &newName})
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.ErrorIs(t, f.dishes.DeleteDish(ctx, intruder, dish.ID), services.ErrForbidden)

	require.NoError(t, f.dishes.DeleteDish(ctx, owner, dish.ID))
	assert.ErrorIs(t, f.dishes.DeleteDish(ctx, owner, dish.ID), services.ErrNotFound)
}
