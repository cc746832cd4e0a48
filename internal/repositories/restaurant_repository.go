package repositories

import (
	"context"

	"eats/internal/models"
)

// RestaurantRepository defines the interface for restaurant data access.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	// GetWithDishes loads the restaurant together with its category and menu.
	GetWithDishes(ctx context.Context, id string) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	// Delete removes the restaurant and its dishes.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page Page) ([]models.Restaurant, int64, error)
	Search(ctx context.Context, query string, page Page) ([]models.Restaurant, int64, error)
	ListByCategory(ctx context.Context, categoryID string, page Page) ([]models.Restaurant, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Restaurant, error)
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	// GetOrCreate returns the category with slug, creating it with name when absent.
	GetOrCreate(ctx context.Context, name, slug string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	// List returns every category with RestaurantCount filled in.
	List(ctx context.Context) ([]models.Category, error)
}

// DishRepository defines the interface for menu data access.
type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id string) (*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id string) error
}
